package reconcile

import (
	"net/url"
	"strconv"
	"time"
)

// BulkPageSize is the per_page hint used by the paged get_all_channels shapes.
const BulkPageSize = 99999

// CategoryParams builds the portal request that lists categories for action.
// Live TV lists genres, the other modes list categories.
func CategoryParams(action Action, now time.Time) url.Values {
	params := url.Values{}
	params.Set("JsHttpRequest", jsHTTPRequest(now))
	params.Set("type", string(action))
	if action == ActionITV {
		params.Set("action", "get_genres")
	} else {
		params.Set("action", "get_categories")
	}
	return params
}

// AllChannelsParams builds a get_all_channels request. Nil page and perPage are omitted.
func AllChannelsParams(page, perPage *int, now time.Time) url.Values {
	params := url.Values{}
	params.Set("type", string(ActionITV))
	params.Set("action", "get_all_channels")
	if page != nil {
		params.Set("p", strconv.Itoa(*page))
	}
	if perPage != nil {
		params.Set("per_page", strconv.Itoa(*perPage))
	}
	params.Set("JsHttpRequest", jsHTTPRequest(now))
	return params
}

// OrderedListParams builds the per-category channel page request.
func OrderedListParams(categoryID string, page int, action Action, now time.Time) url.Values {
	params := url.Values{}
	params.Set("type", string(action))
	params.Set("action", "get_ordered_list")
	params.Set("genre", categoryID)
	params.Set("force_ch_link_check", "")
	params.Set("fav", "0")
	params.Set("sortby", "added")
	if action == ActionSeries {
		params.Set("movie_id", "0")
		params.Set("category", categoryID)
		params.Set("season_id", "0")
		params.Set("episode_id", "0")
	}
	params.Set("hd", "1")
	params.Set("p", strconv.Itoa(page))
	params.Set("per_page", "999")
	params.Set("max_count", "0")
	params.Set("JsHttpRequest", jsHTTPRequest(now))
	return params
}

// bulkShapes are the get_all_channels attempts, in order.
func bulkShapes() [][2]*int {
	zero, one, size := 0, 1, BulkPageSize
	return [][2]*int{
		{nil, nil},
		{&zero, &size},
		{&one, &size},
	}
}

func jsHTTPRequest(now time.Time) string {
	return strconv.FormatInt(now.UnixMilli(), 10) + "-xml"
}
