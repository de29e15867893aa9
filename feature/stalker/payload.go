package stalker

import (
	"encoding/json"
	"errors"
	"strings"

	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"
)

// errNoData marks a channel response that carries no data array.
var errNoData = errors.New("response has no channel data")

// envelope is the {"js": ...} wrapper every portal response uses.
type envelope struct {
	JS json.RawMessage `json:"js"`
}

type handshakeResponse struct {
	envelope
	Token any `json:"token"`
}

func (r handshakeResponse) token() string {
	var js struct {
		Token any `json:"token"`
	}
	if len(r.JS) > 0 && json.Unmarshal(r.JS, &js) == nil && utils.ToString(js.Token) != "" {
		return utils.ToString(js.Token)
	}
	return utils.ToString(r.Token)
}

type categoryResponse struct {
	JS []rawCategory `json:"js"`
}

type rawCategory struct {
	ID        any `json:"id"`
	Title     any `json:"title"`
	Alias     any `json:"alias"`
	Censored  any `json:"censored"`
	ActiveSub any `json:"active_sub"`
}

func (r categoryResponse) categories() []reconcile.Category {
	categories := make([]reconcile.Category, 0, len(r.JS))
	for _, raw := range r.JS {
		categories = append(categories, reconcile.Category{
			CategoryID: utils.ToString(raw.ID),
			Title:      utils.ToString(raw.Title),
			Alias:      utils.ToString(raw.Alias),
			Censored:   utils.ToBool(raw.Censored),
			ActiveSub:  utils.ToBool(raw.ActiveSub),
		})
	}
	return categories
}

// channelResponse accepts both {"js":{"data":[...]}} and a bare {"data":[...]}.
type channelResponse struct {
	envelope
	channelPage
}

func (r channelResponse) page() (channelPage, error) {
	if trimmed := strings.TrimSpace(string(r.JS)); trimmed != "" && trimmed != "null" {
		var inner channelPage
		if err := json.Unmarshal(r.JS, &inner); err == nil && inner.Data != nil {
			return inner, nil
		}
	}
	if r.Data != nil {
		return r.channelPage, nil
	}
	return channelPage{}, errNoData
}

type channelPage struct {
	TotalItems   any          `json:"total_items"`
	MaxPageItems any          `json:"max_page_items"`
	Data         []rawChannel `json:"data"`
}

func (p channelPage) pagination() *reconcile.Pagination {
	if p.TotalItems == nil && p.MaxPageItems == nil {
		return nil
	}
	return &reconcile.Pagination{
		PaginationLimit: utils.ToInt(p.MaxPageItems),
		MaxPageItems:    utils.ToInt(p.TotalItems),
	}
}

func (p channelPage) channels(action reconcile.Action) []reconcile.Channel {
	channels := make([]reconcile.Channel, 0, len(p.Data))
	for _, raw := range p.Data {
		channels = append(channels, raw.channel(action))
	}
	return channels
}

type rawChannel struct {
	ID         any `json:"id"`
	Name       any `json:"name"`
	OName      any `json:"o_name"`
	Number     any `json:"number"`
	Cmd        any `json:"cmd"`
	Cmd1       any `json:"cmd_1"`
	Cmd2       any `json:"cmd_2"`
	Cmd3       any `json:"cmd_3"`
	Logo       any `json:"logo"`
	Screenshot any `json:"screenshot_uri"`
	Censored   any `json:"censored"`
	Status     any `json:"status"`
	HD         any `json:"hd"`
	GenreID    any `json:"tv_genre_id"`
}

func (r rawChannel) channel(action reconcile.Action) reconcile.Channel {
	ch := reconcile.Channel{
		ChannelID:  utils.ToString(r.ID),
		CategoryID: utils.ToString(r.GenreID),
		Name:       utils.ToString(r.Name),
		Number:     utils.ToString(r.Number),
		Cmd:        utils.ToString(r.Cmd),
		Cmd1:       utils.ToString(r.Cmd1),
		Cmd2:       utils.ToString(r.Cmd2),
		Cmd3:       utils.ToString(r.Cmd3),
		Logo:       utils.ToString(r.Logo),
		Censored:   utils.ToInt(r.Censored),
		Status:     utils.ToInt(r.Status),
		HD:         utils.ToInt(r.HD),
	}
	if action != reconcile.ActionITV {
		ch.Name = utils.FirstNonEmpty(ch.Name, utils.ToString(r.OName))
		ch.Number = ch.ChannelID
		ch.Logo = utils.FirstNonEmpty(utils.ToString(r.Screenshot), ch.Logo)
	}
	return ch
}
