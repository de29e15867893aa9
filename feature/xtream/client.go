package xtream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"catalog-sync/core/fetch"
	"catalog-sync/core/reconcile"
	"catalog-sync/core/utils"

	"go.uber.org/zap"
)

// Client talks to Xtream Codes compatible player_api.php endpoints.
type Client struct {
	http   *fetch.Client
	logger *zap.Logger
}

// NewClient creates a catalog client from the reload settings.
func NewClient(cfg reconcile.Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		http: fetch.New(fetch.Options{
			Timeout:       cfg.HTTPTimeout(),
			RatePerSecond: cfg.RatePerSecond,
			UserAgent:     cfg.UserAgent,
		}, logger),
		logger: logger,
	}
}

// ListCategories lists live, vod or series categories depending on the account's mode.
func (c *Client) ListCategories(ctx context.Context, account *reconcile.Account) ([]reconcile.Category, error) {
	var rows []xcCategory
	if err := c.call(ctx, account, categoryAction(account.Action), nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	categories := make([]reconcile.Category, 0, len(rows))
	for _, row := range rows {
		name := utils.ToString(row.CategoryName)
		categories = append(categories, reconcile.Category{
			CategoryID: utils.ToString(row.CategoryID),
			Title:      name,
			Alias:      name,
			ActiveSub:  true,
		})
	}
	return categories, nil
}

// ListChannels returns the global live stream list.
func (c *Client) ListChannels(ctx context.Context, account *reconcile.Account) ([]reconcile.Channel, error) {
	var rows []xcStream
	if err := c.call(ctx, account, "get_live_streams", nil, &rows); err != nil {
		return nil, fmt.Errorf("failed to fetch live streams: %w", err)
	}
	return c.channels(account, rows), nil
}

// ListCategoryChannels returns the live streams of one category.
func (c *Client) ListCategoryChannels(ctx context.Context, account *reconcile.Account, categoryID string) ([]reconcile.Channel, error) {
	var rows []xcStream
	extra := url.Values{}
	extra.Set("category_id", categoryID)
	if err := c.call(ctx, account, "get_live_streams", extra, &rows); err != nil {
		return nil, fmt.Errorf("failed to fetch live streams for category %s: %w", categoryID, err)
	}
	return c.channels(account, rows), nil
}

func (c *Client) channels(account *reconcile.Account, rows []xcStream) []reconcile.Channel {
	base := BaseURL(utils.FirstNonEmpty(account.PlaylistPath, account.URL))
	channels := make([]reconcile.Channel, 0, len(rows))
	for _, row := range rows {
		streamID := utils.ToString(row.StreamID)
		channels = append(channels, reconcile.Channel{
			ChannelID:  streamID,
			CategoryID: utils.ToString(row.CategoryID),
			Name:       utils.ToString(row.Name),
			Number:     utils.ToString(row.Num),
			Cmd:        StreamURL(base, account, streamID, utils.ToString(row.ContainerExtension)),
			Logo:       utils.ToString(row.StreamIcon),
		})
	}
	return channels
}

// call tries each base URL candidate in turn. A 404 moves on to the next
// candidate; any other failure on the last candidate is returned.
func (c *Client) call(ctx context.Context, account *reconcile.Account, action string, extra url.Values, out any) error {
	candidates := baseCandidates(account)
	if len(candidates) == 0 {
		return errors.New("xtream base URL is blank")
	}

	params := url.Values{}
	params.Set("username", account.Username)
	params.Set("password", account.Password)
	params.Set("action", action)
	for key, values := range extra {
		params[key] = values
	}

	var lastErr error
	for _, base := range candidates {
		endpoint := base + "player_api.php?" + params.Encode()
		err := c.http.GetJSON(ctx, endpoint, nil, out)
		if err == nil {
			return nil
		}
		lastErr = err

		var statusErr *fetch.StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			continue
		}
		c.logger.Debug("Xtream request failed",
			zap.String("url", fetch.Redact(endpoint)),
			zap.Error(err))
	}
	return lastErr
}

func categoryAction(action reconcile.Action) string {
	switch action {
	case reconcile.ActionVOD:
		return "get_vod_categories"
	case reconcile.ActionSeries:
		return "get_series_categories"
	default:
		return "get_live_categories"
	}
}

func baseCandidates(account *reconcile.Account) []string {
	var candidates []string
	for _, raw := range []string{account.PlaylistPath, account.URL} {
		base := BaseURL(raw)
		if base == "" {
			continue
		}
		duplicate := false
		for _, existing := range candidates {
			if existing == base {
				duplicate = true
			}
		}
		if !duplicate {
			candidates = append(candidates, base)
		}
	}
	return candidates
}

// BaseURL normalizes a server address to "scheme://host[/path]/" with any
// player_api.php or get.php suffix removed.
func BaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	for _, script := range []string{"player_api.php", "get.php"} {
		if i := strings.Index(strings.ToLower(raw), script); i >= 0 {
			raw = raw[:i]
		}
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw
}

// StreamURL builds the playback URL of a stream for the account's mode.
func StreamURL(base string, account *reconcile.Account, streamID, extension string) string {
	if base == "" || streamID == "" {
		return ""
	}
	if extension == "" {
		extension = "ts"
	}
	switch account.Action {
	case reconcile.ActionVOD:
		return fmt.Sprintf("%smovie/%s/%s/%s.%s", base, account.Username, account.Password, streamID, extension)
	case reconcile.ActionSeries:
		return fmt.Sprintf("%sseries/%s/%s/%s.%s", base, account.Username, account.Password, streamID, extension)
	default:
		return fmt.Sprintf("%slive/%s/%s/%s.%s", base, account.Username, account.Password, streamID, extension)
	}
}
