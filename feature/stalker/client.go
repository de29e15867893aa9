package stalker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"catalog-sync/core/fetch"
	"catalog-sync/core/reconcile"

	"go.uber.org/zap"
)

// ErrNoToken is returned when a handshake response carries no token.
var ErrNoToken = errors.New("portal returned no token")

const (
	deviceModel = "Model: MAG250; Link: WiFi"
	firmware    = "ImageDescription: 0.2.18-r23-250; ImageDate: Wed Aug 29 10:49:53 EEST 2018; PORTAL version: 5.6.9; API Version: JS API version: 343; STB API version: 146; Player Engine version: 0x58c"
)

// Client talks to Stalker/Ministra middleware portals.
type Client struct {
	http   *fetch.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewClient creates a portal client from the reload settings.
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
		now:    time.Now,
	}
}

// Handshake obtains a session token and registers the device profile.
// The token is cleared first, so a failed handshake leaves the account disconnected.
func (c *Client) Handshake(ctx context.Context, account *reconcile.Account) error {
	account.Token = ""

	params := url.Values{}
	params.Set("type", "stb")
	params.Set("action", "handshake")
	params.Set("token", "")
	params.Set("JsHttpRequest", c.jsHTTPRequest())

	var resp handshakeResponse
	if err := c.call(ctx, account, params, &resp); err != nil {
		return fmt.Errorf("failed to handshake: %w", err)
	}

	token := strings.TrimSpace(resp.token())
	if token == "" {
		return ErrNoToken
	}
	account.Token = token

	if err := c.call(ctx, account, c.profileParams(account), &envelope{}); err != nil {
		c.logger.Debug("Portal profile request failed",
			zap.String("account", account.Name),
			zap.Error(err))
	}
	return nil
}

// ListCategories lists genres for live TV and categories for the other modes.
func (c *Client) ListCategories(ctx context.Context, account *reconcile.Account) ([]reconcile.Category, error) {
	var resp categoryResponse
	if err := c.call(ctx, account, reconcile.CategoryParams(account.Action, c.now()), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	return resp.categories(), nil
}

// ListAllChannels issues one get_all_channels request.
// A response without a data array is an error, an empty array is not.
func (c *Client) ListAllChannels(ctx context.Context, account *reconcile.Account, page, perPage *int) ([]reconcile.Channel, error) {
	var resp channelResponse
	if err := c.call(ctx, account, reconcile.AllChannelsParams(page, perPage, c.now()), &resp); err != nil {
		if errors.Is(err, fetch.ErrDecode) {
			return nil, fmt.Errorf("%w: %w", reconcile.ErrMalformedResponse, err)
		}
		return nil, fmt.Errorf("failed to fetch all channels: %w", err)
	}
	data, err := resp.page()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", reconcile.ErrMalformedResponse, err)
	}
	return data.channels(account.Action), nil
}

// ListCategoryPage fetches one get_ordered_list page of a category.
func (c *Client) ListCategoryPage(ctx context.Context, account *reconcile.Account, categoryID string, page int) ([]reconcile.Channel, *reconcile.Pagination, error) {
	var resp channelResponse
	params := reconcile.OrderedListParams(categoryID, page, account.Action, c.now())
	if err := c.call(ctx, account, params, &resp); err != nil {
		return nil, nil, fmt.Errorf("failed to fetch category %s page %d: %w", categoryID, page, err)
	}
	data, err := resp.page()
	if err != nil {
		return nil, nil, err
	}
	return data.channels(account.Action), data.pagination(), nil
}

func (c *Client) call(ctx context.Context, account *reconcile.Account, params url.Values, out any) error {
	endpoint, err := PortalURL(account.URL)
	if err != nil {
		return err
	}
	return c.http.GetJSON(ctx, endpoint+"?"+params.Encode(), c.headers(account), out)
}

func (c *Client) headers(account *reconcile.Account) http.Header {
	header := http.Header{}
	header.Set("X-User-Agent", deviceModel)
	header.Set("Referer", account.URL)
	header.Set("Pragma", "no-cache")
	header.Set("Cookie", "mac="+account.MAC+"; stb_lang=en; timezone=GMT;")
	if account.Token != "" {
		header.Set("Authorization", "Bearer "+account.Token)
	}
	return header
}

func (c *Client) profileParams(account *reconcile.Account) url.Values {
	params := url.Values{}
	params.Set("type", "stb")
	params.Set("action", "get_profile")
	params.Set("hd", "1")
	params.Set("ver", firmware)
	params.Set("num_banks", "2")
	params.Set("stb_type", "MAG250")
	params.Set("client_type", "STB")
	params.Set("image_version", "218")
	params.Set("video_out", "hdmi")
	params.Set("auth_second_step", "1")
	params.Set("hw_version", "1.7-BD-00")
	params.Set("not_valid_token", "0")
	params.Set("metrics", `{"mac":"`+account.MAC+`","type":"STB","model":"MAG250"}`)
	params.Set("api_signature", "262")
	params.Set("prehash", "")
	params.Set("JsHttpRequest", c.jsHTTPRequest())
	return params
}

func (c *Client) jsHTTPRequest() string {
	return strconv.FormatInt(c.now().UnixMilli(), 10) + "-xml"
}

// PortalURL resolves the endpoint portal requests are sent to.
// A URL already naming a .php loader is used as is; stalker_portal installs
// answer on server/load.php and everything else on portal.php.
func PortalURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New("portal URL is blank")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid portal URL: %w", err)
	}
	u.RawQuery = ""
	u.Fragment = ""

	path := u.Path
	switch {
	case strings.HasSuffix(strings.ToLower(path), ".php"):
	case strings.Contains(path, "/stalker_portal"):
		path = path[:strings.Index(path, "/stalker_portal")] + "/stalker_portal/server/load.php"
	default:
		path = strings.TrimSuffix(path, "/")
		path = strings.TrimSuffix(path, "/c")
		path += "/portal.php"
	}
	u.Path = path
	return u.String(), nil
}
