package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	config "github.com/maheshrc27/cominiti-api/configs"
	"github.com/maheshrc27/cominiti-api/internal/metrics"
	"github.com/maheshrc27/cominiti-api/internal/transfer"
)

const (
	instagramAuthorizeURL = "https://www.instagram.com/oauth/authorize"
	instagramScope        = "instagram_business_basic"
	mediaFields           = "id,caption,media_type,media_url,permalink,timestamp,thumbnail_url"
	profileFields         = "id,username,account_type,media_count"
)

// InstagramClient talks to the Instagram API with Business Login.
type InstagramClient interface {
	AuthorizeURL(redirectURI, state string) string
	ExchangeCode(ctx context.Context, code, redirectURI string) (*transfer.InstagramShortLivedToken, error)
	ExchangeLongLived(ctx context.Context, shortLivedToken string) (*transfer.InstagramLongLivedToken, error)
	RefreshToken(ctx context.Context, accessToken string) (*transfer.InstagramLongLivedToken, error)
	GetProfile(ctx context.Context, accessToken string) (*transfer.InstagramProfile, error)
	GetMedia(ctx context.Context, accessToken string, limit int) ([]transfer.InstagramMedia, error)
}

type instagramClient struct {
	httpClient   *http.Client
	clientID     string
	clientSecret string
	apiBase      string
	graphBase    string
}

func NewInstagramClient(cfg config.Config, httpClient *http.Client) InstagramClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPClientTimeout}
	}
	return &instagramClient{
		httpClient:   httpClient,
		clientID:     cfg.InstagramClientID,
		clientSecret: cfg.InstagramClientSecret,
		apiBase:      strings.TrimRight(cfg.InstagramAPIBase, "/"),
		graphBase:    strings.TrimRight(cfg.InstagramGraphBase, "/"),
	}
}

func (c *instagramClient) AuthorizeURL(redirectURI, state string) string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", instagramScope)
	q.Set("response_type", "code")
	q.Set("state", state)
	return instagramAuthorizeURL + "?" + q.Encode()
}

func (c *instagramClient) ExchangeCode(ctx context.Context, code, redirectURI string) (*transfer.InstagramShortLivedToken, error) {
	form := url.Values{}
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", redirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/oauth/access_token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var token transfer.InstagramShortLivedToken
	if err := c.do(req, "exchange_code", &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *instagramClient) ExchangeLongLived(ctx context.Context, shortLivedToken string) (*transfer.InstagramLongLivedToken, error) {
	q := url.Values{}
	q.Set("grant_type", "ig_exchange_token")
	q.Set("client_secret", c.clientSecret)
	q.Set("access_token", shortLivedToken)

	var token transfer.InstagramLongLivedToken
	if err := c.get(ctx, "/access_token", q, "exchange_long_lived", &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *instagramClient) RefreshToken(ctx context.Context, accessToken string) (*transfer.InstagramLongLivedToken, error) {
	q := url.Values{}
	q.Set("grant_type", "ig_refresh_token")
	q.Set("access_token", accessToken)

	var token transfer.InstagramLongLivedToken
	if err := c.get(ctx, "/refresh_access_token", q, "refresh_token", &token); err != nil {
		return nil, err
	}
	return &token, nil
}

func (c *instagramClient) GetProfile(ctx context.Context, accessToken string) (*transfer.InstagramProfile, error) {
	q := url.Values{}
	q.Set("fields", profileFields)
	q.Set("access_token", accessToken)

	var profile transfer.InstagramProfile
	if err := c.get(ctx, "/me", q, "profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (c *instagramClient) GetMedia(ctx context.Context, accessToken string, limit int) ([]transfer.InstagramMedia, error) {
	q := url.Values{}
	q.Set("fields", mediaFields)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("access_token", accessToken)

	var page transfer.InstagramMediaPage
	if err := c.get(ctx, "/me/media", q, "media", &page); err != nil {
		return nil, err
	}
	return page.Data, nil
}

func (c *instagramClient) get(ctx context.Context, path string, q url.Values, op string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.graphBase+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	return c.do(req, op, out)
}

func (c *instagramClient) do(req *http.Request, op string, out any) (err error) {
	start := time.Now()
	defer func() {
		metrics.InstagramRequests.WithLabelValues(op, metrics.Outcome(err)).Inc()
		metrics.InstagramRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	}()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("instagram %s: %w", op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("instagram %s: error reading response body: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr transfer.InstagramErrorResponse
		_ = json.Unmarshal(body, &apiErr)
		return &transfer.ProviderError{Op: op, StatusCode: resp.StatusCode, Message: apiErr.Message()}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("instagram %s: error parsing response: %w", op, err)
	}
	return nil
}
