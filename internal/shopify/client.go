package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/smallbiznis/shoplink/internal/config"
	"github.com/smallbiznis/shoplink/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const accessTokenHeader = "X-Shopify-Access-Token"

// UpstreamError reports a non-success response from the platform admin API.
type UpstreamError struct {
	Op     string
	Status int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("shopify: %s returned status %d", e.Op, e.Status)
}

// Client talks to the platform admin API on behalf of installed stores.
type Client struct {
	cfg         config.Config
	integration *config.IntegrationConfigHolder
	http        *http.Client
	log         *zap.Logger
	metrics     *metrics.Metrics
}

type Params struct {
	fx.In

	Config      config.Config
	Integration *config.IntegrationConfigHolder
	Log         *zap.Logger
	Metrics     *metrics.Metrics `optional:"true"`
}

func New(p Params) *Client {
	return &Client{
		cfg:         p.Config,
		integration: p.Integration,
		http:        &http.Client{Timeout: 30 * time.Second},
		log:         p.Log.Named("shopify.client"),
		metrics:     p.Metrics,
	}
}

// WithHTTPClient swaps the underlying transport. Used by tests pointing
// the client at local fixtures.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// shopBaseURL accepts either a bare platform domain or a full URL.
func shopBaseURL(shop string) string {
	if strings.Contains(shop, "://") {
		return strings.TrimSuffix(shop, "/")
	}
	return "https://" + shop
}

func (c *Client) apiVersion() string {
	return c.integration.Get().APIVersion
}

func (c *Client) pageSize() int {
	return c.integration.Get().PageSize
}

// AuthorizeURL builds the platform authorization redirect for the
// install flow.
func (c *Client) AuthorizeURL(shop, state string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.PlatformClientID)
	q.Set("scope", c.integration.Get().OAuthScopes)
	q.Set("redirect_uri", c.cfg.PlatformBaseURI+"api/auth")
	q.Set("state", state)
	return fmt.Sprintf("%s/admin/oauth/authorize?%s", shopBaseURL(shop), q.Encode())
}

// ExchangeToken trades an OAuth authorization code for a permanent
// access token.
func (c *Client) ExchangeToken(ctx context.Context, shop, code string) (string, error) {
	q := url.Values{}
	q.Set("client_id", c.cfg.PlatformClientID)
	q.Set("client_secret", c.cfg.PlatformClientSecret)
	q.Set("code", code)
	endpoint := fmt.Sprintf("%s/admin/oauth/access_token?%s", shopBaseURL(shop), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &UpstreamError{Op: "token exchange", Status: resp.StatusCode}
	}

	var token struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&token); err != nil {
		return "", fmt.Errorf("decode access token: %w", err)
	}
	if token.AccessToken == "" {
		return "", fmt.Errorf("token exchange returned empty access token")
	}
	return token.AccessToken, nil
}

// OrdersURL is the first page of the paid-orders collection.
func (c *Client) OrdersURL(shop string) string {
	return fmt.Sprintf("%s/admin/api/%s/orders.json?financial_status=paid&fields=id,customer,line_items&limit=%d",
		shopBaseURL(shop), c.apiVersion(), c.pageSize())
}

// DisputesURL is the first page of the payment disputes collection.
func (c *Client) DisputesURL(shop string) string {
	return fmt.Sprintf("%s/admin/api/%s/shopify_payments/disputes.json?limit=%d",
		shopBaseURL(shop), c.apiVersion(), c.pageSize())
}

// CheckoutsURL is the first page of open checkouts, optionally bounded
// below by the store's last sync cursor.
func (c *Client) CheckoutsURL(shop string, createdAtMin *time.Time) string {
	u := fmt.Sprintf("%s/admin/api/%s/checkouts.json?limit=%d&status=open",
		shopBaseURL(shop), c.apiVersion(), c.pageSize())
	if createdAtMin != nil {
		u += "&created_at_min=" + url.QueryEscape(createdAtMin.UTC().Format(time.RFC3339))
	}
	return u
}

// ListWebhooks returns the webhooks currently registered for the store.
func (c *Client) ListWebhooks(ctx context.Context, shop, token string) ([]Webhook, error) {
	endpoint := fmt.Sprintf("%s/admin/api/%s/webhooks.json", shopBaseURL(shop), c.apiVersion())
	resp, err := c.get(ctx, token, endpoint)
	if err != nil {
		return nil, err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Op: "list webhooks", Status: resp.StatusCode}
	}

	var env WebhooksEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode webhooks: %w", err)
	}
	return env.Webhooks, nil
}

// RegisterWebhook subscribes the given address to a topic.
func (c *Client) RegisterWebhook(ctx context.Context, shop, token, topic, address string) error {
	endpoint := fmt.Sprintf("%s/admin/api/%s/webhooks.json", shopBaseURL(shop), c.apiVersion())

	payload, err := json.Marshal(map[string]any{
		"webhook": map[string]any{
			"address": address,
			"topic":   topic,
			"format":  "json",
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(accessTokenHeader, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &UpstreamError{Op: "register webhook " + topic, Status: resp.StatusCode}
	}

	c.log.Info("webhook registered",
		zap.String("topic", topic),
		zap.String("address", address),
	)
	return nil
}

// FetchOrders pulls every paid order for the store.
func (c *Client) FetchOrders(ctx context.Context, shop, token string) ([]Order, error) {
	return FetchAll[OrdersEnvelope, Order](ctx, c, token, "orders", c.OrdersURL(shop))
}

// FetchDisputes pulls every payment dispute for the store.
func (c *Client) FetchDisputes(ctx context.Context, shop, token string) ([]Dispute, error) {
	return FetchAll[DisputesEnvelope, Dispute](ctx, c, token, "disputes", c.DisputesURL(shop))
}

// FetchCheckouts pulls open checkouts created at or after the cursor.
func (c *Client) FetchCheckouts(ctx context.Context, shop, token string, createdAtMin *time.Time) ([]Checkout, error) {
	return FetchAll[CheckoutsEnvelope, Checkout](ctx, c, token, "checkouts", c.CheckoutsURL(shop, createdAtMin))
}

func (c *Client) get(ctx context.Context, token, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(accessTokenHeader, token)
	return c.http.Do(req)
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}

var Module = fx.Module("shopify",
	fx.Provide(New),
)
