package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/HoaDang0803/ShineOn/internal/appstate"
	"github.com/HoaDang0803/ShineOn/pkg/config"
	pkgerrors "github.com/HoaDang0803/ShineOn/pkg/errors"
	"github.com/HoaDang0803/ShineOn/pkg/logger"
	"github.com/HoaDang0803/ShineOn/pkg/metrics"
)

var (
	errBaseURLRequired = errors.New("catalog base url is required")
	errLoggerRequired  = errors.New("catalog logger is required")
)

// Client is the gateway to the remote catalog API. The catalog is read-only;
// every failure surfaces as CodeDependency so callers can leave prior session
// state untouched.
type Client struct {
	httpClient *http.Client
	baseURL    string
	maxRetries int
	logger     *logger.Logger
	metrics    *metrics.HTTPMetrics
}

// NewClient validates the config and builds the catalog gateway.
func NewClient(cfg config.CatalogConfig, logg *logger.Logger, m *metrics.HTTPMetrics) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, errBaseURLRequired
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	retries := cfg.MaxRetries
	if retries < 0 {
		retries = 0
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    base,
		maxRetries: retries,
		logger:     logg,
		metrics:    m,
	}, nil
}

// List fetches the full product list.
func (c *Client) List(ctx context.Context) ([]appstate.Product, error) {
	return c.listProducts(ctx, "list_products", nil)
}

// ListByBrand fetches products filtered by brand name.
func (c *Client) ListByBrand(ctx context.Context, brand string) ([]appstate.Product, error) {
	return c.listProducts(ctx, "list_products_by_brand", url.Values{"brand": {brand}})
}

// ListByTitle fetches products matching a title search.
func (c *Client) ListByTitle(ctx context.Context, title string) ([]appstate.Product, error) {
	return c.listProducts(ctx, "list_products_by_title", url.Values{"title": {title}})
}

// GetByID fetches a single product.
func (c *Client) GetByID(ctx context.Context, id string) (*appstate.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	var product appstate.Product
	if err := c.getJSON(ctx, "get_product", "/products/"+url.PathEscape(id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Brands fetches the brand name list.
func (c *Client) Brands(ctx context.Context) ([]string, error) {
	var brands []string
	if err := c.getJSON(ctx, "list_brands", "/brand-list", nil, &brands); err != nil {
		return nil, err
	}
	return brands, nil
}

func (c *Client) listProducts(ctx context.Context, operation string, query url.Values) ([]appstate.Product, error) {
	var products []appstate.Product
	if err := c.getJSON(ctx, operation, "/products", query, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) getJSON(ctx context.Context, operation, path string, query url.Values, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "catalog request canceled")
			case <-time.After(time.Duration(attempt) * 100 * time.Millisecond):
			}
		}

		err := c.doOnce(ctx, target, out)
		if err == nil {
			c.metrics.IncUpstream(operation, "ok")
			return nil
		}
		lastErr = err
		if !retryable(err) {
			break
		}
	}

	c.metrics.IncUpstream(operation, "error")
	c.logger.Warn(c.logger.WithFields(ctx, map[string]any{"operation": operation, "url": target}),
		"catalog request failed")
	return pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr, "catalog request failed")
}

func (c *Client) doOnce(ctx context.Context, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &statusError{code: resp.StatusCode, body: strings.TrimSpace(string(body))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding catalog response: %w", err)
	}
	return nil
}

type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	if e.body == "" {
		return fmt.Sprintf("catalog returned status %d", e.code)
	}
	return fmt.Sprintf("catalog returned status %d: %s", e.code, e.body)
}

func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500
	}
	// transport-level failures (timeouts, refused connections) are retried
	return true
}
