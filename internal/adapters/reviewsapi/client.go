// internal/adapters/reviewsapi/client.go
package reviewsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"movies_web/internal/adapters/observability"
	"movies_web/internal/domain"
)

// SettingBaseURL is the name of the setting holding the reviews API root.
const SettingBaseURL = "WebServices:Reviews:BaseURL"

const (
	DefaultTimeout = 5 * time.Second

	opGetReview  = "get_review"
	opGetReviews = "get_reviews"
)

type Config struct {
	BaseURL string
	Timeout time.Duration // DefaultTimeout when zero
	RPS     int           // client-side rate limit; <= 0 disables it
}

// Client reads reviews from the remote reviews API. It is safe for concurrent use.
type Client struct {
	base *url.URL
	hc   *http.Client
	rl   *rate.Limiter
}

var _ domain.ReviewSource = (*Client)(nil)

func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" {
		return nil, fmt.Errorf("%s is required", SettingBaseURL)
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", SettingBaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%s: unsupported scheme %q", SettingBaseURL, base.Scheme)
	}
	// relative references resolve under the base path, not beside it
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rl := rate.NewLimiter(rate.Inf, 0)
	if cfg.RPS > 0 {
		rl = rate.NewLimiter(rate.Limit(cfg.RPS), cfg.RPS)
	}
	return &Client{
		base: base,
		hc:   &http.Client{Timeout: timeout},
		rl:   rl,
	}, nil
}

// ---- Public API ----

// GetReview fetches GET {base}/api/reviews/{id}. A 404 or a JSON null body is reported as
// not found, not as an error.
func (c *Client) GetReview(ctx context.Context, id int) (domain.Review, bool, error) {
	var out *domain.Review
	err := c.get(ctx, opGetReview, "api/reviews/"+strconv.Itoa(id), nil, &out)
	if err != nil {
		var ue *domain.UpstreamError
		if errors.As(err, &ue) && ue.Status == http.StatusNotFound {
			return domain.Review{}, false, nil
		}
		return domain.Review{}, false, err
	}
	if out == nil {
		return domain.Review{}, false, nil
	}
	return *out, true, nil
}

// GetReviews fetches GET {base}/api/reviews?category=MOV[&subject=...]. Every non-2xx status fails.
func (c *Client) GetReviews(ctx context.Context, subject *string) ([]domain.Review, error) {
	q := url.Values{}
	q.Set("category", domain.CategoryMovies)
	if subject != nil {
		q.Set("subject", *subject)
	}
	var out []domain.Review
	if err := c.get(ctx, opGetReviews, "api/reviews", q, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Review{}
	}
	return out, nil
}

// ---- Internals ----

// endpointURL resolves ref against the base. url.Values encodes keys in sorted order,
// which keeps category before subject.
func (c *Client) endpointURL(ref string, q url.Values) string {
	u := c.base.ResolveReference(&url.URL{Path: ref})
	if len(q) > 0 {
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// get performs a single GET and decodes a 2xx JSON body into out.
// Every failure comes back as *domain.UpstreamError.
func (c *Client) get(ctx context.Context, op, ref string, q url.Values, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return &domain.UpstreamError{Op: op, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpointURL(ref, q), nil)
	if err != nil {
		return &domain.UpstreamError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "movies-web/1.0")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("reviews", op, 0, time.Since(start))
		return &domain.UpstreamError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	observability.ObserveExternal("reviews", op, resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// read a small error body for diagnostics
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		detail := strings.TrimSpace(string(b))
		if detail == "" {
			detail = http.StatusText(resp.StatusCode)
		}
		return &domain.UpstreamError{Op: op, Status: resp.StatusCode, Err: errors.New(detail)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.UpstreamError{Op: op, Err: fmt.Errorf("decode body: %w", err)}
	}
	return nil
}
