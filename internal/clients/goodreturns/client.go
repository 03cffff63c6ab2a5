// Package goodreturns provides a client for the goodreturns.in gold-rate page
package goodreturns

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/bobmcallan/aurum/internal/common"
	"github.com/bobmcallan/aurum/internal/models"
)

const (
	DefaultBaseURL   = "https://www.goodreturns.in/gold-rates/"
	DefaultTimeout   = 20 * time.Second
	DefaultRateLimit = 1 // requests per second — it's a scrape, be polite
)

// IST is the capture timezone: Indian retail rates publish on IST mornings.
var IST = time.FixedZone("IST", int((5*time.Hour + 30*time.Minute).Seconds()))

// Client scrapes per-gram INR gold rates. The page layout is not an API;
// parsing is label-proximity based and best-effort for tiers below 24K.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new goodreturns client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchTodayRates scrapes today's per-gram rates. The 24K tier is required;
// missing lower tiers are left absent for normalization to derive.
func (c *Client) FetchTodayRates(ctx context.Context) (*models.RateSnapshot, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch gold rates: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gold rate source returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	snapshot, err := parseRatePage(string(body), c.baseURL)
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("date", snapshot.Date).
		Float64("rate_24k", snapshot.PerGram[24]).
		Msg("Fetched live gold rates")

	return snapshot, nil
}

// karatPattern matches a karat label ("24K") followed within 300 characters
// by a currency-looking figure ("₹7,245" or "7,245.50").
func karatPattern(karat int) *regexp.Regexp {
	return regexp.MustCompile(fmt.Sprintf(`(?is)%dK.{0,300}?(₹\s?[0-9,]+(?:\.[0-9]+)?)`, karat))
}

func parseRatePage(html, source string) (*models.RateSnapshot, error) {
	now := time.Now().In(IST)
	snapshot := &models.RateSnapshot{
		Date:       now.Format("2006-01-02"),
		CapturedAt: now,
		Source:     source,
		Provenance: models.ProvenanceLive,
		PerGram:    make(map[int]float64),
	}

	for _, karat := range models.KaratTiers {
		m := karatPattern(karat).FindStringSubmatch(html)
		if m == nil {
			continue
		}
		if rate, err := parseINR(m[1]); err == nil && rate > 0 {
			snapshot.PerGram[karat] = rate
		}
	}

	if snapshot.PerGram[24] <= 0 {
		return nil, fmt.Errorf("could not find 24K rate on page")
	}

	return snapshot, nil
}

// parseINR accepts values like "₹7,245" or "7,245.50".
func parseINR(text string) (float64, error) {
	cleaned := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' {
			return r
		}
		return -1
	}, text)
	if cleaned == "" {
		return 0, fmt.Errorf("no digits in %q", text)
	}
	return strconv.ParseFloat(cleaned, 64)
}
