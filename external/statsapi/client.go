package statsapi

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/colfarl/BeatTheHouse/internal/platform/logging"
)

const (
	defaultBaseURL        = "https://statsapi.mlb.com/api"
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = time.Second
	defaultPacingDelay    = 200 * time.Millisecond
	defaultPeopleBatch    = 100
)

var errStatsAPITransient = crerr.New("statsapi transient failure")

type ClientConfig struct {
	HTTPClient      *http.Client
	BaseURL         string
	Timeout         time.Duration
	MaxRetries      int
	RetryBaseDelay  time.Duration
	PacingDelay     time.Duration
	PeopleBatchSize int
	Logger          *logging.Logger
}

// Client talks to the MLB Stats API. Every fetch is retried with a
// linear backoff and followed by a fixed pacing sleep; transient
// exhaustion surfaces as an empty result, never as an error, so a bad
// upstream day degrades to skipped games instead of a dead run.
type Client struct {
	httpClient      *http.Client
	baseURL         string
	maxRetries      int
	retryBaseDelay  time.Duration
	pacingDelay     time.Duration
	peopleBatchSize int
	logger          *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 20 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	retryBaseDelay := cfg.RetryBaseDelay
	if retryBaseDelay <= 0 {
		retryBaseDelay = defaultRetryBaseDelay
	}
	pacingDelay := cfg.PacingDelay
	if pacingDelay < 0 {
		pacingDelay = defaultPacingDelay
	}
	peopleBatchSize := cfg.PeopleBatchSize
	if peopleBatchSize <= 0 {
		peopleBatchSize = defaultPeopleBatch
	}

	return &Client{
		httpClient:      httpClient,
		baseURL:         baseURL,
		maxRetries:      maxRetries,
		retryBaseDelay:  retryBaseDelay,
		pacingDelay:     pacingDelay,
		peopleBatchSize: peopleBatchSize,
		logger:          logger,
	}
}

// Schedule returns every game scheduled between start and end,
// inclusive. Exhausted retries yield an empty slice.
func (c *Client) Schedule(ctx context.Context, start, end time.Time) ([]ScheduleGame, error) {
	query := map[string]string{
		"sportId":   "1",
		"startDate": start.Format("2006-01-02"),
		"endDate":   end.Format("2006-01-02"),
	}

	var envelope scheduleEnvelope
	if ok, err := c.fetchJSON(ctx, "/v1/schedule", query, &envelope); err != nil || !ok {
		return []ScheduleGame{}, err
	}

	games := make([]ScheduleGame, 0, 16)
	for _, date := range envelope.Dates {
		for _, item := range date.Games {
			if game, ok := mapScheduleItem(date.Date, item); ok {
				games = append(games, game)
			}
		}
	}
	return games, nil
}

// RawBoxscore returns the boxscore payload for one game in its native
// shape. Exhausted retries yield nil.
func (c *Client) RawBoxscore(ctx context.Context, gamePk int64) (*RawBoxscore, error) {
	path := "/v1/game/" + strconv.FormatInt(gamePk, 10) + "/boxscore"

	var raw RawBoxscore
	if ok, err := c.fetchJSON(ctx, path, nil, &raw); err != nil || !ok {
		return nil, err
	}
	return &raw, nil
}

// Boxscore returns the summarized view of one game's box score: team
// totals plus batter and pitcher lines in appearance order, reshaped
// client-side from the raw payload. Exhausted retries yield nil.
func (c *Client) Boxscore(ctx context.Context, gamePk int64) (*BoxscoreSummary, error) {
	raw, err := c.RawBoxscore(ctx, gamePk)
	if err != nil || raw == nil {
		return nil, err
	}
	return summarizeBoxscore(gamePk, raw), nil
}

// People resolves player identities in chunks sized to stay under the
// endpoint's id limit. Chunks that exhaust their retries are dropped;
// the rest still come back.
func (c *Client) People(ctx context.Context, ids []int64) ([]Person, error) {
	if len(ids) == 0 {
		return []Person{}, nil
	}

	people := make([]Person, 0, len(ids))
	for start := 0; start < len(ids); start += c.peopleBatchSize {
		end := start + c.peopleBatchSize
		if end > len(ids) {
			end = len(ids)
		}

		chunk := ids[start:end]
		idValues := make([]string, 0, len(chunk))
		for _, id := range chunk {
			idValues = append(idValues, strconv.FormatInt(id, 10))
		}
		query := map[string]string{
			"personIds": strings.Join(idValues, ","),
		}

		var envelope peopleEnvelope
		ok, err := c.fetchJSON(ctx, "/v1/people", query, &envelope)
		if err != nil {
			return people, err
		}
		if !ok {
			continue
		}
		people = append(people, envelope.People...)
	}
	return people, nil
}

// fetchJSON runs one retried request plus the pacing sleep. The bool
// reports whether a payload was decoded; transient exhaustion returns
// (false, nil) after logging. Only context cancellation and malformed
// payloads come back as errors.
func (c *Client) fetchJSON(ctx context.Context, path string, query map[string]string, target any) (bool, error) {
	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	raw, err := c.executeRequest(ctx, fullURL)
	if pacingErr := c.pace(ctx); pacingErr != nil {
		return false, pacingErr
	}
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		if stderrors.Is(err, errStatsAPITransient) {
			c.logger.WarnContext(ctx, "statsapi fetch exhausted retries", "url", fullURL, "error", err)
			return false, nil
		}
		return false, err
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return false, fmt.Errorf("decode statsapi payload %s: %w", path, err)
	}
	return true, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * c.retryBaseDelay
			timer := time.NewTimer(backoff)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errStatsAPITransient, err)
			continue
		}

		raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = fmt.Errorf("%w: read response body: %v", errStatsAPITransient, readErr)
			continue
		}
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return raw, nil
		}
		if !isRetryableStatus(resp.StatusCode) {
			return nil, fmt.Errorf("statsapi status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
		}
		lastErr = fmt.Errorf("%w: statsapi status=%d body=%s", errStatsAPITransient, resp.StatusCode, abbreviateBody(raw))
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("%w: statsapi request failed", errStatsAPITransient)
	}
	return nil, lastErr
}

func (c *Client) pace(ctx context.Context) error {
	if c.pacingDelay <= 0 {
		return nil
	}
	timer := time.NewTimer(c.pacingDelay)
	select {
	case <-ctx.Done():
		timer.Stop()
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const limit = 256
	text := strings.TrimSpace(string(raw))
	if len(text) > limit {
		return text[:limit] + "..."
	}
	return text
}
