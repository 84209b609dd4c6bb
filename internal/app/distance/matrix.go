package distance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// MatrixClient запрашивает HTTP API расстояний (формат ответа Google Distance Matrix)
type MatrixClient struct {
	endpoint   string
	apiKey     string
	timeout    time.Duration
	limiter    *rate.Limiter
	httpClient *http.Client
}

type MatrixOption func(*MatrixClient)

func WithHTTPClient(c *http.Client) MatrixOption {
	return func(m *MatrixClient) { m.httpClient = c }
}

// NewMatrixClient создает клиент с лимитом ratePerSecond запросов и заданным burst
func NewMatrixClient(endpoint, apiKey string, timeout time.Duration, ratePerSecond float64, burst int, opts ...MatrixOption) *MatrixClient {
	if burst < 1 {
		burst = 1
	}
	m := &MatrixClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		timeout:    timeout,
		limiter:    rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

type matrixResponse struct {
	Status string `json:"status"`
	Rows   []struct {
		Elements []struct {
			Status   string `json:"status"`
			Distance struct {
				Value float64 `json:"value"` // метры
				Text  string  `json:"text"`
			} `json:"distance"`
		} `json:"elements"`
	} `json:"rows"`
	ErrorMessage string `json:"error_message"`
}

func (m *MatrixClient) Resolve(ctx context.Context, origin, destination string) (float64, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	if err := m.limiter.Wait(ctx); err != nil {
		return 0, unavailable("rate limit: %v", err)
	}

	q := url.Values{}
	q.Set("origins", origin)
	q.Set("destinations", destination)
	q.Set("units", "imperial")
	if m.apiKey != "" {
		q.Set("key", m.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return 0, unavailable("build request: %v", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return 0, unavailable("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, unavailable("unexpected status %d", resp.StatusCode)
	}

	var body matrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, unavailable("decode response: %v", err)
	}
	if body.Status != "OK" {
		logrus.WithFields(logrus.Fields{"status": body.Status, "error": body.ErrorMessage}).Warn("distance matrix rejected request")
		return 0, unavailable("matrix status %s", body.Status)
	}
	if len(body.Rows) == 0 || len(body.Rows[0].Elements) == 0 {
		return 0, unavailable("empty matrix response")
	}

	el := body.Rows[0].Elements[0]
	if el.Status != "OK" {
		return 0, unavailable("element status %s", el.Status)
	}

	return el.Distance.Value / metersPerMile, nil
}
