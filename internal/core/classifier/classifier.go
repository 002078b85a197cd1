package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Verdict is the classifier's judgment of a piece of text.
// HateScore is the reported probability of the hate class scaled to 0-100.
type Verdict struct {
	Flagged   bool    `json:"flagged"`
	HateScore float64 `json:"hateScore"`
}

// Service classifies user-submitted text before it is persisted.
//
// Classify never returns an error: when the classifier is unreachable, slow,
// or returns garbage, it resolves to the safe default verdict (not flagged,
// score 0) so content creation is never blocked on moderation availability.
// Failures are only observable in logs.
type Service interface {
	Classify(ctx context.Context, text string) Verdict
}

// predictRequest matches the classifier's /predict input schema.
type predictRequest struct {
	Text string `json:"text"`
}

// predictResponse matches the classifier's /predict output schema.
// Prediction is "Hate Speech" for flagged content; any other value is clean.
type predictResponse struct {
	Prediction    string             `json:"prediction"`
	Probabilities map[string]float64 `json:"probabilities"`
}

type httpClassifier struct {
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

// NewHTTPClassifier creates a classifier gateway that calls an external
// prediction service at baseURL. The timeout bounds each classification call;
// a hung classifier must not block content creation indefinitely.
func NewHTTPClassifier(baseURL string, timeout time.Duration, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &httpClassifier{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Classify sends text to the classifier's /predict endpoint and maps the
// response to a Verdict. Fail-open: every failure path returns the zero
// verdict after logging.
func (c *httpClassifier) Classify(ctx context.Context, text string) Verdict {
	payload, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		c.logger.Error("failed to marshal classifier request", "error", err)
		return Verdict{}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		c.logger.Error("failed to build classifier request", "error", err)
		return Verdict{}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Warn("classifier unavailable, using default verdict", "error", err)
		return Verdict{}
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("failed to close classifier response body", "error", closeErr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("classifier returned non-OK status, using default verdict",
			"status", resp.StatusCode)
		return Verdict{}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		c.logger.Warn("failed to read classifier response, using default verdict", "error", err)
		return Verdict{}
	}

	var result predictResponse
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Warn("malformed classifier response, using default verdict", "error", err)
		return Verdict{}
	}

	verdict := Verdict{
		Flagged:   result.Prediction == "Hate Speech",
		HateScore: result.Probabilities["hate"] * 100,
	}

	c.logger.Debug("text classified",
		"flagged", verdict.Flagged,
		"hateScore", verdict.HateScore)

	return verdict
}

// Noop returns a classifier that marks everything clean. Used in tests and
// setups without a classifier endpoint configured.
func Noop() Service {
	return noopClassifier{}
}

type noopClassifier struct{}

func (noopClassifier) Classify(ctx context.Context, text string) Verdict {
	return Verdict{}
}
