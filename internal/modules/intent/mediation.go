// README: Mediation API client; server-side model wrapper for clients without a Gemini credential.
package intent

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
)

// mediationTimeout is the hard deadline on mediation calls; a hang becomes a
// typed failure so the orchestrator can fall through promptly.
const mediationTimeout = 5 * time.Second

// MediationClient calls the server-side endpoint that wraps the remote model.
// It performs no local catalog resolution: the endpoint's already-resolved
// identifiers are echoed into the standard IntentResult shape.
type MediationClient struct {
	url     string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func NewMediationClient(url string) *MediationClient {
	return &MediationClient{
		url:  url,
		http: &http.Client{Timeout: mediationTimeout},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "mediation-api",
			Timeout: 30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}
}

type mediationRequest struct {
	ProblemDescription string `json:"problemDescription"`
}

// Classify posts the description to the mediation endpoint. A response
// lacking a detected service is ErrMediationInvalid; the orchestrator treats
// it as a fallback trigger, not as a valid null-match result.
func (c *MediationClient) Classify(ctx context.Context, description string) (*IntentResult, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.post(ctx, description)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: circuit open", ErrMediationStatus)
		}
		return nil, err
	}

	res := out.(*IntentResult)
	if res.DetectedService == nil {
		return nil, ErrMediationInvalid
	}
	return res, nil
}

func (c *MediationClient) post(ctx context.Context, description string) (*IntentResult, error) {
	body, err := json.Marshal(mediationRequest{ProblemDescription: description})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%w: %v", ErrMediationTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrMediationStatus, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrMediationStatus, resp.StatusCode)
	}

	var result IntentResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrMediationStatus, err)
	}
	return &result, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}
