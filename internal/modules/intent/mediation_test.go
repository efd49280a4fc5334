// README: Mediation client tests (httptest-backed contract, timeout, breaker).
package intent

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestMediationClassifySuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req mediationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProblemDescription == "" {
			t.Errorf("bad request body: %v", err)
		}
		entry := testEntries()[0]
		_ = json.NewEncoder(w).Encode(IntentResult{
			DetectedService: &entry,
			Confidence:      0.87,
			Reasoning:       "resuelto por el servidor",
			PreFilled:       PreFilledData{Servicio: entry.Name, Urgencia: UrgencyAlta},
		})
	}))
	defer srv.Close()

	c := NewMediationClient(srv.URL)
	res, err := c.Classify(context.Background(), "fuga de agua en el baño")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if res.DetectedService == nil || res.DetectedService.ID != "svc-fugas" {
		t.Errorf("detected = %+v, want svc-fugas", res.DetectedService)
	}
	if res.Confidence != 0.87 {
		t.Errorf("confidence = %f, want 0.87", res.Confidence)
	}
}

func TestMediationClassifyNoDetectedService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(IntentResult{Confidence: 0.2, Reasoning: "sin coincidencia"})
	}))
	defer srv.Close()

	c := NewMediationClient(srv.URL)
	_, err := c.Classify(context.Background(), "algo indescifrable")
	if !errors.Is(err, ErrMediationInvalid) {
		t.Fatalf("err = %v, want ErrMediationInvalid", err)
	}
}

func TestMediationClassifyErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewMediationClient(srv.URL)
	_, err := c.Classify(context.Background(), "fuga de agua")
	if !errors.Is(err, ErrMediationStatus) {
		t.Fatalf("err = %v, want ErrMediationStatus", err)
	}
}

func TestMediationClassifyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewMediationClient(srv.URL)
	c.http.Timeout = 50 * time.Millisecond
	_, err := c.Classify(context.Background(), "fuga de agua")
	if !errors.Is(err, ErrMediationTimeout) {
		t.Fatalf("err = %v, want ErrMediationTimeout", err)
	}
}

func TestMediationBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewMediationClient(srv.URL)
	for i := 0; i < 3; i++ {
		if _, err := c.Classify(context.Background(), "fuga de agua"); err == nil {
			t.Fatal("expected failure while the endpoint is down")
		}
	}

	// Breaker is now open: the call must fail fast without reaching the server.
	srv.Close()
	_, err := c.Classify(context.Background(), "fuga de agua")
	if !errors.Is(err, ErrMediationStatus) {
		t.Fatalf("err = %v, want ErrMediationStatus from the open breaker", err)
	}
}
