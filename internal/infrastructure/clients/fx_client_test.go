package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/compile-and-cry/GlobePay/pkg/config"
)

func newTestClient(serverURL string) *FxAPIClient {
	cfg := &config.FxAPIConfig{
		BaseURL:       serverURL,
		AccessKey:     "test-key",
		BasisCurrency: "USD",
		Timeout:       2,
	}
	return NewFxAPIClient(cfg, zerolog.Nop())
}

func TestGetLiveRate_DerivesCrossRate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("access_key"); got != "test-key" {
			t.Errorf("access_key = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("currencies"); got != "INR,AED" {
			t.Errorf("currencies = %q, want INR,AED", got)
		}
		w.Write([]byte(`{"success":true,"timestamp":1700000000,"quotes":{"USDINR":83.0,"USDAED":3.6725}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	rate, fetchedAt, err := client.GetLiveRate(context.Background(), "AED", "INR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := 83.0 / 3.6725
	if rate != want {
		t.Errorf("rate = %v, want %v", rate, want)
	}
	if !fetchedAt.Equal(time.Unix(1700000000, 0).UTC()) {
		t.Errorf("fetchedAt = %v, want provider timestamp", fetchedAt)
	}
}

func TestGetLiveRate_BasisBaseUsesDirectQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("currencies"); got != "INR" {
			t.Errorf("currencies = %q, want INR", got)
		}
		w.Write([]byte(`{"success":true,"timestamp":1700000000,"quotes":{"USDINR":83.0}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	rate, _, err := client.GetLiveRate(context.Background(), "USD", "INR")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rate != 83.0 {
		t.Errorf("rate = %v, want 83.0", rate)
	}
}

func TestGetLiveRate_Failures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		payload string
	}{
		{"http error", http.StatusBadGateway, `upstream down`},
		{"api error flag", http.StatusOK, `{"success":false,"error":{"code":101}}`},
		{"malformed payload", http.StatusOK, `{"success":`},
		{"missing quotes", http.StatusOK, `{"success":true,"timestamp":1}`},
		{"missing quote key", http.StatusOK, `{"success":true,"quotes":{"USDINR":83.0}}`},
		{"zero denominator", http.StatusOK, `{"success":true,"quotes":{"USDINR":83.0,"USDNPR":0}}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.payload))
			}))
			defer server.Close()

			client := newTestClient(server.URL)
			if _, _, err := client.GetLiveRate(context.Background(), "NPR", "INR"); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}
