package ocr

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstSample(n int) int { return 0 }

func testConfig(endpoint string) Config {
	return Config{
		Endpoint:     endpoint,
		APIKey:       "test-key",
		PollInterval: time.Millisecond,
		MaxAttempts:  5,
	}
}

func TestExtractText_Success(t *testing.T) {
	pollCount := 0

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/vision/v3.2/read/analyze", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, "application/octet-stream", r.Header.Get("Content-Type"))

		w.Header().Set("Operation-Location", server.URL+"/operations/abc123")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("/operations/abc123", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("Ocp-Apim-Subscription-Key"))

		pollCount++
		if pollCount < 3 {
			_, _ = w.Write([]byte(`{"status":"running"}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"status": "succeeded",
			"analyzeResult": {
				"readResults": [
					{"lines": [{"text": "CORNER CAFE"}, {"text": "TOTAL $9.50"}]},
					{"lines": [{"text": "THANK YOU"}]}
				]
			}
		}`))
	})

	gateway := NewGateway(testConfig(server.URL))

	got := gateway.ExtractText(context.Background(), []byte("fake image"))

	assert.Equal(t, "CORNER CAFE\nTOTAL $9.50\nTHANK YOU", got)
	assert.Equal(t, 3, pollCount)
}

func TestExtractText_FallbackWhenUnconfigured(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "no credentials at all", cfg: Config{}},
		{name: "endpoint without key", cfg: Config{Endpoint: "https://example.com"}},
		{name: "key without endpoint", cfg: Config{APIKey: "k"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gateway := NewGateway(tt.cfg, WithSamplePicker(firstSample))

			assert.False(t, gateway.Configured())
			got := gateway.ExtractText(context.Background(), []byte("img"))
			assert.Equal(t, SampleAt(0), got)
		})
	}
}

func TestExtractText_SamplePickerReceivesSampleCount(t *testing.T) {
	var seen int
	gateway := NewGateway(Config{}, WithSamplePicker(func(n int) int {
		seen = n
		return n - 1
	}))

	got := gateway.ExtractText(context.Background(), nil)

	assert.Equal(t, SampleCount(), seen)
	assert.Equal(t, SampleAt(SampleCount()-1), got)
}

func TestExtractText_FallbackOnSubmitError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	gateway := NewGateway(testConfig(server.URL), WithSamplePicker(firstSample))

	got := gateway.ExtractText(context.Background(), []byte("img"))

	assert.Equal(t, SampleAt(0), got)
}

func TestExtractText_FallbackOnMissingOperationLocation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	gateway := NewGateway(testConfig(server.URL), WithSamplePicker(firstSample))

	got := gateway.ExtractText(context.Background(), []byte("img"))

	assert.Equal(t, SampleAt(0), got)
}

func TestExtractText_FallbackOnFailedStatus(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/vision/v3.2/read/analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Operation-Location", server.URL+"/operations/abc123")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("/operations/abc123", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"failed"}`))
	})

	gateway := NewGateway(testConfig(server.URL), WithSamplePicker(firstSample))

	got := gateway.ExtractText(context.Background(), []byte("img"))

	assert.Equal(t, SampleAt(0), got)
}

func TestExtractText_FallbackWhenPollingExhausted(t *testing.T) {
	pollCount := 0

	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/vision/v3.2/read/analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Operation-Location", server.URL+"/operations/abc123")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("/operations/abc123", func(w http.ResponseWriter, r *http.Request) {
		pollCount++
		_, _ = w.Write([]byte(`{"status":"running"}`))
	})

	cfg := testConfig(server.URL)
	cfg.MaxAttempts = 3
	gateway := NewGateway(cfg, WithSamplePicker(firstSample))

	got := gateway.ExtractText(context.Background(), []byte("img"))

	assert.Equal(t, SampleAt(0), got)
	assert.Equal(t, 3, pollCount)
}

func TestExtractText_FallbackOnCancelledContext(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/vision/v3.2/read/analyze", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Operation-Location", server.URL+"/operations/abc123")
		w.WriteHeader(http.StatusAccepted)
	})
	mux.HandleFunc("/operations/abc123", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"running"}`))
	})

	cfg := testConfig(server.URL)
	cfg.PollInterval = time.Hour
	gateway := NewGateway(cfg, WithSamplePicker(firstSample))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := gateway.ExtractText(ctx, []byte("img"))

	assert.Equal(t, SampleAt(0), got)
}

func TestSamples(t *testing.T) {
	require.Greater(t, SampleCount(), 0)
	for i := 0; i < SampleCount(); i++ {
		assert.NotEmpty(t, SampleAt(i))
		assert.Contains(t, SampleAt(i), "TOTAL")
	}
}
