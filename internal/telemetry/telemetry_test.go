package telemetry

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewLogger_Format(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf, "INFO", "")
	logger.Info("hello", "k", "v")

	// Не терминал — JSON по умолчанию
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected JSON output, got %q", buf.String())
	}

	buf.Reset()
	logger = NewLogger(&buf, "INFO", "text")
	logger.Info("hello", "k", "v")
	if !strings.Contains(buf.String(), "msg=hello") {
		t.Errorf("expected text output, got %q", buf.String())
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLogger(&buf, "WARN", "text")
	logger.Info("hidden")
	logger.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info record should be filtered at WARN")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("warn record should be logged")
	}
}

func TestFromContext(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithLogger(context.Background(), logger)

	if FromContext(ctx) != logger {
		t.Error("expected logger from context")
	}
	if FromContext(context.Background()) != slog.Default() {
		t.Error("expected default logger")
	}
}

func TestTransportMetrics_WriteTextfile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	m := NewTransportMetrics()
	client := &http.Client{Transport: m.InstrumentRoundTripper("control", http.DefaultTransport)}

	resp, err := client.Get(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	path := filepath.Join(t.TempDir(), "bh.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}

	want := `bh_http_requests_total{code="404",method="get",profile="control"} 1`
	if !strings.Contains(string(data), want) {
		t.Errorf("textfile missing %q:\n%s", want, data)
	}
}

func TestTransportMetrics_Nil(t *testing.T) {
	var m *TransportMetrics

	if rt := m.InstrumentRoundTripper("bulk", http.DefaultTransport); rt != http.DefaultTransport {
		t.Error("nil metrics should return the transport unchanged")
	}
	if err := m.WriteTextfile("/nonexistent/bh.prom"); err != nil {
		t.Errorf("nil metrics should not write: %v", err)
	}
}

func TestSetupTracing_Disabled(t *testing.T) {
	shutdown, err := SetupTracing(context.Background(), "", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Errorf("unexpected shutdown error: %v", err)
	}
}
