package client

import (
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/bountyhub/bh/internal/telemetry"
)

func TestProfiles(t *testing.T) {
	if ControlProfile.Total() != 30*time.Second {
		t.Errorf("expected control total 30s, got %s", ControlProfile.Total())
	}
	if BulkProfile.SendTimeout != 240*time.Second || BulkProfile.ReceiveTimeout != 240*time.Second {
		t.Errorf("unexpected bulk profile: %+v", BulkProfile)
	}
	if BulkProfile.ConnectTimeout != ControlProfile.ConnectTimeout {
		t.Error("profiles should share the connect timeout")
	}

	opts := TransportOptions{UserAgent: "bh/test"}
	if c := newControlHTTPClient(opts); c.Timeout != ControlProfile.Total() {
		t.Errorf("control client timeout = %s", c.Timeout)
	}
	if c := newBulkHTTPClient(opts); c.Timeout != 0 {
		t.Errorf("bulk client should have no overall timeout, got %s", c.Timeout)
	}
}

func TestNewTransport_UserAgent(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	rt := NewTransport(BulkProfile, TransportOptions{UserAgent: "bh/1.2.3"})

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	resp, err := rt.RoundTrip(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if got != "bh/1.2.3" {
		t.Errorf("expected bh/1.2.3, got %q", got)
	}
	if req.Header.Get("User-Agent") != "" {
		t.Error("original request must not be modified")
	}
}

func TestNewTransport_Metrics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	m := telemetry.NewTransportMetrics()
	control := &http.Client{Transport: NewTransport(ControlProfile, TransportOptions{Metrics: m})}
	bulk := &http.Client{Transport: NewTransport(BulkProfile, TransportOptions{Metrics: m})}

	for _, c := range []*http.Client{control, bulk} {
		resp, err := c.Get(server.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		resp.Body.Close()
	}

	// По одной серии на профиль
	families, err := m.Gatherer().Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	profiles := map[string]bool{}
	for _, mf := range families {
		if mf.GetName() != "bh_http_requests_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "profile" {
					profiles[label.GetValue()] = true
				}
			}
		}
	}
	if !profiles["control"] || !profiles["bulk"] || len(profiles) != 2 {
		t.Errorf("expected control and bulk series, got %v", profiles)
	}
}

// stallingServer отдаёт часть тела и замолкает до закрытия соединения.
func stallingServer(t *testing.T, head string, total int) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(total))
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, head)
		w.(http.Flusher).Flush()
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestNewTransport_BodyStall(t *testing.T) {
	server := stallingServer(t, "abc", 10)

	profile := Profile{
		Name:           "bulk",
		ConnectTimeout: time.Second,
		SendTimeout:    time.Second,
		ReceiveTimeout: 200 * time.Millisecond,
	}
	c := &http.Client{Transport: NewTransport(profile, TransportOptions{})}

	resp, err := c.Get(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	start := time.Now()
	body, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)

	if err == nil {
		t.Fatalf("expected read error, got body %q", body)
	}
	var netErr net.Error
	if !errors.As(err, &netErr) || !netErr.Timeout() {
		t.Errorf("expected timeout error, got %v", err)
	}
	if string(body) != "abc" {
		t.Errorf("expected partial body abc, got %q", body)
	}
	if elapsed > 2*time.Second {
		t.Errorf("stall was not interrupted in time: %s", elapsed)
	}
}

func TestNewTransport_ControlBodyStall(t *testing.T) {
	server := stallingServer(t, "{", 32)

	profile := ControlProfile
	profile.ReceiveTimeout = 200 * time.Millisecond
	c := &http.Client{
		Transport: NewTransport(profile, TransportOptions{}),
		Timeout:   ControlProfile.Total(),
	}

	start := time.Now()
	resp, err := c.Get(server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()

	// Чтение тела ограничено ReceiveTimeout, а не общим таймаутом клиента
	if _, err := io.ReadAll(resp.Body); err == nil {
		t.Fatal("expected read error")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("read took %s, want about the receive timeout", elapsed)
	}
}

func TestIdleTimeout(t *testing.T) {
	tests := []struct {
		name    string
		receive time.Duration
		want    time.Duration
	}{
		{"control", ControlProfile.ReceiveTimeout, 5 * time.Second},
		{"bulk", BulkProfile.ReceiveTimeout, 90 * time.Second},
		{"unset", 0, 90 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idleTimeout(Profile{ReceiveTimeout: tt.receive}); got != tt.want {
				t.Errorf("idleTimeout(%s) = %s, want %s", tt.receive, got, tt.want)
			}
		})
	}
}
