package apitest

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestServer_RequiresBearerToken(t *testing.T) {
	srv := NewServer(t, Config{Token: "bhv_test"})

	resp, err := http.Post(srv.URL+"/api/v0/bhlast/domains", "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", resp.StatusCode)
	}
}

func TestServer_SetStatus(t *testing.T) {
	srv := NewServer(t, Config{Token: "bhv_test"})
	srv.SetStatus(RouteJobDelete, http.StatusConflict)

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v0/workflows/jobs/"+uuid.NewString(), nil)
	req.Header.Set("Authorization", "Bearer bhv_test")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409, got %d", resp.StatusCode)
	}
	if len(srv.DeletedJobs()) != 0 {
		t.Error("forced status should skip the handler")
	}

	// Сброс
	srv.SetStatus(RouteJobDelete, 0)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204, got %d", resp.StatusCode)
	}
}

func TestServer_SignedURLSingleUse(t *testing.T) {
	srv := NewServer(t, Config{Token: "bhv_test"})
	srv.PutBlob("report.txt", []byte("hello"))

	signed := srv.sign(objectBlob, "report.txt", http.MethodGet)

	resp, err := http.Get(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK || string(data) != "hello" {
		t.Fatalf("expected 200 hello, got %d %q", resp.StatusCode, data)
	}

	// Повторное использование
	resp, err = http.Get(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 on reuse, got %d", resp.StatusCode)
	}
}

func TestServer_SignedURLRejectsAuthorization(t *testing.T) {
	srv := NewServer(t, Config{Token: "bhv_test"})
	srv.PutBlob("report.txt", []byte("hello"))

	req, _ := http.NewRequest(http.MethodGet, srv.sign(objectBlob, "report.txt", http.MethodGet), nil)
	req.Header.Set("Authorization", "Bearer bhv_test")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestServer_AccessLogKeepsEscapedPath(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	srv := NewServer(t, Config{Token: "bhv_test", Logger: logger})

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/v0/blobs/a%2Fb%20c", nil)
	req.Header.Set("Authorization", "Bearer bhv_test")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resp.Body.Close()

	// Close дожидается завершения обработчиков
	srv.Close()

	out := buf.String()
	if !strings.Contains(out, "path=/api/v0/blobs/a%2Fb%20c") {
		t.Errorf("expected escaped path in log, got %q", out)
	}
	if !strings.Contains(out, "status=404") {
		t.Errorf("expected status in log, got %q", out)
	}
}
