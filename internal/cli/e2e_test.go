package cli

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/bountyhub/bh/internal/apitest"
	"github.com/bountyhub/bh/internal/client"
)

// Команды против fake API через настоящий HTTPClient.

const e2eToken = "bhv_e2e"

func newE2E(t *testing.T) (*apitest.Server, *testCLI) {
	t.Helper()
	clearEnv(t)

	srv := apitest.NewServer(t, apitest.Config{Token: e2eToken})
	c, err := client.NewHTTPClient(client.ClientConfig{BaseURL: srv.URL, Token: e2eToken, Version: "e2e"})
	if err != nil {
		t.Fatalf("NewHTTPClient: %v", err)
	}
	return srv, newTestCLI(t, c, FormatText)
}

func TestE2E_BlobRoundTrip(t *testing.T) {
	srv, tc := newE2E(t)
	dir := t.TempDir()

	src := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(src, []byte("findings"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if err := tc.run("blob", "upload", "--src", src, "--dst", "team/report v1.txt"); err != nil {
		t.Fatalf("upload: %v", err)
	}
	if data, ok := srv.Blob("team/report v1.txt"); !ok || string(data) != "findings" {
		t.Fatalf("blob not stored: %q %v", data, ok)
	}

	out := filepath.Join(dir, "downloaded.txt")
	if err := tc.run("blob", "download", "--src", "team/report v1.txt", "--dst", out); err != nil {
		t.Fatalf("download: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != "findings" {
		t.Errorf("expected findings, got %q", data)
	}
}

func TestE2E_ArtifactDownloadNotFound(t *testing.T) {
	_, tc := newE2E(t)
	dir := t.TempDir()

	err := tc.run("job", "artifact", "download", "-j", uuid.NewString(), "-a", "missing.zip", "-o", dir)
	if !errors.Is(err, client.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if names := dirEntries(t, dir); len(names) != 0 {
		t.Errorf("no file should be created, got %v", names)
	}
}

func TestE2E_ScanDispatch(t *testing.T) {
	srv, tc := newE2E(t)
	workflowID := uuid.New()

	err := tc.run("scan", "dispatch",
		"-w", workflowID.String(),
		"-s", "nightly",
		"--input-string", "k=v",
		"--input-bool", "flag=true",
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dispatches := srv.Dispatches()
	if len(dispatches) != 1 {
		t.Fatalf("expected 1 dispatch, got %d", len(dispatches))
	}

	var body struct {
		ScanName string         `json:"scanName"`
		Inputs   map[string]any `json:"inputs"`
	}
	if err := json.Unmarshal(dispatches[0].Raw, &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.ScanName != "nightly" || body.Inputs["k"] != "v" || body.Inputs["flag"] != true {
		t.Errorf("unexpected body %s", dispatches[0].Raw)
	}
}

func TestE2E_ScanDispatchConflict(t *testing.T) {
	srv, tc := newE2E(t)
	srv.SetStatus(apitest.RouteScanDispatch, http.StatusConflict)

	err := tc.run("scan", "dispatch", "-w", uuid.NewString(), "-s", "nightly")
	if !errors.Is(err, client.ErrScanAlreadyScheduled) {
		t.Errorf("expected ErrScanAlreadyScheduled, got %v", err)
	}
}

func TestE2E_BhlastForbidden(t *testing.T) {
	srv, tc := newE2E(t)
	srv.SetStatus(apitest.RouteBhlastCreate, http.StatusForbidden)

	err := tc.run("bhlast", "create")
	if !errors.Is(err, ErrBhlastLimit) {
		t.Errorf("expected ErrBhlastLimit, got %v", err)
	}
}

func TestE2E_BlobDownloadEncodedPath(t *testing.T) {
	srv, tc := newE2E(t)
	content := []byte{0x00, 0xff, 'a', ' ', 'b', '\n', 0x7f}
	srv.PutBlob("a b.txt", content)

	dir := t.TempDir()
	if err := tc.run("blob", "download", "--src", "a b.txt", "--dst", dir); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	reqs := srv.RequestsFor(apitest.RouteBlobGet)
	if len(reqs) != 1 || reqs[0].RawPath != "/api/v0/blobs/a%20b%2Etxt" {
		t.Fatalf("unexpected control requests %+v", reqs)
	}

	data, err := os.ReadFile(filepath.Join(dir, "a b.txt"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if string(data) != string(content) {
		t.Errorf("expected %v, got %v", content, data)
	}
}
