package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/bountyhub/bh/internal/domain"
	"github.com/bountyhub/bh/internal/telemetry"
	"github.com/bountyhub/bh/internal/validation"
)

const (
	// DefaultBaseURL — production endpoint BountyHub.
	DefaultBaseURL = "https://bountyhub.org"

	// ProductName — префикс User-Agent.
	ProductName = "bh"

	apiPrefix = "/api/v0"
)

// Операции для описаний ошибок и логов.
const (
	opDownloadJobArtifact      = "download job artifact"
	opDeleteJobArtifact        = "delete job artifact"
	opDeleteJob                = "delete job"
	opDispatchScan             = "dispatch scan"
	opDownloadBlobFile         = "download blob file"
	opUploadBlobFile           = "upload blob file"
	opCreateRunnerRegistration = "create runner registration"
	opCreateBhlastDomain       = "create bhlast domain"
)

// ClientConfig — конфигурация для создания HTTPClient.
type ClientConfig struct {
	// BaseURL — адрес BountyHub. Если пустой, используется DefaultBaseURL.
	BaseURL string
	// Token — personal access token, отправляется как Bearer.
	Token string
	// Version — версия CLI для User-Agent.
	Version string
	// Logger — если nil, используется slog.Default().
	Logger *slog.Logger
	// Metrics — метрики транспорта, может быть nil.
	Metrics *telemetry.TransportMetrics
	// Tracing включает otelhttp-обёртку транспорта.
	Tracing bool
}

// HTTPClient — реализация Client поверх BountyHub HTTP API.
//
// Все поля неизменяемы после NewHTTPClient, поэтому HTTPClient
// можно использовать из нескольких горутин без блокировок.
type HTTPClient struct {
	baseURL       string
	authorization string
	userAgent     string
	control       *http.Client
	bulk          *http.Client
	logger        *slog.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient создаёт клиент с двумя транспортными профилями.
func NewHTTPClient(cfg ClientConfig) (*HTTPClient, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("invalid base url %q: scheme must be http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("invalid base url %q: missing host", baseURL)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	userAgent := ProductName + "/" + version

	opts := TransportOptions{
		UserAgent: userAgent,
		Metrics:   cfg.Metrics,
		Tracing:   cfg.Tracing,
	}

	return &HTTPClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		authorization: "Bearer " + cfg.Token,
		userAgent:     userAgent,
		control:       newControlHTTPClient(opts),
		bulk:          newBulkHTTPClient(opts),
		logger:        logger,
	}, nil
}

// BaseURL возвращает адрес API без завершающего '/'.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// UserAgent возвращает значение заголовка User-Agent.
func (c *HTTPClient) UserAgent() string {
	return c.userAgent
}

// --- Jobs ---

// DownloadJobArtifact получает pre-signed URL артефакта и открывает поток.
func (c *HTTPClient) DownloadJobArtifact(ctx context.Context, jobID uuid.UUID, name string) (io.ReadCloser, error) {
	var res domain.URLResponse
	if err := c.getJSON(ctx, opDownloadJobArtifact, artifactPath(jobID, name), &res); err != nil {
		return nil, err
	}
	return c.openSigned(ctx, opDownloadJobArtifact, res.URL)
}

// DeleteJobArtifact удаляет артефакт job'а.
func (c *HTTPClient) DeleteJobArtifact(ctx context.Context, jobID uuid.UUID, name string) error {
	return c.delete(ctx, opDeleteJobArtifact, artifactPath(jobID, name))
}

// DeleteJob удаляет job.
func (c *HTTPClient) DeleteJob(ctx context.Context, jobID uuid.UUID) error {
	return c.delete(ctx, opDeleteJob, "/workflows/jobs/"+jobID.String())
}

// --- Scans ---

// DispatchScan запускает scan. 409 означает, что scan для workflow
// уже запланирован.
func (c *HTTPClient) DispatchScan(ctx context.Context, workflowID uuid.UUID, scanName string, inputs domain.Inputs) error {
	if err := validation.ValidateScanName(scanName); err != nil {
		return err
	}
	for key := range inputs {
		if err := validation.ValidateWorkflowVarKey(key); err != nil {
			return err
		}
	}

	body := domain.DispatchScanRequest{ScanName: scanName, Inputs: inputs}
	path := "/workflows/" + workflowID.String() + "/scans/dispatch"

	err := c.postJSON(ctx, opDispatchScan, path, body, nil)
	if errors.Is(err, ErrConflict) {
		return &Error{
			Op:         opDispatchScan,
			Kind:       KindConflict,
			StatusCode: http.StatusConflict,
			Err:        ErrScanAlreadyScheduled,
		}
	}
	return err
}

// --- Blobs ---

// DownloadBlobFile получает pre-signed URL файла и открывает поток.
func (c *HTTPClient) DownloadBlobFile(ctx context.Context, path string) (io.ReadCloser, error) {
	var res domain.URLResponse
	if err := c.getJSON(ctx, opDownloadBlobFile, "/blobs/"+EncodePathComponent(path), &res); err != nil {
		return nil, err
	}
	return c.openSigned(ctx, opDownloadBlobFile, res.URL)
}

// UploadBlobFile получает pre-signed URL и отправляет файл PUT-запросом.
//
// Для обычного файла Content-Length берётся из Stat: хранилища за
// pre-signed URL обычно не принимают chunked upload. Pipe, FIFO и
// /proc сообщают размер 0, поэтому их содержимое уходит chunked.
func (c *HTTPClient) UploadBlobFile(ctx context.Context, file *os.File, dst string) error {
	if file == nil {
		return &Error{Op: opUploadBlobFile, Kind: KindGeneric, Detail: "nil file"}
	}

	info, err := file.Stat()
	if err != nil {
		return &Error{Op: opUploadBlobFile, Kind: KindGeneric, Detail: "stat file: " + err.Error(), Err: err}
	}

	var res domain.URLResponse
	if err := c.postJSON(ctx, opUploadBlobFile, "/blobs/files", domain.UploadBlobFileRequest{Path: dst}, &res); err != nil {
		return err
	}

	body := &countingReader{r: file}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, res.URL, io.NopCloser(body))
	if err != nil {
		return &Error{Op: opUploadBlobFile, Kind: KindGeneric, Detail: "invalid signed url: " + err.Error(), Err: err}
	}
	switch {
	case !info.Mode().IsRegular():
		req.ContentLength = -1
	case info.Size() == 0:
		req.Body = http.NoBody
		req.ContentLength = 0
	default:
		req.ContentLength = info.Size()
	}

	start := time.Now()
	resp, err := c.bulk.Do(req)
	if err != nil {
		return transportError(opUploadBlobFile, err)
	}
	defer resp.Body.Close()

	c.logExchange(opUploadBlobFile, req, resp.StatusCode, start)
	if err := checkStatus(opUploadBlobFile, resp); err != nil {
		return err
	}

	c.logger.Debug("blob uploaded", "path", dst, "size", humanize.Bytes(uint64(body.n)), "chunked", req.ContentLength < 0)
	return nil
}

// --- Runners ---

// CreateRunnerRegistration создаёт регистрацию runner'а.
func (c *HTTPClient) CreateRunnerRegistration(ctx context.Context) (*domain.RunnerRegistration, error) {
	var res domain.RunnerRegistration
	if err := c.postJSON(ctx, opCreateRunnerRegistration, "/runner-registrations", struct{}{}, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// --- Bhlast ---

// CreateBhlastDomain создаёт bhlast домен.
func (c *HTTPClient) CreateBhlastDomain(ctx context.Context) (string, error) {
	var res domain.CreatedResponse
	if err := c.postJSON(ctx, opCreateBhlastDomain, "/bhlast/domains", struct{}{}, &res); err != nil {
		return "", err
	}
	return res.ID, nil
}

// --- HTTP helpers ---

func artifactPath(jobID uuid.UUID, name string) string {
	return "/workflows/jobs/" + jobID.String() + "/artifacts/" + EncodePathComponent(name)
}

func (c *HTTPClient) getJSON(ctx context.Context, op, path string, result any) error {
	return c.doJSON(ctx, op, http.MethodGet, path, nil, result)
}

func (c *HTTPClient) postJSON(ctx context.Context, op, path string, body any, result any) error {
	return c.doJSON(ctx, op, http.MethodPost, path, body, result)
}

func (c *HTTPClient) delete(ctx context.Context, op, path string) error {
	return c.doJSON(ctx, op, http.MethodDelete, path, nil, nil)
}

// doJSON выполняет запрос к API через профиль control.
// Если result не nil, тело ответа декодируется в него.
func (c *HTTPClient) doJSON(ctx context.Context, op, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Op: op, Kind: KindGeneric, Detail: "marshal request: " + err.Error(), Err: err}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, bodyReader)
	if err != nil {
		return &Error{Op: op, Kind: KindGeneric, Detail: "create request: " + err.Error(), Err: err}
	}

	req.Header.Set("Authorization", c.authorization)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.control.Do(req)
	if err != nil {
		return transportError(op, err)
	}
	defer resp.Body.Close()

	c.logExchange(op, req, resp.StatusCode, start)
	if err := checkStatus(op, resp); err != nil {
		return err
	}

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return decodeError(op, err)
	}
	return nil
}

// openSigned открывает поток по pre-signed URL через профиль bulk.
// Authorization не отправляется: URL уже содержит подпись.
func (c *HTTPClient) openSigned(ctx context.Context, op, signedURL string) (io.ReadCloser, error) {
	if signedURL == "" {
		return nil, &Error{Op: op, Kind: KindGeneric, Detail: "empty signed url in response"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, signedURL, nil)
	if err != nil {
		return nil, &Error{Op: op, Kind: KindGeneric, Detail: "invalid signed url: " + err.Error(), Err: err}
	}

	start := time.Now()
	resp, err := c.bulk.Do(req)
	if err != nil {
		return nil, transportError(op, err)
	}

	c.logExchange(op, req, resp.StatusCode, start)
	if err := checkStatus(op, resp); err != nil {
		resp.Body.Close()
		return nil, err
	}

	return &transferBody{ReadCloser: resp.Body, op: op}, nil
}

// logExchange пишет debug-запись об обмене. Query pre-signed URL не логируется.
func (c *HTTPClient) logExchange(op string, req *http.Request, status int, start time.Time) {
	c.logger.Debug("http exchange",
		"op", op,
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.EscapedPath(),
		"status", status,
		"duration", time.Since(start),
	)
}

// checkStatus возвращает Error для не-2xx ответа.
func checkStatus(op string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return StatusError(op, resp.StatusCode, data)
}

// transferBody — поток по pre-signed URL. Ошибки чтения посреди
// передачи превращаются в KindGeneric.
type transferBody struct {
	io.ReadCloser
	op string
}

func (b *transferBody) Read(p []byte) (int, error) {
	n, err := b.ReadCloser.Read(p)
	if err != nil && err != io.EOF {
		return n, transportError(b.op, err)
	}
	return n, err
}

// countingReader считает отправленные байты.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
