package apitest

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/bountyhub/bh/internal/domain"
)

// Имена маршрутов для SetStatus и RecordedRequest.Route.
const (
	RouteArtifactGet    = "artifact.get"
	RouteArtifactDelete = "artifact.delete"
	RouteJobDelete      = "job.delete"
	RouteScanDispatch   = "scan.dispatch"
	RouteBlobGet        = "blob.get"
	RouteBlobUpload     = "blob.upload"
	RouteRunnerCreate   = "runner.create"
	RouteBhlastCreate   = "bhlast.create"
	RouteSignedGet      = "signed.get"
	RouteSignedPut      = "signed.put"
)

// Config — параметры fake сервера.
type Config struct {
	// Token — ожидаемый Bearer токен.
	Token string
	// Logger — если nil, логи отбрасываются.
	Logger *slog.Logger
}

// RecordedRequest — запрос, полученный сервером.
type RecordedRequest struct {
	Route         string
	Method        string
	RawPath       string
	Header        http.Header
	ContentLength int64
	Body          []byte
}

// Dispatch — принятый запрос на запуск scan'а.
type Dispatch struct {
	WorkflowID uuid.UUID
	Request    domain.DispatchScanRequest
	Raw        json.RawMessage
}

type objectKind int

const (
	objectArtifact objectKind = iota + 1
	objectBlob
)

// signedObject — объект, на который указывает pre-signed URL.
type signedObject struct {
	kind   objectKind
	key    string
	method string
}

// Server — fake BountyHub API.
type Server struct {
	*httptest.Server

	logger *slog.Logger

	mu           sync.Mutex
	artifacts    map[string][]byte
	blobs        map[string][]byte
	signed       map[string]signedObject
	statuses     map[string]int
	requests     []RecordedRequest
	dispatches   []Dispatch
	deletedJobs  []uuid.UUID
	registration domain.RunnerRegistration
	bhlastID     string
}

// NewServer запускает fake сервер и закрывает его в t.Cleanup.
func NewServer(t testing.TB, cfg Config) *Server {
	t.Helper()

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		logger:    logger,
		artifacts: make(map[string][]byte),
		blobs:     make(map[string][]byte),
		signed:    make(map[string]signedObject),
		statuses:  make(map[string]int),
		registration: domain.RunnerRegistration{
			URL:   "https://bountyhub.example",
			Token: "bhr_registration",
		},
		bhlastID: uuid.NewString(),
	}

	s.Server = httptest.NewServer(s.routes(cfg.Token))
	t.Cleanup(s.Close)
	return s
}

func (s *Server) routes(token string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(accessLog(s.logger))

	r.Route("/api/v0", func(r chi.Router) {
		r.Use(BearerAuth(token))

		r.Get("/workflows/jobs/{jobID}/artifacts/{name}", s.handle(RouteArtifactGet, s.getArtifact))
		r.Delete("/workflows/jobs/{jobID}/artifacts/{name}", s.handle(RouteArtifactDelete, s.deleteArtifact))
		r.Delete("/workflows/jobs/{jobID}", s.handle(RouteJobDelete, s.deleteJob))
		r.Post("/workflows/{workflowID}/scans/dispatch", s.handle(RouteScanDispatch, s.dispatchScan))
		r.Post("/blobs/files", s.handle(RouteBlobUpload, s.uploadBlob))
		r.Get("/blobs/{path}", s.handle(RouteBlobGet, s.getBlob))
		r.Post("/runner-registrations", s.handle(RouteRunnerCreate, s.createRegistration))
		r.Post("/bhlast/domains", s.handle(RouteBhlastCreate, s.createBhlastDomain))
	})

	r.Get("/signed/{token}", s.handle(RouteSignedGet, s.signedGet))
	r.Put("/signed/{token}", s.handle(RouteSignedPut, s.signedPut))

	return r
}

// handle записывает запрос и применяет статус, заданный через SetStatus.
// Тело запроса читается целиком и подменяется на копию.
func (s *Server) handle(route string, next func(w http.ResponseWriter, r *http.Request, body []byte)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			Error(w, r, http.StatusBadRequest, "read body: "+err.Error())
			return
		}

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Route:         route,
			Method:        r.Method,
			RawPath:       r.URL.EscapedPath(),
			Header:        r.Header.Clone(),
			ContentLength: r.ContentLength,
			Body:          body,
		})
		status, forced := s.statuses[route]
		s.mu.Unlock()

		if forced {
			Error(w, r, status, http.StatusText(status))
			return
		}
		next(w, r, body)
	}
}

// SetStatus заставляет маршрут отвечать заданным статусом.
// Статус 0 снимает переопределение.
func (s *Server) SetStatus(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status == 0 {
		delete(s.statuses, route)
		return
	}
	s.statuses[route] = status
}

// PutArtifact сохраняет артефакт job'а.
func (s *Server) PutArtifact(jobID uuid.UUID, name string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts[artifactKey(jobID, name)] = append([]byte(nil), data...)
}

// Artifact возвращает содержимое артефакта.
func (s *Server) Artifact(jobID uuid.UUID, name string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.artifacts[artifactKey(jobID, name)]
	return data, ok
}

// PutBlob сохраняет файл в blob storage.
func (s *Server) PutBlob(path string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[path] = append([]byte(nil), data...)
}

// Blob возвращает содержимое файла из blob storage.
func (s *Server) Blob(path string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.blobs[path]
	return data, ok
}

// SetRegistration задаёт ответ на создание регистрации runner'а.
func (s *Server) SetRegistration(reg domain.RunnerRegistration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registration = reg
}

// BhlastID возвращает id, который сервер отдаёт при создании домена.
func (s *Server) BhlastID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bhlastID
}

// Requests возвращает копию всех полученных запросов.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// RequestsFor возвращает запросы к одному маршруту.
func (s *Server) RequestsFor(route string) []RecordedRequest {
	var out []RecordedRequest
	for _, req := range s.Requests() {
		if req.Route == route {
			out = append(out, req)
		}
	}
	return out
}

// Dispatches возвращает принятые запросы на запуск scan'ов.
func (s *Server) Dispatches() []Dispatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Dispatch(nil), s.dispatches...)
}

// DeletedJobs возвращает id удалённых job'ов.
func (s *Server) DeletedJobs() []uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uuid.UUID(nil), s.deletedJobs...)
}

// --- API handlers ---

func (s *Server) getArtifact(w http.ResponseWriter, r *http.Request, _ []byte) {
	jobID, name, ok := artifactParams(w, r)
	if !ok {
		return
	}

	key := artifactKey(jobID, name)
	s.mu.Lock()
	_, exists := s.artifacts[key]
	s.mu.Unlock()
	if !exists {
		Error(w, r, http.StatusNotFound, "artifact not found")
		return
	}

	JSON(w, r, http.StatusOK, domain.URLResponse{URL: s.sign(objectArtifact, key, http.MethodGet)})
}

func (s *Server) deleteArtifact(w http.ResponseWriter, r *http.Request, _ []byte) {
	jobID, name, ok := artifactParams(w, r)
	if !ok {
		return
	}

	key := artifactKey(jobID, name)
	s.mu.Lock()
	_, exists := s.artifacts[key]
	delete(s.artifacts, key)
	s.mu.Unlock()
	if !exists {
		Error(w, r, http.StatusNotFound, "artifact not found")
		return
	}
	NoContent(w)
}

func (s *Server) deleteJob(w http.ResponseWriter, r *http.Request, _ []byte) {
	jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, "invalid job id")
		return
	}

	s.mu.Lock()
	s.deletedJobs = append(s.deletedJobs, jobID)
	s.mu.Unlock()
	NoContent(w)
}

func (s *Server) dispatchScan(w http.ResponseWriter, r *http.Request, body []byte) {
	workflowID, err := uuid.Parse(chi.URLParam(r, "workflowID"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, "invalid workflow id")
		return
	}

	var req domain.DispatchScanRequest
	if err := json.Unmarshal(body, &req); err != nil {
		Error(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.ScanName == "" {
		Error(w, r, http.StatusBadRequest, "scanName is required")
		return
	}

	s.mu.Lock()
	s.dispatches = append(s.dispatches, Dispatch{WorkflowID: workflowID, Request: req, Raw: body})
	s.mu.Unlock()
	NoContent(w)
}

func (s *Server) getBlob(w http.ResponseWriter, r *http.Request, _ []byte) {
	path, err := url.PathUnescape(chi.URLParam(r, "path"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, "invalid path")
		return
	}

	s.mu.Lock()
	_, exists := s.blobs[path]
	s.mu.Unlock()
	if !exists {
		Error(w, r, http.StatusNotFound, "file not found")
		return
	}

	JSON(w, r, http.StatusOK, domain.URLResponse{URL: s.sign(objectBlob, path, http.MethodGet)})
}

func (s *Server) uploadBlob(w http.ResponseWriter, r *http.Request, body []byte) {
	var req domain.UploadBlobFileRequest
	if err := json.Unmarshal(body, &req); err != nil {
		Error(w, r, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Path == "" {
		Error(w, r, http.StatusBadRequest, "path is required")
		return
	}

	JSON(w, r, http.StatusOK, domain.URLResponse{URL: s.sign(objectBlob, req.Path, http.MethodPut)})
}

func (s *Server) createRegistration(w http.ResponseWriter, r *http.Request, _ []byte) {
	s.mu.Lock()
	reg := s.registration
	s.mu.Unlock()
	JSON(w, r, http.StatusOK, reg)
}

func (s *Server) createBhlastDomain(w http.ResponseWriter, r *http.Request, _ []byte) {
	JSON(w, r, http.StatusOK, domain.CreatedResponse{ID: s.BhlastID()})
}

// --- Signed URLs ---

// sign выдаёт одноразовый URL на объект.
func (s *Server) sign(kind objectKind, key, method string) string {
	token := uuid.NewString()

	s.mu.Lock()
	s.signed[token] = signedObject{kind: kind, key: key, method: method}
	s.mu.Unlock()

	return s.URL + "/signed/" + token + "?X-Signature=" + token
}

// redeem забирает объект по токену. Токен должен быть выдан для method
// и предъявлен с совпадающей подписью.
func (s *Server) redeem(r *http.Request, method string) (signedObject, bool) {
	token := chi.URLParam(r, "token")

	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.signed[token]
	if !ok || obj.method != method || r.URL.Query().Get("X-Signature") != token {
		return signedObject{}, false
	}
	delete(s.signed, token)
	return obj, true
}

func (s *Server) signedGet(w http.ResponseWriter, r *http.Request, _ []byte) {
	if r.Header.Get("Authorization") != "" {
		Error(w, r, http.StatusBadRequest, "only one auth mechanism allowed")
		return
	}

	obj, ok := s.redeem(r, http.MethodGet)
	if !ok {
		Error(w, r, http.StatusForbidden, "signature does not match")
		return
	}

	s.mu.Lock()
	var data []byte
	switch obj.kind {
	case objectArtifact:
		data, ok = s.artifacts[obj.key]
	case objectBlob:
		data, ok = s.blobs[obj.key]
	}
	s.mu.Unlock()
	if !ok {
		Error(w, r, http.StatusNotFound, "no such key")
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) signedPut(w http.ResponseWriter, r *http.Request, body []byte) {
	if r.Header.Get("Authorization") != "" {
		Error(w, r, http.StatusBadRequest, "only one auth mechanism allowed")
		return
	}
	obj, ok := s.redeem(r, http.MethodPut)
	if !ok || obj.kind != objectBlob {
		Error(w, r, http.StatusForbidden, "signature does not match")
		return
	}

	s.PutBlob(obj.key, body)
	w.WriteHeader(http.StatusOK)
}

// --- helpers ---

func artifactKey(jobID uuid.UUID, name string) string {
	return jobID.String() + "/" + name
}

// artifactParams разбирает параметры маршрута артефакта.
// chi матчит по RawPath, поэтому имя приходит percent-encoded.
func artifactParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, string, bool) {
	jobID, err := uuid.Parse(chi.URLParam(r, "jobID"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, "invalid job id")
		return uuid.Nil, "", false
	}

	name, err := url.PathUnescape(chi.URLParam(r, "name"))
	if err != nil {
		Error(w, r, http.StatusBadRequest, "invalid artifact name")
		return uuid.Nil, "", false
	}
	return jobID, name, true
}
