// Package server exposes the prospect store over JSON HTTP.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jacksmith/hp/internal/model"
	"github.com/jacksmith/hp/internal/notify"
	"github.com/jacksmith/hp/internal/ops"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBody bounds request bodies; prospects are two short strings.
const maxBody = 64 << 10

// Server serves the prospect API.
type Server struct {
	store     *ops.Store
	scheduler *notify.Scheduler
	logger    *slog.Logger
	gatherer  prometheus.Gatherer
}

// New returns a Server. gatherer may be nil to disable /metrics.
func New(store *ops.Store, scheduler *notify.Scheduler, gatherer prometheus.Gatherer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{store: store, scheduler: scheduler, gatherer: gatherer, logger: logger}
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/prospects", s.listProspects)
	r.Post("/prospects", s.createProspect)
	r.Get("/prospects/{id}", s.getProspect)
	r.Post("/prospects/{id}/toggle", s.toggleProspect)
	r.Post("/prospects/{id}/remind", s.remindProspect)
	r.Post("/scan", s.scan)

	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

type createRequest struct {
	Name         string `json:"name"`
	EmailAddress string `json:"emailAddress"`
}

type remindResponse struct {
	Outcome notify.Outcome  `json:"outcome"`
	Request *notify.Request `json:"request,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) listProspects(w http.ResponseWriter, r *http.Request) {
	filter, err := model.ParseFilter(r.URL.Query().Get("filter"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	sort, err := model.ParseSort(r.URL.Query().Get("sort"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	s.writeJSON(w, http.StatusOK, s.store.View(filter, sort))
}

func (s *Server) createProspect(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	p := model.NewProspect(req.Name, req.EmailAddress)
	s.warnUnsaved(s.store.Add(p))
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *Server) getProspect(w http.ResponseWriter, r *http.Request) {
	p, ok := s.resolve(w, r)
	if !ok {
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) toggleProspect(w http.ResponseWriter, r *http.Request) {
	p, ok := s.resolve(w, r)
	if !ok {
		return
	}
	p, err := s.store.ToggleContacted(p.ID)
	if errors.Is(err, ops.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, err)
		return
	}
	s.warnUnsaved(err)
	s.writeJSON(w, http.StatusOK, p)
}

func (s *Server) remindProspect(w http.ResponseWriter, r *http.Request) {
	p, ok := s.resolve(w, r)
	if !ok {
		return
	}
	res, err := s.scheduler.ScheduleReminder(r.Context(), p)
	if err != nil {
		s.logger.Warn("reminder not scheduled", "prospect", p.ID, "err", err)
	}
	out := remindResponse{Outcome: res.Outcome}
	if res.Outcome == notify.OutcomeScheduled {
		out.Request = &res.Request
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) scan(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}
	p, added, err := ops.AddScanned(s.store, string(payload))
	if !added {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	s.warnUnsaved(err)
	s.writeJSON(w, http.StatusCreated, p)
}

func (s *Server) resolve(w http.ResponseWriter, r *http.Request) (model.Prospect, bool) {
	p, err := s.store.Resolve(chi.URLParam(r, "id"))
	switch {
	case err == nil:
		return p, true
	case errors.Is(err, model.ErrUnknownID):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, model.ErrAmbiguousID):
		s.writeError(w, http.StatusConflict, err)
	default:
		s.writeError(w, http.StatusBadRequest, err)
	}
	return model.Prospect{}, false
}

// warnUnsaved logs a persistence failure. The change has still been made.
func (s *Server) warnUnsaved(err error) {
	if err != nil {
		s.logger.Warn("change kept in memory only", "err", err)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Debug("write response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
