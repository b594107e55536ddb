package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"demonchart"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// RefreshFunc re-extracts the source post and returns the new snapshot.
type RefreshFunc func(ctx context.Context) (*demonchart.Snapshot, error)

// Server serves the JSON API consumed by the chart renderer. It implements
// http.Handler; callers own the listener.
type Server struct {
	snapshots demonchart.SnapshotService
	records   demonchart.RecordService
	refresh   RefreshFunc
	limiter   *rate.Limiter
	logger    *slog.Logger
	router    *chi.Mux
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithRefresh enables the POST /api/refresh endpoint.
func WithRefresh(fn RefreshFunc) ServerOption {
	return func(s *Server) {
		s.refresh = fn
	}
}

// WithRefreshLimit caps refresh requests per second. Defaults to one refresh
// per ten seconds; the source post rarely changes and the blog host should
// not be hammered through a public endpoint.
func WithRefreshLimit(rps float64) ServerOption {
	return func(s *Server) {
		s.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new Server.
func NewServer(snapshots demonchart.SnapshotService, records demonchart.RecordService, opts ...ServerOption) *Server {
	s := &Server{
		snapshots: snapshots,
		records:   records,
		limiter:   rate.NewLimiter(rate.Limit(0.1), 1),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/api/chart", s.handleChart)
	r.Get("/api/records", s.handleRecords)
	r.Get("/api/records/{position}", s.handleRecord)
	r.Post("/api/refresh", s.handleRefresh)
	s.router = r

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// latestRecords loads the newest snapshot and its records in heading order.
func (s *Server) latestRecords(ctx context.Context) (*demonchart.Snapshot, []*demonchart.Record, error) {
	snapshot, err := s.snapshots.FindLatestSnapshot(ctx, "")
	if err != nil {
		return nil, nil, err
	}

	records, err := s.records.FindRecords(ctx, demonchart.RecordFilter{
		SnapshotID: &snapshot.ID,
		SortBy:     demonchart.SortByPosition,
	})
	if err != nil {
		return nil, nil, err
	}

	return snapshot, records, nil
}

// handleChart serves the renderer payload. An optional limit query parameter
// slices the payload for progressive reveal.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	_, records, err := s.latestRecords(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	data := demonchart.BuildChartData(records)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, demonchart.Errorf(demonchart.EINVALID, "invalid limit %q", raw))
			return
		}
		data = data.Reveal(limit)
	}

	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	_, records, err := s.latestRecords(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, records)
}

// handleRecord serves the details-panel payload for one selected point.
func (s *Server) handleRecord(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		s.writeError(w, demonchart.Errorf(demonchart.EINVALID, "invalid record position %q", chi.URLParam(r, "position")))
		return
	}

	_, records, err := s.latestRecords(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	for _, rec := range records {
		if rec.Position == position {
			s.writeJSON(w, http.StatusOK, rec)
			return
		}
	}
	s.writeError(w, demonchart.Errorf(demonchart.ENOTFOUND, "no record at position %d", position))
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if s.refresh == nil {
		s.writeError(w, demonchart.Errorf(demonchart.EUNAVAILABLE, "refresh is not configured"))
		return
	}
	if !s.limiter.Allow() {
		s.writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "refresh rate limit exceeded"})
		return
	}

	snapshot, err := s.refresh(r.Context())
	if err != nil {
		s.logger.Error("refresh failed", "err", err)
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, snapshot)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encoding failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.writeJSON(w, statusFromCode(demonchart.ErrorCode(err)), errorResponse{Error: demonchart.ErrorMessage(err)})
}

// statusFromCode maps application error codes to HTTP status codes.
func statusFromCode(code string) int {
	switch code {
	case demonchart.EINVALID:
		return http.StatusBadRequest
	case demonchart.ENOTFOUND:
		return http.StatusNotFound
	case demonchart.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
