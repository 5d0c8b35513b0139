package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Spok95/rawmat-report/internal/aggregation"
	"github.com/Spok95/rawmat-report/internal/dates"
	"github.com/Spok95/rawmat-report/internal/domain/materials"
	"github.com/Spok95/rawmat-report/internal/report"
)

type Reports interface {
	Build(ctx context.Context, rng dates.Range, version string) (report.Workbook, error)
	Material(ctx context.Context, name string, rng dates.Range) (aggregation.Result, error)
}

type Versions interface {
	Versions(ctx context.Context) ([]string, error)
}

type Server struct {
	srv     *http.Server
	reports Reports
	vers    Versions
	log     *slog.Logger
}

func New(addr string, exposeMetrics bool, reports Reports, vers Versions, log *slog.Logger) *Server {
	s := &Server{reports: reports, vers: vers, log: log}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if exposeMetrics {
		mux.Handle("GET /metrics", promhttp.Handler())
	}

	mux.HandleFunc("GET /report", s.handleReport)
	mux.HandleFunc("GET /versions", s.handleVersions)
	mux.HandleFunc("GET /material", s.handleMaterial)

	s.srv = &http.Server{Addr: addr, Handler: mux}
	return s
}

func (s *Server) Handler() http.Handler { return s.srv.Handler }

func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// GET /report?from=DD.MM.YYYY&to=DD.MM.YYYY&version=V отдаёт книгу xlsx.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := dates.ParseRange(q.Get("from"), q.Get("to"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	version := q.Get("version")
	if version == "" {
		http.Error(w, "version is required", http.StatusBadRequest)
		return
	}

	wb, err := s.reports.Build(r.Context(), rng, version)
	if err != nil {
		s.log.Error("report failed", "err", err, "range", rng.String(), "version", version)
		http.Error(w, "report failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(wb.Meta)))
	if err := report.WriteWorkbook(w, wb); err != nil {
		s.log.Error("write workbook", "err", err)
	}
}

func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	vs, err := s.vers.Versions(r.Context())
	if err != nil {
		s.log.Error("versions failed", "err", err)
		http.Error(w, "versions failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, vs)
}

type materialDay struct {
	Day  string  `json:"day"`
	Tons float64 `json:"tons"`
	Pct  float64 `json:"percentage"`
}

// GET /material?name=N&from=..&to=..
func (s *Server) handleMaterial(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rng, err := dates.ParseRange(q.Get("from"), q.Get("to"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	name := q.Get("name")
	if name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	res, err := s.reports.Material(r.Context(), name, rng)
	if errors.Is(err, materials.ErrNoMaterials) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		s.log.Error("material failed", "err", err, "name", name)
		http.Error(w, "material failed", http.StatusInternalServerError)
		return
	}

	out := make([]materialDay, 0, rng.Len())
	for _, d := range res.Days() {
		out = append(out, materialDay{Day: d.ISO(), Tons: res.Total(d), Pct: res.Percentage(d)})
	}
	writeJSON(w, out)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
