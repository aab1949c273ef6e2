package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/sirupsen/logrus"

	"github.com/edaqa/eda-cli/internal/dataset"
	"github.com/edaqa/eda-cli/internal/quality"
)

const maxUploadBytes = 64 << 20 // 64MB multipart memory cap

// Server exposes the quality engine over HTTP.
type Server struct {
	logger *logrus.Logger
	router chi.Router
}

// New builds a Server with the standard middleware stack.
func New(logger *logrus.Logger) *Server {
	s := &Server{logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/health", s.handleHealth)
	r.Post("/quality-from-csv", s.handleQuality)
	r.Post("/quality-flags-from-csv", s.handleQualityFlags)

	s.router = r
	return s
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving on addr.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Infof("listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

// HealthResponse is the fixed health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrorResponse is the JSON body for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, HealthResponse{
		Status:    "ok",
		Service:   "eda-cli",
		Version:   "1.0.0",
		Timestamp: time.Now().UTC(),
	})
}

func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	assessment, ok := s.assessUpload(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, assessment)
}

// FlagsResponse wraps exactly the five quality flags.
type FlagsResponse struct {
	Flags map[string]bool `json:"flags"`
}

func (s *Server) handleQualityFlags(w http.ResponseWriter, r *http.Request) {
	assessment, ok := s.assessUpload(w, r)
	if !ok {
		return
	}
	render.JSON(w, r, FlagsResponse{Flags: assessment.Flags.Map()})
}

// assessUpload parses the multipart upload, loads the dataset and runs the
// engine. On failure it writes the error response and returns ok=false.
// Unparseable input maps to 400, an empty dataset to 422.
func (s *Server) assessUpload(w http.ResponseWriter, r *http.Request) (*quality.Assessment, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		s.clientError(w, r, http.StatusBadRequest, "expected multipart form upload")
		return nil, false
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		s.clientError(w, r, http.StatusBadRequest, "missing form file 'file'")
		return nil, false
	}
	defer file.Close()

	ds, err := dataset.FromCSV(file, dataset.Options{})
	if err != nil {
		s.datasetError(w, r, err)
		return nil, false
	}

	thresholds, err := thresholdsFromForm(r)
	if err != nil {
		s.clientError(w, r, http.StatusBadRequest, err.Error())
		return nil, false
	}

	assessment, err := quality.Assess(ds, thresholds)
	if err != nil {
		s.datasetError(w, r, err)
		return nil, false
	}
	return assessment, true
}

// thresholdsFromForm reads optional threshold overrides from the form.
// Absent fields stay zero and fall back to the engine defaults.
func thresholdsFromForm(r *http.Request) (quality.Thresholds, error) {
	var t quality.Thresholds

	if v := r.FormValue("min_rows"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return t, errors.New("min_rows must be an integer")
		}
		t.MinRows = n
	}
	if v := r.FormValue("max_columns"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return t, errors.New("max_columns must be an integer")
		}
		t.MaxColumns = n
	}
	if v := r.FormValue("max_missing_ratio"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return t, errors.New("max_missing_ratio must be a number")
		}
		t.MaxMissingRatio = f
	}
	if v := r.FormValue("max_cardinality_ratio"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return t, errors.New("max_cardinality_ratio must be a number")
		}
		t.MaxCardinalityRatio = f
	}

	return t, nil
}

func (s *Server) clientError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}

func (s *Server) datasetError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, dataset.ErrInvalidDataset):
		s.clientError(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, dataset.ErrMalformedInput):
		s.clientError(w, r, http.StatusBadRequest, err.Error())
	default:
		s.logger.Errorf("assessment failed: %v", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, ErrorResponse{Error: "internal error"})
	}
}
