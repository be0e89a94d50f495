// Package api exposes the submission intake over HTTP. The mobile form posts
// a JSON submission; the server runs the full pipeline and answers with the
// produced artifacts.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sawara-dev/ryohi/internal/common"
	"github.com/sawara-dev/ryohi/internal/model"
	"github.com/sawara-dev/ryohi/internal/report"
	"github.com/sawara-dev/ryohi/internal/service"
)

// maxBodyBytes bounds a posted submission, receipts included.
const maxBodyBytes = 1 << 20

// Server handles submission intake and listing.
type Server struct {
	svc      *report.Service
	registry service.Storage
	logger   *slog.Logger
}

// NewServer creates the HTTP server. registry may be nil, in which case the
// listing endpoint reports the registry as unavailable.
func NewServer(svc *report.Service, registry service.Storage, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{svc: svc, registry: registry, logger: logger}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /submissions", s.handleSubmit)
	mux.HandleFunc("GET /submissions", s.handleList)
	mux.HandleFunc("GET /submissions/{id}", s.handleGet)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// submitResponse mirrors the fields the form shows the user after submitting.
type submitResponse struct {
	Status      string `json:"status"`
	SheetName   string `json:"sheetName"`
	DocumentID  string `json:"documentId,omitempty"`
	DocumentURL string `json:"documentUrl,omitempty"`
	GrandTotal  int64  `json:"grandTotal"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var sub model.Submission
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&sub); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("decoding submission: %w", err))
		return
	}
	if sub.IsDraft {
		s.writeError(w, http.StatusUnprocessableEntity, errors.New("draft submissions are not accepted"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Minute)
	defer cancel()

	out, err := s.svc.Submit(ctx, &sub)
	if err != nil {
		common.LogError(err, "submission failed", common.Fields{
			"destination": sub.Destination,
			"remote":      r.RemoteAddr,
		})
		s.writeError(w, statusFor(err), err)
		return
	}

	s.logger.Info("submission accepted",
		"sheet", out.SheetName,
		"grand_total", out.GrandTotal,
		"document_id", out.DocumentID,
	)
	s.writeJSON(w, http.StatusCreated, submitResponse{
		Status:      "ok",
		SheetName:   out.SheetName,
		DocumentID:  out.DocumentID,
		DocumentURL: out.DocumentURL,
		GrandTotal:  out.GrandTotal,
	})
}

type listItem struct {
	ID            string    `json:"id"`
	SheetName     string    `json:"sheetName"`
	Destination   string    `json:"destination"`
	Purpose       string    `json:"purpose"`
	DepartureDate string    `json:"departureDate"`
	ReturnDate    string    `json:"returnDate"`
	DocumentURL   string    `json:"documentUrl,omitempty"`
	GrandTotal    int64     `json:"grandTotal"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		s.writeError(w, http.StatusServiceUnavailable, errors.New("submission registry not configured"))
		return
	}
	recs, err := s.registry.ListSubmissions(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	items := make([]listItem, 0, len(recs))
	for _, rec := range recs {
		items = append(items, toListItem(rec))
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"submissions": items})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if s.registry == nil {
		s.writeError(w, http.StatusServiceUnavailable, errors.New("submission registry not configured"))
		return
	}
	rec, err := s.registry.GetSubmission(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return
	}
	s.writeJSON(w, http.StatusOK, toListItem(*rec))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func toListItem(rec service.SubmissionRecord) listItem {
	return listItem{
		ID:            rec.ID,
		SheetName:     rec.SheetName,
		Destination:   rec.Destination,
		Purpose:       rec.Purpose,
		DepartureDate: rec.DepartureDate,
		ReturnDate:    rec.ReturnDate,
		DocumentURL:   rec.DocumentURL,
		GrandTotal:    rec.GrandTotal,
		CreatedAt:     rec.CreatedAt,
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, common.ErrTemplateNotFound), errors.Is(err, common.ErrSheetNotFound):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, errorResponse{Error: err.Error()})
}
