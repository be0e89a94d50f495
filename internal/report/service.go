package report

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/sawara-dev/ryohi/internal/common"
	"github.com/sawara-dev/ryohi/internal/model"
	"github.com/sawara-dev/ryohi/internal/rates"
	"github.com/sawara-dev/ryohi/internal/render"
	"github.com/sawara-dev/ryohi/internal/service"
)

// Service runs the full submission flow against the configured backends.
// Sink is required; Docs and Registry are optional and skipped when nil.
type Service struct {
	Sink       service.SheetSink
	Docs       service.DocumentStore
	Registry   service.Storage
	Rates      rates.Table
	TemplateID string
	RenderOpts render.Options

	logger *slog.Logger
}

// Outcome reports what Submit produced for one submission.
type Outcome struct {
	SheetName   string
	DocumentID  string
	DocumentURL string
	GrandTotal  int64
	Render      *render.Report
}

// NewService creates a submission service. A nil logger falls back to the
// default slog logger.
func NewService(sink service.SheetSink, docs service.DocumentStore, registry service.Storage, table rates.Table, templateID string, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		Sink:       sink,
		Docs:       docs,
		Registry:   registry,
		Rates:      table,
		TemplateID: templateID,
		logger:     logger,
	}
}

// Submit generates the report artifacts for one submission: the positional
// sheet, optionally the rendered document, and optionally a registry record.
// The sheet write is the authoritative step; document and registry failures
// after it surface as errors without rolling the sheet back.
func (s *Service) Submit(ctx context.Context, sub *model.Submission) (*Outcome, error) {
	if s.Sink == nil {
		return nil, fmt.Errorf("submit: no sheet sink configured")
	}

	res := Generate(sub, s.Rates)
	out := &Outcome{
		SheetName:  res.SheetName,
		GrandTotal: res.Ledger.GrandTotal,
	}

	s.logger.Info("writing expense sheet",
		"sheet", res.SheetName,
		"rows", len(res.Ledger.Rows),
		"grand_total", res.Ledger.GrandTotal,
	)

	handle, err := s.Sink.CreateOrReplaceSheet(ctx, res.SheetName)
	if err != nil {
		return nil, fmt.Errorf("creating sheet %q: %w", res.SheetName, err)
	}
	if err := s.Sink.WriteCells(ctx, handle, res.Blocks); err != nil {
		return nil, fmt.Errorf("writing sheet %q: %w", res.SheetName, err)
	}

	if s.Docs != nil && s.TemplateID != "" {
		docID, docURL, report, err := s.renderDocument(ctx, res)
		if err != nil {
			return nil, err
		}
		out.DocumentID = docID
		out.DocumentURL = docURL
		out.Render = report
	}

	if s.Registry != nil {
		if err := s.record(ctx, sub, res, out); err != nil {
			return nil, err
		}
	}

	return out, nil
}

func (s *Service) renderDocument(ctx context.Context, res *Result) (string, string, *render.Report, error) {
	docName := res.SheetName + "_出張旅費書"
	docID, err := s.Docs.CopyTemplate(ctx, s.TemplateID, docName)
	if err != nil {
		return "", "", nil, fmt.Errorf("copying template: %w", err)
	}

	body, err := s.Docs.OpenBody(ctx, docID)
	if err != nil {
		return "", "", nil, fmt.Errorf("opening document %s: %w", docID, err)
	}

	report, err := render.Apply(ctx, body, res.Render, s.RenderOpts)
	if err != nil {
		return "", "", nil, fmt.Errorf("rendering document %s: %w", docID, err)
	}
	if report.CapHit() {
		s.logger.Warn("placeholder replacement hit iteration cap", "document_id", docID)
	}

	docURL, err := s.Docs.ShareURL(ctx, docID)
	if err != nil {
		// The document exists and is rendered; a failed share is degraded,
		// not fatal.
		common.LogError(err, "sharing document", common.Fields{"document_id": docID})
		docURL = ""
	}

	s.logger.Info("document generated", "document_id", docID, "name", docName)
	return docID, docURL, report, nil
}

func (s *Service) record(ctx context.Context, sub *model.Submission, res *Result, out *Outcome) error {
	payload, err := json.Marshal(sub)
	if err != nil {
		return fmt.Errorf("encoding submission payload: %w", err)
	}

	rec := &service.SubmissionRecord{
		SheetName:     res.SheetName,
		Destination:   sub.Destination,
		Purpose:       sub.Purpose,
		DepartureDate: res.Ledger.DepartureDate,
		ReturnDate:    res.Ledger.ReturnDate,
		DocumentID:    out.DocumentID,
		DocumentURL:   out.DocumentURL,
		GrandTotal:    res.Ledger.GrandTotal,
		Payload:       payload,
	}
	if err := s.Registry.SaveSubmission(ctx, rec); err != nil {
		return fmt.Errorf("recording submission: %w", err)
	}
	return nil
}
