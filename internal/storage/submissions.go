package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"

	"github.com/sawara-dev/ryohi/internal/common"
	"github.com/sawara-dev/ryohi/internal/service"
)

// SaveSubmission stores one submitted report. A missing ID gets a fresh
// UUID; a missing timestamp gets the current time.
func (s *SQLiteStorage) SaveSubmission(ctx context.Context, rec *service.SubmissionRecord) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if rec.SheetName == "" {
		return fmt.Errorf("sheet name cannot be empty")
	}

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO submissions (id, sheet_name, destination, purpose,
			departure_date, return_date, document_id, document_url,
			grand_total, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SheetName, rec.Destination, rec.Purpose,
		rec.DepartureDate, rec.ReturnDate, rec.DocumentID, rec.DocumentURL,
		rec.GrandTotal, string(rec.Payload), rec.CreatedAt)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
			return fmt.Errorf("%w: submission %s", common.ErrDuplicateEntry, rec.ID)
		}
		return fmt.Errorf("failed to save submission: %w", err)
	}

	return nil
}

// GetSubmission fetches one stored submission by ID.
func (s *SQLiteStorage) GetSubmission(ctx context.Context, id string) (*service.SubmissionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if id == "" {
		return nil, fmt.Errorf("id cannot be empty")
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, sheet_name, destination, purpose, departure_date,
			return_date, document_id, document_url, grand_total, payload, created_at
		FROM submissions WHERE id = ?`, id)

	rec, err := scanSubmission(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: submission %s", common.ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}
	return rec, nil
}

// ListSubmissions returns all stored submissions, newest first.
func (s *SQLiteStorage) ListSubmissions(ctx context.Context) ([]service.SubmissionRecord, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, sheet_name, destination, purpose, departure_date,
			return_date, document_id, document_url, grand_total, payload, created_at
		FROM submissions ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []service.SubmissionRecord
	for rows.Next() {
		rec, err := scanSubmission(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSubmission(row scanner) (*service.SubmissionRecord, error) {
	var rec service.SubmissionRecord
	var payload string
	err := row.Scan(&rec.ID, &rec.SheetName, &rec.Destination, &rec.Purpose,
		&rec.DepartureDate, &rec.ReturnDate, &rec.DocumentID, &rec.DocumentURL,
		&rec.GrandTotal, &payload, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	rec.Payload = []byte(payload)
	return &rec, nil
}
