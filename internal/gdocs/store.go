package gdocs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/api/docs/v1"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/sawara-dev/ryohi/internal/common"
	"github.com/sawara-dev/ryohi/internal/service"
)

// Store implements the DocumentStore interface over the Docs and Drive APIs.
type Store struct {
	docs   *docs.Service
	drive  *drive.Service
	logger *slog.Logger
	config Config
}

// NewStore creates a new Google Docs document store.
func NewStore(ctx context.Context, config Config, logger *slog.Logger) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpClient, err := config.Credentials.Client(ctx, docs.DocumentsScope, drive.DriveScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create docs client: %w", err)
	}

	docsSrv, err := docs.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create docs service: %w", err)
	}

	driveSrv, err := drive.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create drive service: %w", err)
	}

	return &Store{
		docs:   docsSrv,
		drive:  driveSrv,
		logger: logger,
		config: config,
	}, nil
}

// CopyTemplate implements the DocumentStore interface. The copy lands in the
// configured save folder when one is set; a folder move failure is logged but
// does not abort the copy.
func (s *Store) CopyTemplate(ctx context.Context, templateID, name string) (string, error) {
	file := &drive.File{Name: name}
	if s.config.SaveFolderID != "" {
		file.Parents = []string{s.config.SaveFolderID}
	}

	created, err := s.drive.Files.Copy(templateID, file).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 404 {
			return "", fmt.Errorf("%w: %s", common.ErrTemplateNotFound, templateID)
		}
		return "", fmt.Errorf("failed to copy template %s: %w", templateID, err)
	}

	s.logger.Info("copied template document", "template_id", templateID, "doc_id", created.Id, "name", name)
	return created.Id, nil
}

// OpenBody implements the DocumentStore interface.
func (s *Store) OpenBody(ctx context.Context, docID string) (service.DocumentBody, error) {
	if _, err := s.docs.Documents.Get(docID).Context(ctx).Do(); err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code == 404 {
			return nil, fmt.Errorf("%w: %s", common.ErrDocumentNotFound, docID)
		}
		return nil, fmt.Errorf("failed to open document %s: %w", docID, err)
	}
	return &Body{docs: s.docs, docID: docID}, nil
}

// ShareURL implements the DocumentStore interface: anyone with the link may
// view, and the preview URL is returned.
func (s *Store) ShareURL(ctx context.Context, docID string) (string, error) {
	_, err := s.drive.Permissions.Create(docID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Context(ctx).Do()
	if err != nil {
		// Sharing may be restricted by domain policy; the document still
		// exists, so surface the URL anyway.
		s.logger.Warn("failed to set link sharing", "doc_id", docID, "error", err)
	}

	return fmt.Sprintf("https://docs.google.com/document/d/%s/preview", docID), nil
}
