package gdocs

import (
	"context"
	"fmt"
	"sync"

	"github.com/sawara-dev/ryohi/internal/render"
	"github.com/sawara-dev/ryohi/internal/service"
)

// MockStore is an in-memory DocumentStore for testing. Copied documents are
// plain-text bodies seeded from Template.
type MockStore struct {
	Template string
	CopyFunc func(ctx context.Context, templateID, name string) (string, error)
	Bodies   map[string]*render.TextBody
	Names    map[string]string
	mu       sync.Mutex
}

// NewMockStore creates a mock store whose copies start from template.
func NewMockStore(template string) *MockStore {
	return &MockStore{
		Template: template,
		Bodies:   make(map[string]*render.TextBody),
		Names:    make(map[string]string),
	}
}

// CopyTemplate implements the DocumentStore interface.
func (m *MockStore) CopyTemplate(ctx context.Context, templateID, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CopyFunc != nil {
		return m.CopyFunc(ctx, templateID, name)
	}

	docID := fmt.Sprintf("mock-doc-%d", len(m.Bodies)+1)
	m.Bodies[docID] = render.NewTextBody(m.Template)
	m.Names[docID] = name
	return docID, nil
}

// OpenBody implements the DocumentStore interface.
func (m *MockStore) OpenBody(_ context.Context, docID string) (service.DocumentBody, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	body, ok := m.Bodies[docID]
	if !ok {
		return nil, fmt.Errorf("unknown document %s", docID)
	}
	return body, nil
}

// ShareURL implements the DocumentStore interface.
func (m *MockStore) ShareURL(_ context.Context, docID string) (string, error) {
	return fmt.Sprintf("https://docs.google.com/document/d/%s/preview", docID), nil
}

// Body returns the text body of a copied document.
func (m *MockStore) Body(docID string) *render.TextBody {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Bodies[docID]
}
