package report

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sawara-dev/ryohi/internal/gdocs"
	"github.com/sawara-dev/ryohi/internal/rates"
	"github.com/sawara-dev/ryohi/internal/service"
	"github.com/sawara-dev/ryohi/internal/sheets"
)

// mockRegistry is an in-memory Storage for exercising the submit flow.
type mockRegistry struct {
	mu      sync.Mutex
	records []service.SubmissionRecord
	saveErr error
}

func (m *mockRegistry) SaveSubmission(_ context.Context, rec *service.SubmissionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.records = append(m.records, *rec)
	return nil
}

func (m *mockRegistry) GetSubmission(_ context.Context, id string) (*service.SubmissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].ID == id {
			return &m.records[i], nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockRegistry) ListSubmissions(_ context.Context) ([]service.SubmissionRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]service.SubmissionRecord, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *mockRegistry) Migrate(_ context.Context) error { return nil }
func (m *mockRegistry) Close() error                    { return nil }

const testTemplate = `出張先: {{destination}}
{{transportTable}}
日当:
{{dailyAllowanceDetailsTable}}
宿泊:
{{lodgingDetailsTable}}
総計: {{grandTotal}}`

func TestSubmitFullFlow(t *testing.T) {
	sink := sheets.NewMockSink()
	docs := gdocs.NewMockStore(testTemplate)
	registry := &mockRegistry{}

	svc := NewService(sink, docs, registry, rates.Default(), "template-1", nil)
	out, err := svc.Submit(context.Background(), hospitalTrip())
	require.NoError(t, err)

	// Sheet written under the derived name.
	assert.Equal(t, "2025/10/01_東京都立病院", out.SheetName)
	require.Len(t, sink.CreatedSheets, 1)
	assert.Equal(t, out.SheetName, sink.CreatedSheets[0])
	assert.NotEmpty(t, sink.BlocksFor(out.SheetName))

	// Document rendered from the template copy.
	require.NotEmpty(t, out.DocumentID)
	assert.Contains(t, out.DocumentURL, out.DocumentID)
	assert.Equal(t, out.SheetName+"_出張旅費書", docs.Names[out.DocumentID])
	rendered := docs.Body(out.DocumentID).String()
	assert.NotContains(t, rendered, "{{")
	assert.Contains(t, rendered, "出張先: 東京都立病院")
	assert.Contains(t, rendered, "総計: 13360")

	// Registry record carries the totals and pointers.
	require.Len(t, registry.records, 1)
	rec := registry.records[0]
	assert.Equal(t, out.SheetName, rec.SheetName)
	assert.Equal(t, "東京都立病院", rec.Destination)
	assert.Equal(t, int64(13360), rec.GrandTotal)
	assert.Equal(t, out.DocumentID, rec.DocumentID)
	assert.NotEmpty(t, rec.Payload)

	assert.Equal(t, int64(13360), out.GrandTotal)
}

func TestSubmitSheetOnly(t *testing.T) {
	sink := sheets.NewMockSink()
	svc := NewService(sink, nil, nil, rates.Default(), "", nil)

	out, err := svc.Submit(context.Background(), hospitalTrip())
	require.NoError(t, err)

	assert.Empty(t, out.DocumentID)
	assert.Empty(t, out.DocumentURL)
	require.Len(t, sink.CreatedSheets, 1)
}

func TestSubmitSheetCreateFailure(t *testing.T) {
	sink := sheets.NewMockSink()
	sink.CreateFunc = func(_ context.Context, _ string) (service.SheetHandle, error) {
		return service.SheetHandle{}, errors.New("quota exceeded")
	}

	svc := NewService(sink, nil, nil, rates.Default(), "", nil)
	_, err := svc.Submit(context.Background(), hospitalTrip())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestSubmitTemplateCopyFailure(t *testing.T) {
	sink := sheets.NewMockSink()
	docs := gdocs.NewMockStore(testTemplate)
	docs.CopyFunc = func(_ context.Context, _, _ string) (string, error) {
		return "", errors.New("template gone")
	}

	svc := NewService(sink, docs, nil, rates.Default(), "template-1", nil)
	_, err := svc.Submit(context.Background(), hospitalTrip())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template gone")
}

func TestSubmitRegistryFailureSurfaces(t *testing.T) {
	sink := sheets.NewMockSink()
	registry := &mockRegistry{saveErr: errors.New("disk full")}

	svc := NewService(sink, nil, registry, rates.Default(), "", nil)
	_, err := svc.Submit(context.Background(), hospitalTrip())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	// The sheet was still written before the failure.
	require.Len(t, sink.CreatedSheets, 1)
}

func TestSubmitWithoutSink(t *testing.T) {
	svc := NewService(nil, nil, nil, rates.Default(), "", nil)
	_, err := svc.Submit(context.Background(), hospitalTrip())
	require.Error(t, err)
}
