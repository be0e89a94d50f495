package sheets

import (
	"context"
	"sync"

	"github.com/sawara-dev/ryohi/internal/model"
	"github.com/sawara-dev/ryohi/internal/service"
)

// MockSink is a mock implementation of SheetSink for testing.
type MockSink struct {
	CreateFunc     func(ctx context.Context, name string) (service.SheetHandle, error)
	WriteFunc      func(ctx context.Context, handle service.SheetHandle, blocks []model.CellBlock) error
	CreatedSheets  []string
	WrittenBlocks  map[string][]model.CellBlock
	WriteCallCount int
	mu             sync.Mutex
}

// NewMockSink creates a new mock sink.
func NewMockSink() *MockSink {
	return &MockSink{
		WrittenBlocks: make(map[string][]model.CellBlock),
	}
}

// CreateOrReplaceSheet implements the SheetSink interface.
func (m *MockSink) CreateOrReplaceSheet(ctx context.Context, name string) (service.SheetHandle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name)
	}

	m.CreatedSheets = append(m.CreatedSheets, name)
	m.WrittenBlocks[name] = nil
	return service.SheetHandle{SpreadsheetID: "mock", Name: name}, nil
}

// WriteCells implements the SheetSink interface.
func (m *MockSink) WriteCells(ctx context.Context, handle service.SheetHandle, blocks []model.CellBlock) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++

	if m.WriteFunc != nil {
		return m.WriteFunc(ctx, handle, blocks)
	}

	m.WrittenBlocks[handle.Name] = append(m.WrittenBlocks[handle.Name], blocks...)
	return nil
}

// BlocksFor returns a copy of the blocks written to one sheet.
func (m *MockSink) BlocksFor(name string) []model.CellBlock {
	m.mu.Lock()
	defer m.mu.Unlock()

	blocks := make([]model.CellBlock, len(m.WrittenBlocks[name]))
	copy(blocks, m.WrittenBlocks[name])
	return blocks
}

// Reset clears all recorded calls.
func (m *MockSink) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CreatedSheets = nil
	m.WrittenBlocks = make(map[string][]model.CellBlock)
	m.WriteCallCount = 0
}
