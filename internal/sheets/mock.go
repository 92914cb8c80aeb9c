package sheets

import (
	"context"
	"sync"

	"github.com/Veraticus/tally/internal/model"
)

// MockWriter is a mock implementation of ReportWriter for testing.
type MockWriter struct {
	WriteFunc        func(ctx context.Context, symbol string, txns []model.Transaction) error
	WriteCalls       []WriteCall
	LastTransactions []model.Transaction
	LastSymbol       string
	WriteCallCount   int
	mu               sync.Mutex
}

// WriteCall represents a single call to Write.
type WriteCall struct {
	Error        error
	Symbol       string
	Transactions []model.Transaction
}

// NewMockWriter creates a new mock writer.
func NewMockWriter() *MockWriter {
	return &MockWriter{
		WriteCalls: make([]WriteCall, 0),
	}
}

// Write implements the ReportWriter interface.
func (m *MockWriter) Write(ctx context.Context, symbol string, txns []model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount++
	m.LastTransactions = txns
	m.LastSymbol = symbol

	var err error
	if m.WriteFunc != nil {
		err = m.WriteFunc(ctx, symbol, txns)
	}

	m.WriteCalls = append(m.WriteCalls, WriteCall{
		Transactions: txns,
		Symbol:       symbol,
		Error:        err,
	})

	return err
}

// Reset clears all recorded calls.
func (m *MockWriter) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteCallCount = 0
	m.WriteCalls = make([]WriteCall, 0)
	m.LastTransactions = nil
	m.LastSymbol = ""
}

// GetWriteCalls returns a copy of all write calls.
func (m *MockWriter) GetWriteCalls() []WriteCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]WriteCall, len(m.WriteCalls))
	copy(calls, m.WriteCalls)
	return calls
}

// AssertWriteCalled verifies that Write was called the expected number of times.
func (m *MockWriter) AssertWriteCalled(t interface{ Fatalf(string, ...any) }, expectedCalls int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.WriteCallCount != expectedCalls {
		t.Fatalf("expected Write to be called %d times, but was called %d times", expectedCalls, m.WriteCallCount)
	}
}

// SetWriteError configures the mock to return err from Write.
func (m *MockWriter) SetWriteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.WriteFunc = func(context.Context, string, []model.Transaction) error {
		return err
	}
}
