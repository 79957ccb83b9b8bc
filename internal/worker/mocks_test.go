package worker

import (
	"context"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockClickHouseConn implements driver.Conn for testing
type MockClickHouseConn struct {
	driver.Conn

	mu         sync.Mutex
	Batches    []*MockBatch
	PrepareErr error
	SendErr    error
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	if m.PrepareErr != nil {
		return nil, m.PrepareErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b := &MockBatch{Query: query, sendErr: m.SendErr}
	m.Batches = append(m.Batches, b)
	return b, nil
}

// Sent returns every row of every successfully sent batch.
func (m *MockClickHouseConn) Sent() [][]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	var rows [][]interface{}
	for _, b := range m.Batches {
		if b.IsSent() {
			rows = append(rows, b.Appended()...)
		}
	}
	return rows
}

type MockBatch struct {
	Query string

	mu       sync.Mutex
	appended [][]interface{}
	sent     bool
	sendErr  error
}

func (m *MockBatch) IsSent() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sent
}

func (m *MockBatch) Rows() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.appended)
}

func (m *MockBatch) Appended() [][]interface{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.appended
}

func (m *MockBatch) Append(v ...interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appended = append(m.appended, v)
	return nil
}

func (m *MockBatch) AppendStruct(v interface{}) error {
	return nil
}

func (m *MockBatch) Column(int) driver.BatchColumn {
	return nil
}

func (m *MockBatch) Send() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = true
	return nil
}

func (m *MockBatch) Flush() error {
	return nil
}

func (m *MockBatch) Abort() error {
	return nil
}
