package snapstore

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sprintchart/burndown/internal/contract"
	"github.com/sprintchart/burndown/schema"
)

// MockSnapshotStore is a mock implementation of SnapshotStore for testing.
type MockSnapshotStore struct {
	mock.Mock
}

var _ contract.SnapshotStore = &MockSnapshotStore{} // Compile-time check

// Put implements the SnapshotStore interface.
func (m *MockSnapshotStore) Put(ctx context.Context, snapshot schema.SprintSnapshot) error {
	args := m.Called(ctx, snapshot)
	return args.Error(0)
}

// Get implements the SnapshotStore interface.
func (m *MockSnapshotStore) Get(ctx context.Context, date schema.Date) (schema.SprintSnapshot, error) {
	args := m.Called(ctx, date)
	return args.Get(0).(schema.SprintSnapshot), args.Error(1)
}

// Keys implements the SnapshotStore interface.
func (m *MockSnapshotStore) Keys(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}

// GetStatus implements the SnapshotStore interface.
func (m *MockSnapshotStore) GetStatus() (schema.StoreStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.StoreStatus), args.Error(1)
}

// Close implements the SnapshotStore interface.
func (m *MockSnapshotStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
