package contract

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sprintchart/burndown/schema"
)

// MockSprintFetcher is a mock implementation of SprintFetcher for testing.
type MockSprintFetcher struct {
	mock.Mock
}

var _ SprintFetcher = &MockSprintFetcher{} // Compile-time check

// FetchToday implements the SprintFetcher interface.
func (m *MockSprintFetcher) FetchToday(ctx context.Context, rapidViewID, sprintID int64) (schema.SprintSnapshot, error) {
	args := m.Called(ctx, rapidViewID, sprintID)
	return args.Get(0).(schema.SprintSnapshot), args.Error(1)
}

// MockChartRenderer is a mock implementation of ChartRenderer for testing.
type MockChartRenderer struct {
	mock.Mock
}

var _ ChartRenderer = &MockChartRenderer{} // Compile-time check

// Render implements the ChartRenderer interface.
func (m *MockChartRenderer) Render(ctx context.Context, spec schema.ChartSpec) ([]byte, error) {
	args := m.Called(ctx, spec)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// MockDeliverer is a mock implementation of Deliverer for testing.
type MockDeliverer struct {
	mock.Mock
}

var _ Deliverer = &MockDeliverer{} // Compile-time check

// Deliver implements the Deliverer interface.
func (m *MockDeliverer) Deliver(ctx context.Context, artifact schema.Artifact) error {
	args := m.Called(ctx, artifact)
	return args.Error(0)
}
