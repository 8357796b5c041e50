package prometheus

import (
	"context"
	"time"

	v1 "github.com/prometheus/client_golang/api/prometheus/v1"
	"github.com/prometheus/common/model"
)

// MockClient is a mock implementation of the Client interface for testing.
type MockClient struct {
	QueryFunc       func(query string, timeout time.Duration) (v1.Warnings, model.Vector, error)
	LabelValuesFunc func(labelName string, matches []string, timeout time.Duration) ([]string, v1.Warnings, error)
}

func (m *MockClient) Query(_ context.Context, query string, timeout time.Duration) (v1.Warnings, model.Vector, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(query, timeout)
	}
	return nil, nil, nil
}

func (m *MockClient) LabelValues(_ context.Context, labelName string, matches []string, timeout time.Duration) ([]string, v1.Warnings, error) {
	if m.LabelValuesFunc != nil {
		return m.LabelValuesFunc(labelName, matches, timeout)
	}
	return nil, nil, nil
}
