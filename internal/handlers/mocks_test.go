package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/damacus/bucket-index/internal/models"
)

// MockLister implements Lister for testing
type MockLister struct {
	mock.Mock
}

func (m *MockLister) List(ctx context.Context, dir string) (models.Listing, error) {
	args := m.Called(ctx, dir)
	return args.Get(0).(models.Listing), args.Error(1)
}
