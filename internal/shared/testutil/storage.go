package testutil

import (
	"context"
	"io"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/storage"
	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock of storage.Store
type MockStore struct {
	mock.Mock
}

func (m *MockStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, r, size, contentType)
	return args.Error(0)
}

func (m *MockStore) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	args := m.Called(ctx, key)
	rc, _ := args.Get(0).(io.ReadCloser)
	return rc, args.Error(1)
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

var _ storage.Store = (*MockStore)(nil)
