package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type MockArchive struct {
	mock.Mock
}

func (m *MockArchive) Store(ctx context.Context, docID int64, kind string, data []byte) error {
	args := m.Called(ctx, docID, kind, data)
	return args.Error(0)
}

func (m *MockArchive) Fetch(ctx context.Context, docID int64, kind string) (io.ReadCloser, error) {
	args := m.Called(ctx, docID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockArchive) Remove(ctx context.Context, docID int64, kind string) error {
	args := m.Called(ctx, docID, kind)
	return args.Error(0)
}
