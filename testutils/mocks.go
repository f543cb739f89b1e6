package testutils

import (
	"context"
	"time"

	"notemark/services"

	"github.com/stretchr/testify/mock"
)

// MockMetadataFetcher is a testify mock satisfying usecase.MetadataSource.
type MockMetadataFetcher struct {
	mock.Mock
}

func (m *MockMetadataFetcher) Fetch(ctx context.Context, url string) services.Metadata {
	args := m.Called(ctx, url)
	return args.Get(0).(services.Metadata)
}

// MockTokenRevoker records revocations without Redis.
type MockTokenRevoker struct {
	mock.Mock
}

func (m *MockTokenRevoker) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	args := m.Called(ctx, token, expiresAt)
	return args.Error(0)
}

func (m *MockTokenRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	args := m.Called(ctx, token)
	return args.Bool(0), args.Error(1)
}
