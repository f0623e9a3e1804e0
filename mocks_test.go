package identity_test

import (
	"context"
	"time"

	identity "github.com/goliatone/go-identity"
	"github.com/stretchr/testify/mock"
)

// MockUserFinder implements identity.UserFinder
type MockUserFinder struct {
	mock.Mock
}

func (m *MockUserFinder) FindOneByCredentials(ctx context.Context, filter *identity.UserFilter) (*identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

// MockTokenService implements identity.TokenService
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) Issue(user *identity.User, createdAt time.Time) (string, time.Time, error) {
	args := m.Called(user, createdAt)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) Validate(token string) (*identity.AccessClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.AccessClaims), args.Error(1)
}

// MockLogger implements identity.Logger
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}
