package auth_test

import (
	"context"

	"github.com/qflow/qflow-api/internal/auth"
)

// MockUserStore implements auth.UserStore
type MockUserStore struct {
	OnCreate        func(ctx context.Context, user *auth.User) error
	OnGetByUsername func(ctx context.Context, username string) (*auth.User, error)
	OnGetByID       func(ctx context.Context, id string) (*auth.User, error)
}

func (m *MockUserStore) Create(ctx context.Context, user *auth.User) error {
	if m.OnCreate != nil {
		return m.OnCreate(ctx, user)
	}
	return nil
}

func (m *MockUserStore) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	if m.OnGetByUsername != nil {
		return m.OnGetByUsername(ctx, username)
	}
	return nil, nil
}

func (m *MockUserStore) GetByID(ctx context.Context, id string) (*auth.User, error) {
	if m.OnGetByID != nil {
		return m.OnGetByID(ctx, id)
	}
	return nil, nil
}
