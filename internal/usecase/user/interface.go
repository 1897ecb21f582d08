package user

import (
	"context"

	domain "userdeck/internal/domain/user"
)

// Backend is the REST collaborator holding the user records.
type Backend interface {
	ListUsers(ctx context.Context) ([]domain.User, error)
	CreateUser(ctx context.Context, d domain.NewUserDraft) (*domain.User, error)
	UpdateUser(ctx context.Context, label, id string, d domain.UpdateUserDraft) error
	DeleteUser(ctx context.Context, id int64) error
}

// StateStore keeps one State per browser session. Get returns nil, nil for
// an unknown session.
type StateStore interface {
	Get(ctx context.Context, sessionID string) (*domain.State, error)
	Save(ctx context.Context, sessionID string, state domain.State) error
	Delete(ctx context.Context, sessionID string) error
}

// Usecase defines the user interface operations driven by page events.
type Usecase interface {
	Mount(ctx context.Context, sessionID string) (domain.State, error)
	Refresh(ctx context.Context, sessionID string) (domain.State, error)
	CreateUser(ctx context.Context, sessionID string, d domain.NewUserDraft) (domain.State, error)
	UpdateUser(ctx context.Context, sessionID, label string, d domain.UpdateUserDraft) (domain.State, error)
	DeleteUser(ctx context.Context, sessionID string, id int64) (domain.State, error)
}
