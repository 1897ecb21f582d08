package user

import (
	"context"

	"go.uber.org/zap"

	domain "userdeck/internal/domain/user"
	pkgerrors "userdeck/pkg/errors"
	"userdeck/pkg/logger"
)

// Interactor implements Usecase. Each operation makes at most one backend
// call and applies the matching State update only when that call succeeds.
//
// Backend failures are written to the diagnostic log and otherwise ignored:
// the returned State is what the page shows and the error return is reserved
// for the session store.
type Interactor struct {
	backend Backend
	store   StateStore
	log     *zap.Logger
}

var _ Usecase = (*Interactor)(nil)

// New creates a new Interactor.
func New(backend Backend, store StateStore, log *zap.Logger) *Interactor {
	return &Interactor{backend: backend, store: store, log: log}
}

// Mount returns the session's state, fetching the user list first until
// one list has succeeded for the session.
func (uc *Interactor) Mount(ctx context.Context, sessionID string) (domain.State, error) {
	st, err := uc.load(ctx, sessionID)
	if err != nil {
		return domain.State{}, err
	}
	if st.Loaded {
		return st, nil
	}
	return uc.list(ctx, sessionID, st)
}

// Refresh fetches the user list again, keeping the drafts.
func (uc *Interactor) Refresh(ctx context.Context, sessionID string) (domain.State, error) {
	st, err := uc.load(ctx, sessionID)
	if err != nil {
		return domain.State{}, err
	}
	return uc.list(ctx, sessionID, st)
}

func (uc *Interactor) list(ctx context.Context, sessionID string, st domain.State) (domain.State, error) {
	users, err := uc.backend.ListUsers(context.WithoutCancel(ctx))
	if err != nil {
		uc.logFailure(ctx, "Error fetching data", err)
	} else {
		st = st.WithList(users)
	}

	if err := uc.save(ctx, sessionID, st); err != nil {
		return domain.State{}, err
	}
	return st, nil
}

// CreateUser records the draft, posts it, and on success puts the created
// user first and clears the draft.
func (uc *Interactor) CreateUser(ctx context.Context, sessionID string, d domain.NewUserDraft) (domain.State, error) {
	st, err := uc.load(ctx, sessionID)
	if err != nil {
		return domain.State{}, err
	}
	st = st.WithNewUserDraft(d)
	if err := uc.save(ctx, sessionID, st); err != nil {
		return domain.State{}, err
	}

	created, err := uc.backend.CreateUser(context.WithoutCancel(ctx), d)
	if err != nil {
		uc.logFailure(ctx, "Error creating user", err)
		return st, nil
	}

	st = st.WithCreated(*created)
	if err := uc.save(ctx, sessionID, st); err != nil {
		return domain.State{}, err
	}
	return st, nil
}

// UpdateUser records the draft, sends it to /api/{label}/users/{id}, and on
// success patches the matching list entries and clears the draft.
func (uc *Interactor) UpdateUser(ctx context.Context, sessionID, label string, d domain.UpdateUserDraft) (domain.State, error) {
	st, err := uc.load(ctx, sessionID)
	if err != nil {
		return domain.State{}, err
	}
	st = st.WithUpdateUserDraft(d)
	if err := uc.save(ctx, sessionID, st); err != nil {
		return domain.State{}, err
	}

	if err := uc.backend.UpdateUser(context.WithoutCancel(ctx), label, d.ID, d); err != nil {
		uc.logFailure(ctx, "Error updating user", err, zap.String("user_id", d.ID))
		return st, nil
	}

	st = st.WithUpdated(d)
	if err := uc.save(ctx, sessionID, st); err != nil {
		return domain.State{}, err
	}
	return st, nil
}

// DeleteUser deletes the user and on success drops it from the list.
func (uc *Interactor) DeleteUser(ctx context.Context, sessionID string, id int64) (domain.State, error) {
	st, err := uc.load(ctx, sessionID)
	if err != nil {
		return domain.State{}, err
	}

	if err := uc.backend.DeleteUser(context.WithoutCancel(ctx), id); err != nil {
		uc.logFailure(ctx, "Error deleting user", err, zap.Int64("user_id", id))
		return st, nil
	}

	st = st.WithDeleted(id)
	if err := uc.save(ctx, sessionID, st); err != nil {
		return domain.State{}, err
	}
	return st, nil
}

// load returns the stored state, or an empty one for an unknown session.
func (uc *Interactor) load(ctx context.Context, sessionID string) (domain.State, error) {
	st, err := uc.store.Get(ctx, sessionID)
	if err != nil {
		return domain.State{}, pkgerrors.NewInternalError("load session", err)
	}
	if st == nil {
		return domain.State{}, nil
	}
	return *st, nil
}

func (uc *Interactor) save(ctx context.Context, sessionID string, st domain.State) error {
	if err := uc.store.Save(ctx, sessionID, st); err != nil {
		return pkgerrors.NewInternalError("save session", err)
	}
	return nil
}

func (uc *Interactor) logFailure(ctx context.Context, msg string, err error, fields ...zap.Field) {
	logger.WithContext(ctx, uc.log).Error(msg, append(fields, zap.Error(err))...)
}
