package memory

import (
	"context"
	"sort"

	"github.com/templecycle/templecycle-api/internal/domain"
	"github.com/templecycle/templecycle-api/internal/domain/entity"
	"github.com/templecycle/templecycle-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implements UserRepository over the in-process store.
type UserRepo struct {
	s *Store
}

// NewUserRepository builds the adapter.
func NewUserRepository(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

// Create persists a new account. ErrEmailAlreadyExists on a taken email.
func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, taken := r.s.emails[user.Email]; taken {
		return domain.ErrEmailAlreadyExists
	}
	r.s.users[user.ID] = clone(user)
	r.s.emails[user.Email] = user.ID
	return nil
}

// GetByID returns a user by id, nil when absent.
func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return clone(u), nil
}

// GetByEmail returns a user by email, nil when absent.
func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.emails[email]
	if !ok {
		return nil, nil
	}
	return clone(r.s.users[id]), nil
}

// Update persists the mutable user fields.
func (r *UserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.s.users[user.ID] = clone(user)
	return nil
}

// List returns users, optionally filtered by role, newest first.
func (r *UserRepo) List(_ context.Context, role string, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var list []*entity.User
	for _, u := range r.s.users {
		if role != "" && u.Role != role {
			continue
		}
		list = append(list, u)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })

	list = page(list, limit, offset)
	out := make([]*entity.User, 0, len(list))
	for _, u := range list {
		out = append(out, clone(u))
	}
	return out, nil
}

// page applies limit/offset to a slice.
func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
