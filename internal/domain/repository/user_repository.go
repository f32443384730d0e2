package repository

import (
	"context"

	"github.com/templecycle/templecycle-api/internal/domain/entity"
)

// UserRepository is the persistence port for User. Lookups return (nil, nil)
// when the record does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	List(ctx context.Context, role string, limit, offset int) ([]*entity.User, error)
}
