package repository

import (
	"context"

	"github.com/akachour/wird/internal/core/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdatePassword(ctx context.Context, user *domain.User) error
	List(ctx context.Context) ([]*domain.User, error)
}
