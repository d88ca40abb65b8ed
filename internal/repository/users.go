package repository

import (
	"context"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type Users interface {
	Save(ctx context.Context, user *domain.User) error
	User(ctx context.Context, userID int64) (*domain.User, error)
	SetName(ctx context.Context, userID int64, name string) error
	Delete(ctx context.Context, userID int64) error
	Count(ctx context.Context) (int64, error)
}
