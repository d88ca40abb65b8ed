package service

import (
	"context"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
)

type User interface {
	// Register stores the user. A name stored before is kept.
	Register(ctx context.Context, userID int64, name string) error
	SetName(ctx context.Context, userID int64, name string) error
	User(ctx context.Context, userID int64) (*domain.User, error)
	Delete(ctx context.Context, userID int64) error
	Count(ctx context.Context) (int64, error)
}
