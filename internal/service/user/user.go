package user

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
	"github.com/ilyadubrovsky/notenmeister/internal/repository"
)

const maxNameLength = 50

type svc struct {
	usersRepo repository.Users
}

func NewService(
	usersRepo repository.Users,
) *svc {
	return &svc{
		usersRepo: usersRepo,
	}
}

func (s *svc) Register(ctx context.Context, userID int64, name string) error {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) > maxNameLength {
		name = string([]rune(name)[:maxNameLength])
	}

	err := s.usersRepo.Save(ctx, &domain.User{
		ID:   userID,
		Name: name,
	})
	if err != nil {
		return fmt.Errorf("usersRepo.Save: %w", err)
	}

	return nil
}

func (s *svc) SetName(ctx context.Context, userID int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return fmt.Errorf("%w: name must have 1-%d characters", ierrors.ErrInvalidInput, maxNameLength)
	}

	if _, err := s.User(ctx, userID); err != nil {
		return err
	}

	if err := s.usersRepo.SetName(ctx, userID, name); err != nil {
		return fmt.Errorf("usersRepo.SetName: %w", err)
	}

	return nil
}

func (s *svc) User(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.usersRepo.User(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("usersRepo.User: %w", err)
	}
	if user == nil {
		return nil, ierrors.ErrNotRegistered
	}

	return user, nil
}

func (s *svc) Delete(ctx context.Context, userID int64) error {
	if err := s.usersRepo.Delete(ctx, userID); err != nil {
		return fmt.Errorf("usersRepo.Delete: %w", err)
	}

	return nil
}

func (s *svc) Count(ctx context.Context) (int64, error) {
	count, err := s.usersRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("usersRepo.Count: %w", err)
	}

	return count, nil
}
