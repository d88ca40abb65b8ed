package grades

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/jellydator/ttlcache/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
	"github.com/ilyadubrovsky/notenmeister/internal/repository/memory"
	"github.com/ilyadubrovsky/notenmeister/internal/service"
	"github.com/ilyadubrovsky/notenmeister/internal/validation"
)

const userID int64 = 7

func newService(t *testing.T) (*svc, *memory.Store, string) {
	t.Helper()
	ctx := context.Background()

	store := memory.NewStore()
	require.NoError(t, store.Users().Save(ctx, &domain.User{ID: userID}))

	subject := &domain.Subject{ID: "5f3a0e64-3c1e-4a8e-9c1d-7a4a1f7f2b10", Name: "Mathematik", IsMainSubject: true}
	require.NoError(t, store.Subjects().Save(ctx, userID, subject))

	cache := ttlcache.New[int64, int](ttlcache.WithTTL[int64, int](time.Minute))
	return NewService(store.Grades(), cache, validation.New()), store, subject.ID
}

func TestService_Add(t *testing.T) {
	ctx := context.Background()
	s, store, subjectID := newService(t)

	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	grade, err := s.Add(ctx, userID, subjectID, service.NewGrade{
		Type:        domain.GradeTypeSA,
		Value:       2,
		Weight:      2,
		Description: "  Geometrie ",
		Date:        date,
	})
	require.NoError(t, err)
	assert.Equal(t, "Geometrie", grade.DescriptionOr(""))

	subject, err := store.Subjects().Subject(ctx, userID, subjectID)
	require.NoError(t, err)
	require.Len(t, subject.Grades, 1)
	assert.Equal(t, grade.ID, subject.Grades[0].ID)
	assert.Equal(t, date, subject.Grades[0].Date)
	assert.Equal(t, 2.0, subject.Grades[0].Weight)
}

func TestService_Add_Invalid(t *testing.T) {
	ctx := context.Background()
	s, _, subjectID := newService(t)

	tests := []struct {
		name      string
		subjectID string
		grade     service.NewGrade
		err       error
	}{
		{
			name:      "unknown type",
			subjectID: subjectID,
			grade:     service.NewGrade{Type: "X", Value: 2, Weight: 1},
			err:       ierrors.ErrInvalidInput,
		},
		{
			name:      "value below 1",
			subjectID: subjectID,
			grade:     service.NewGrade{Type: domain.GradeTypeEx, Value: 0.5, Weight: 1},
			err:       ierrors.ErrInvalidInput,
		},
		{
			name:      "value above 6",
			subjectID: subjectID,
			grade:     service.NewGrade{Type: domain.GradeTypeEx, Value: 6.5, Weight: 1},
			err:       ierrors.ErrInvalidInput,
		},
		{
			name:      "zero weight",
			subjectID: subjectID,
			grade:     service.NewGrade{Type: domain.GradeTypeEx, Value: 2, Weight: 0},
			err:       ierrors.ErrInvalidInput,
		},
		{
			name:      "infinite weight",
			subjectID: subjectID,
			grade:     service.NewGrade{Type: domain.GradeTypeEx, Value: 2, Weight: math.Inf(1)},
			err:       ierrors.ErrInvalidInput,
		},
		{
			name:      "weight above 10",
			subjectID: subjectID,
			grade:     service.NewGrade{Type: domain.GradeTypeEx, Value: 2, Weight: 11},
			err:       ierrors.ErrInvalidInput,
		},
		{
			name:      "not a number",
			subjectID: subjectID,
			grade:     service.NewGrade{Type: domain.GradeTypeEx, Value: math.NaN(), Weight: 1},
			err:       ierrors.ErrInvalidInput,
		},
		{
			name:      "unknown subject",
			subjectID: "0b7e6f0c-1111-4b8e-9c1d-7a4a1f7f2b10",
			grade:     service.NewGrade{Type: domain.GradeTypeEx, Value: 2, Weight: 1},
			err:       ierrors.ErrNotFound,
		},
		{
			name:      "malformed subject id",
			subjectID: "1",
			grade:     service.NewGrade{Type: domain.GradeTypeEx, Value: 2, Weight: 1},
			err:       ierrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Add(ctx, userID, tt.subjectID, tt.grade)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	assert.Zero(t, s.SessionCount(userID), "rejected grades do not count")
}

func TestService_SessionCount(t *testing.T) {
	ctx := context.Background()
	s, _, subjectID := newService(t)

	for i := 0; i < 3; i++ {
		_, err := s.Add(ctx, userID, subjectID, service.NewGrade{Type: domain.GradeTypeM, Value: 1, Weight: 1})
		require.NoError(t, err)
	}

	assert.Equal(t, 3, s.SessionCount(userID))
	assert.Zero(t, s.SessionCount(userID+1))
}

func TestService_Delete(t *testing.T) {
	ctx := context.Background()
	s, _, subjectID := newService(t)

	grade, err := s.Add(ctx, userID, subjectID, service.NewGrade{Type: domain.GradeTypeE, Value: 3, Weight: 1})
	require.NoError(t, err)

	assert.ErrorIs(t, s.Delete(ctx, userID+1, grade.ID), ierrors.ErrNotFound)
	require.NoError(t, s.Delete(ctx, userID, grade.ID))
	assert.ErrorIs(t, s.Delete(ctx, userID, grade.ID), ierrors.ErrNotFound)
}
