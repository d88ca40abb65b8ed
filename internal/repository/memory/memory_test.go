package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
)

const (
	owner    int64 = 3
	intruder int64 = 99
)

var day = time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC)

func newGrade(gradeType domain.GradeType, value float64) domain.Grade {
	return domain.Grade{
		ID:     uuid.NewString(),
		Type:   gradeType,
		Value:  value,
		Weight: 1,
		Date:   day,
	}
}

// seed stores one subject with one grade and one goal for userID.
func seed(t *testing.T, store *Store, userID int64, name string) (domain.Subject, *domain.Goal) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.Users().Save(ctx, &domain.User{ID: userID}))

	subject := domain.Subject{ID: uuid.NewString(), Name: name, IsMainSubject: true}
	require.NoError(t, store.Subjects().Save(ctx, userID, &subject))

	grade := newGrade(domain.GradeTypeSA, 2)
	require.NoError(t, store.Grades().Save(ctx, userID, subject.ID, &grade))
	subject.Grades = []domain.Grade{grade}

	goal := &domain.Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		SubjectID:   subject.ID,
		Title:       "Ziel " + name,
		TargetGrade: 2,
		TargetDate:  day.AddDate(0, 0, 7),
		CreatedAt:   day,
	}
	require.NoError(t, store.Goals().Save(ctx, goal))

	return subject, goal
}

func TestSubjects_Save_ForeignID(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	victim, _ := seed(t, store, owner, "Mathematik")

	err := store.Subjects().Save(ctx, intruder, &domain.Subject{ID: victim.ID, Name: "Fremd"})
	assert.ErrorIs(t, err, ierrors.ErrAlreadyExists)

	stored, err := store.Subjects().Subject(ctx, owner, victim.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mathematik", stored.Name)

	missing, err := store.Subjects().Subject(ctx, intruder, victim.ID)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSubjects_Replace_Rejected(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		payload func(victim, own domain.Subject) []domain.Subject
	}{
		{
			name: "subject id of another user",
			payload: func(victim, _ domain.Subject) []domain.Subject {
				return []domain.Subject{
					{ID: victim.ID, Name: "Mathematik", Grades: []domain.Grade{newGrade(domain.GradeTypeSA, 6)}},
				}
			},
		},
		{
			name: "grade id of another user",
			payload: func(victim, own domain.Subject) []domain.Subject {
				grade := newGrade(domain.GradeTypeEx, 6)
				grade.ID = victim.Grades[0].ID
				return []domain.Subject{
					{ID: own.ID, Name: own.Name},
					{ID: uuid.NewString(), Name: "Physik", Grades: []domain.Grade{grade}},
				}
			},
		},
		{
			name: "duplicate names",
			payload: func(_, own domain.Subject) []domain.Subject {
				return []domain.Subject{
					{ID: own.ID, Name: "Musik"},
					{ID: uuid.NewString(), Name: "Musik"},
				}
			},
		},
		{
			name: "duplicate grade ids",
			payload: func(_, own domain.Subject) []domain.Subject {
				grade := newGrade(domain.GradeTypeM, 1)
				return []domain.Subject{
					{ID: own.ID, Name: own.Name, Grades: []domain.Grade{grade, grade}},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore()
			victim, _ := seed(t, store, owner, "Mathematik")
			own, ownGoal := seed(t, store, intruder, "Deutsch")

			err := store.Subjects().Replace(ctx, intruder, tt.payload(victim, own))
			assert.ErrorIs(t, err, ierrors.ErrAlreadyExists)

			victimSubjects, err := store.Subjects().Subjects(ctx, owner)
			require.NoError(t, err)
			require.Len(t, victimSubjects, 1)
			assert.Equal(t, victim.Grades, victimSubjects[0].Grades)

			ownSubjects, err := store.Subjects().Subjects(ctx, intruder)
			require.NoError(t, err)
			require.Len(t, ownSubjects, 1, "a rejected sync leaves the data untouched")
			assert.Equal(t, own.Grades, ownSubjects[0].Grades)

			goal, err := store.Goals().Goal(ctx, intruder, ownGoal.ID)
			require.NoError(t, err)
			assert.NotNil(t, goal)
		})
	}
}

func TestSubjects_Replace(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	math, mathGoal := seed(t, store, owner, "Mathematik")
	german, germanGoal := seed(t, store, owner, "Deutsch")
	music, musicGoal := seed(t, store, owner, "Musik")

	replacement := newGrade(domain.GradeTypeEx, 3)
	art := domain.Subject{ID: uuid.NewString(), Name: "Kunst", Grades: []domain.Grade{newGrade(domain.GradeTypeM, 1)}}
	err := store.Subjects().Replace(ctx, owner, []domain.Subject{
		art,
		// names swapped between two kept subjects
		{ID: german.ID, Name: "Mathematik", IsMainSubject: true, Grades: []domain.Grade{replacement}},
		{ID: math.ID, Name: "Deutsch", IsMainSubject: true, Grades: math.Grades},
	})
	require.NoError(t, err)

	subjects, err := store.Subjects().Subjects(ctx, owner)
	require.NoError(t, err)
	require.Len(t, subjects, 3)
	assert.Equal(t, []string{art.ID, german.ID, math.ID}, []string{subjects[0].ID, subjects[1].ID, subjects[2].ID})
	assert.Equal(t, "Mathematik", subjects[1].Name)
	assert.Equal(t, []domain.Grade{replacement}, subjects[1].Grades)
	assert.Equal(t, math.Grades, subjects[2].Grades)

	goals, err := store.Goals().Goals(ctx, owner)
	require.NoError(t, err)
	ids := make([]string, 0, len(goals))
	for _, goal := range goals {
		ids = append(ids, goal.ID)
	}
	assert.ElementsMatch(t, []string{mathGoal.ID, germanGoal.ID}, ids, "goals of kept subjects survive")
	assert.NotContains(t, ids, musicGoal.ID)

	removed, err := store.Subjects().Subject(ctx, owner, music.ID)
	require.NoError(t, err)
	assert.Nil(t, removed)
}

func TestSubjects_Delete_Cascades(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	subject, goal := seed(t, store, owner, "Mathematik")

	assert.ErrorIs(t, store.Subjects().Delete(ctx, intruder, subject.ID), ierrors.ErrNotFound)
	require.NoError(t, store.Subjects().Delete(ctx, owner, subject.ID))

	stored, err := store.Goals().Goal(ctx, owner, goal.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
	assert.ErrorIs(t, store.Grades().Delete(ctx, owner, subject.Grades[0].ID), ierrors.ErrNotFound)
}

func TestGrades_Ownership(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	subject, _ := seed(t, store, owner, "Mathematik")

	grade := newGrade(domain.GradeTypeEx, 4)
	assert.ErrorIs(t, store.Grades().Save(ctx, intruder, subject.ID, &grade), ierrors.ErrNotFound)
	assert.ErrorIs(t, store.Grades().Delete(ctx, intruder, subject.Grades[0].ID), ierrors.ErrNotFound)

	duplicate := subject.Grades[0]
	assert.ErrorIs(t, store.Grades().Save(ctx, owner, subject.ID, &duplicate), ierrors.ErrAlreadyExists)

	dated := newGrade(domain.GradeTypeEx, 4)
	dated.Date = time.Date(2024, 5, 7, 15, 30, 0, 0, time.UTC)
	require.NoError(t, store.Grades().Save(ctx, owner, subject.ID, &dated))

	stored, err := store.Subjects().Subject(ctx, owner, subject.ID)
	require.NoError(t, err)
	require.Len(t, stored.Grades, 2)
	assert.Equal(t, time.Date(2024, 5, 7, 0, 0, 0, 0, time.UTC), stored.Grades[1].Date)
}

func TestGoals_Reminder(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	_, goal := seed(t, store, owner, "Mathematik")
	repo := store.Goals()

	due, err := repo.Due(ctx, day, goal.TargetDate)
	require.NoError(t, err)
	require.Len(t, due, 1)

	require.NoError(t, repo.MarkReminded(ctx, goal.ID, day))

	tests := []struct {
		name         string
		targetDate   time.Time
		wantReminded bool
	}{
		{name: "same date keeps the reminder", targetDate: goal.TargetDate, wantReminded: true},
		{name: "new date resets the reminder", targetDate: goal.TargetDate.AddDate(0, 0, 1), wantReminded: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := *goal
			updated.Title = "Neuer Titel"
			updated.TargetDate = tt.targetDate
			require.NoError(t, repo.Save(ctx, &updated))

			stored, err := repo.Goal(ctx, owner, goal.ID)
			require.NoError(t, err)
			assert.Equal(t, "Neuer Titel", stored.Title)
			assert.Equal(t, tt.wantReminded, stored.RemindedAt != nil)
			assert.Equal(t, goal.CreatedAt, stored.CreatedAt)

			due, err := repo.Due(ctx, day, day.AddDate(0, 0, 30))
			require.NoError(t, err)
			assert.Equal(t, !tt.wantReminded, len(due) == 1)
		})
	}

	assert.ErrorIs(t, repo.Delete(ctx, intruder, goal.ID), ierrors.ErrNotFound)
}

func TestUsers(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	seed(t, store, owner, "Mathematik")
	repo := store.Users()

	require.NoError(t, repo.SetName(ctx, owner, "Anna"))
	require.NoError(t, repo.Save(ctx, &domain.User{ID: owner, Name: "Telegram"}))

	user, err := repo.User(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "Anna", user.Name, "a stored name is kept")

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.Delete(ctx, owner))

	user, err = repo.User(ctx, owner)
	require.NoError(t, err)
	assert.Nil(t, user)

	subjects, err := store.Subjects().Subjects(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, subjects)

	require.NoError(t, repo.Save(ctx, &domain.User{ID: owner, Name: "Telegram"}))
	user, err = repo.User(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, "Telegram", user.Name)
}

func TestAchievements_Unlock(t *testing.T) {
	ctx := context.Background()
	repo := NewStore().Achievements()

	first := day
	require.NoError(t, repo.Unlock(ctx, owner, []domain.AchievementID{"first_grade"}, first))
	require.NoError(t, repo.Unlock(ctx, owner, []domain.AchievementID{"first_grade", "perfectionist"}, first.AddDate(0, 0, 1)))

	unlocked, err := repo.Unlocked(ctx, owner)
	require.NoError(t, err)
	assert.Equal(t, first, unlocked["first_grade"])
	assert.Equal(t, first.AddDate(0, 0, 1), unlocked["perfectionist"])

	other, err := repo.Unlocked(ctx, intruder)
	require.NoError(t, err)
	assert.Empty(t, other)
}
