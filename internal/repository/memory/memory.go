// Package memory keeps every repository in process memory. It backs local runs
// without a database and the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/ilyadubrovsky/notenmeister/internal/domain"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
)

type subjectRow struct {
	userID  int64
	subject domain.Subject
	seq     int
}

type gradeRow struct {
	userID    int64
	subjectID string
	grade     domain.Grade
	seq       int
}

type userRow struct {
	user    domain.User
	deleted bool
}

// Store is safe for concurrent use. Its repositories follow the PostgreSQL ones:
// missing rows are nil, nil, ids owned by another user are ErrAlreadyExists and
// deleting a subject drops its grades and goals.
type Store struct {
	mu           sync.RWMutex
	seq          int
	users        map[int64]*userRow
	subjects     map[string]*subjectRow
	grades       map[string]*gradeRow
	goals        map[string]*domain.Goal
	achievements map[int64]map[domain.AchievementID]time.Time
}

func NewStore() *Store {
	return &Store{
		users:        make(map[int64]*userRow),
		subjects:     make(map[string]*subjectRow),
		grades:       make(map[string]*gradeRow),
		goals:        make(map[string]*domain.Goal),
		achievements: make(map[int64]map[domain.AchievementID]time.Time),
	}
}

func (s *Store) Users() *usersRepo { return &usersRepo{s} }
func (s *Store) Subjects() *subjectsRepo { return &subjectsRepo{s} }
func (s *Store) Grades() *gradesRepo { return &gradesRepo{s} }
func (s *Store) Goals() *goalsRepo { return &goalsRepo{s} }
func (s *Store) Achievements() *achievementsRepo { return &achievementsRepo{s} }

func (s *Store) next() int {
	s.seq++
	return s.seq
}

func (s *Store) deleteSubject(subjectID string) {
	delete(s.subjects, subjectID)
	for id, row := range s.grades {
		if row.subjectID == subjectID {
			delete(s.grades, id)
		}
	}
	for id, goal := range s.goals {
		if goal.SubjectID == subjectID {
			delete(s.goals, id)
		}
	}
}

func (s *Store) saveSubject(userID int64, subject *domain.Subject) error {
	for id, row := range s.subjects {
		if id != subject.ID && row.userID == userID && row.subject.Name == subject.Name {
			return ierrors.ErrAlreadyExists
		}
	}

	row, ok := s.subjects[subject.ID]
	if ok && row.userID != userID {
		return ierrors.ErrAlreadyExists
	}
	if !ok {
		row = &subjectRow{userID: userID, seq: s.next()}
		s.subjects[subject.ID] = row
	}

	row.subject = domain.Subject{
		ID:            subject.ID,
		Name:          subject.Name,
		IsMainSubject: subject.IsMainSubject,
		FinalGrade:    copyFloat(subject.FinalGrade),
	}

	return nil
}

func (s *Store) saveGrade(userID int64, subjectID string, grade *domain.Grade) error {
	if _, ok := s.grades[grade.ID]; ok {
		return ierrors.ErrAlreadyExists
	}

	stored := *grade
	stored.Description = copyString(grade.Description)
	stored.Date = truncateDay(grade.Date)
	s.grades[grade.ID] = &gradeRow{
		userID:    userID,
		subjectID: subjectID,
		grade:     stored,
		seq:       s.next(),
	}

	return nil
}

func (s *Store) subjectGrades(subjectID string) []domain.Grade {
	rows := make([]*gradeRow, 0)
	for _, row := range s.grades {
		if row.subjectID == subjectID {
			rows = append(rows, row)
		}
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].grade.Date.Equal(rows[j].grade.Date) {
			return rows[i].grade.Date.Before(rows[j].grade.Date)
		}
		return rows[i].seq < rows[j].seq
	})

	grades := make([]domain.Grade, 0, len(rows))
	for _, row := range rows {
		grade := row.grade
		grade.Description = copyString(row.grade.Description)
		grades = append(grades, grade)
	}

	return grades
}

func (s *Store) subject(row *subjectRow) domain.Subject {
	subject := row.subject
	subject.FinalGrade = copyFloat(row.subject.FinalGrade)
	subject.Grades = s.subjectGrades(subject.ID)
	return subject
}

type usersRepo struct {
	s *Store
}

func (r *usersRepo) Save(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.users[user.ID]
	if !ok {
		r.s.users[user.ID] = &userRow{user: domain.User{
			ID:        user.ID,
			Name:      user.Name,
			CreatedAt: time.Now(),
		}}
		return nil
	}

	if row.user.Name == "" {
		row.user.Name = user.Name
	}
	row.deleted = false

	return nil
}

func (r *usersRepo) User(_ context.Context, userID int64) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.users[userID]
	if !ok || row.deleted {
		return nil, nil
	}

	user := row.user
	return &user, nil
}

func (r *usersRepo) SetName(_ context.Context, userID int64, name string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if row, ok := r.s.users[userID]; ok && !row.deleted {
		row.user.Name = name
	}

	return nil
}

func (r *usersRepo) Delete(_ context.Context, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, row := range r.s.subjects {
		if row.userID == userID {
			r.s.deleteSubject(id)
		}
	}
	delete(r.s.achievements, userID)

	if row, ok := r.s.users[userID]; ok {
		row.user.Name = ""
		row.deleted = true
	}

	return nil
}

func (r *usersRepo) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var count int64
	for _, row := range r.s.users {
		if !row.deleted {
			count++
		}
	}

	return count, nil
}

type subjectsRepo struct {
	s *Store
}

func (r *subjectsRepo) Save(_ context.Context, userID int64, subject *domain.Subject) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.s.saveSubject(userID, subject)
}

func (r *subjectsRepo) Subject(_ context.Context, userID int64, subjectID string) (*domain.Subject, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	row, ok := r.s.subjects[subjectID]
	if !ok || row.userID != userID {
		return nil, nil
	}

	subject := r.s.subject(row)
	return &subject, nil
}

func (r *subjectsRepo) Subjects(_ context.Context, userID int64) ([]domain.Subject, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rows := make([]*subjectRow, 0)
	for _, row := range r.s.subjects {
		if row.userID == userID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].seq < rows[j].seq
	})

	subjects := make([]domain.Subject, 0, len(rows))
	for _, row := range rows {
		subjects = append(subjects, r.s.subject(row))
	}

	return subjects, nil
}

func (r *subjectsRepo) Delete(_ context.Context, userID int64, subjectID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.subjects[subjectID]
	if !ok || row.userID != userID {
		return ierrors.ErrNotFound
	}

	r.s.deleteSubject(subjectID)
	return nil
}

// Replace checks every id before touching the store, so a failed sync leaves the
// user's data as it was. Subjects kept by id keep their goals.
func (r *subjectsRepo) Replace(_ context.Context, userID int64, subjects []domain.Subject) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	seen := make(map[string]struct{})
	kept := make(map[string]struct{}, len(subjects))
	for _, subject := range subjects {
		if row, ok := r.s.subjects[subject.ID]; ok && row.userID != userID {
			return ierrors.ErrAlreadyExists
		}
		kept[subject.ID] = struct{}{}

		keys := []string{"subject:" + subject.ID, "name:" + subject.Name}
		for _, grade := range subject.Grades {
			if row, ok := r.s.grades[grade.ID]; ok && row.userID != userID {
				return ierrors.ErrAlreadyExists
			}
			keys = append(keys, "grade:"+grade.ID)
		}
		for _, key := range keys {
			if _, ok := seen[key]; ok {
				return ierrors.ErrAlreadyExists
			}
			seen[key] = struct{}{}
		}
	}

	for id, row := range r.s.grades {
		if row.userID == userID {
			delete(r.s.grades, id)
		}
	}
	for id, row := range r.s.subjects {
		if _, ok := kept[id]; row.userID == userID && !ok {
			r.s.deleteSubject(id)
		}
	}

	for i := range subjects {
		subject := subjects[i]
		r.s.subjects[subject.ID] = &subjectRow{
			userID: userID,
			seq:    r.s.next(),
			subject: domain.Subject{
				ID:            subject.ID,
				Name:          subject.Name,
				IsMainSubject: subject.IsMainSubject,
				FinalGrade:    copyFloat(subject.FinalGrade),
			},
		}
		for j := range subject.Grades {
			if err := r.s.saveGrade(userID, subject.ID, &subject.Grades[j]); err != nil {
				return err
			}
		}
	}

	return nil
}

type gradesRepo struct {
	s *Store
}

func (r *gradesRepo) Save(_ context.Context, userID int64, subjectID string, grade *domain.Grade) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.subjects[subjectID]
	if !ok || row.userID != userID {
		return ierrors.ErrNotFound
	}

	return r.s.saveGrade(userID, subjectID, grade)
}

func (r *gradesRepo) Delete(_ context.Context, userID int64, gradeID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.grades[gradeID]
	if !ok || row.userID != userID {
		return ierrors.ErrNotFound
	}

	delete(r.s.grades, gradeID)
	return nil
}

type goalsRepo struct {
	s *Store
}

func (r *goalsRepo) Save(_ context.Context, goal *domain.Goal) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *goal
	stored.TargetDate = truncateDay(goal.TargetDate)

	if existing, ok := r.s.goals[goal.ID]; ok {
		if existing.UserID != goal.UserID {
			return nil
		}
		stored.CreatedAt = existing.CreatedAt
		stored.RemindedAt = nil
		if existing.TargetDate.Equal(stored.TargetDate) {
			stored.RemindedAt = existing.RemindedAt
		}
	}

	r.s.goals[goal.ID] = &stored
	return nil
}

func (r *goalsRepo) Goal(_ context.Context, userID int64, goalID string) (*domain.Goal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	goal, ok := r.s.goals[goalID]
	if !ok || goal.UserID != userID {
		return nil, nil
	}

	result := *goal
	return &result, nil
}

func (r *goalsRepo) Goals(_ context.Context, userID int64) ([]*domain.Goal, error) {
	return r.filter(func(goal *domain.Goal) bool {
		return goal.UserID == userID
	}), nil
}

func (r *goalsRepo) Due(_ context.Context, from, to time.Time) ([]*domain.Goal, error) {
	from, to = truncateDay(from), truncateDay(to)
	return r.filter(func(goal *domain.Goal) bool {
		return goal.RemindedAt == nil &&
			!goal.TargetDate.Before(from) &&
			!goal.TargetDate.After(to)
	}), nil
}

func (r *goalsRepo) filter(match func(goal *domain.Goal) bool) []*domain.Goal {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	goals := make([]*domain.Goal, 0)
	for _, goal := range r.s.goals {
		if match(goal) {
			result := *goal
			goals = append(goals, &result)
		}
	}

	sort.Slice(goals, func(i, j int) bool {
		if !goals[i].TargetDate.Equal(goals[j].TargetDate) {
			return goals[i].TargetDate.Before(goals[j].TargetDate)
		}
		return goals[i].CreatedAt.Before(goals[j].CreatedAt)
	})

	return goals
}

func (r *goalsRepo) Delete(_ context.Context, userID int64, goalID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	goal, ok := r.s.goals[goalID]
	if !ok || goal.UserID != userID {
		return ierrors.ErrNotFound
	}

	delete(r.s.goals, goalID)
	return nil
}

func (r *goalsRepo) MarkReminded(_ context.Context, goalID string, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if goal, ok := r.s.goals[goalID]; ok {
		goal.RemindedAt = &at
	}

	return nil
}

type achievementsRepo struct {
	s *Store
}

func (r *achievementsRepo) Unlocked(_ context.Context, userID int64) (map[domain.AchievementID]time.Time, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	unlocked := make(map[domain.AchievementID]time.Time, len(r.s.achievements[userID]))
	for id, at := range r.s.achievements[userID] {
		unlocked[id] = at
	}

	return unlocked, nil
}

func (r *achievementsRepo) Unlock(_ context.Context, userID int64, ids []domain.AchievementID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	unlocked, ok := r.s.achievements[userID]
	if !ok {
		unlocked = make(map[domain.AchievementID]time.Time, len(ids))
		r.s.achievements[userID] = unlocked
	}

	for _, id := range ids {
		if _, ok := unlocked[id]; !ok {
			unlocked[id] = at
		}
	}

	return nil
}

func truncateDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
