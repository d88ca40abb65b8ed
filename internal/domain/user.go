package domain

import "time"

// User is a student identified by the Telegram user id.
type User struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

const DefaultStudentName = "Schüler"

func (u *User) StudentName() string {
	if u == nil || u.Name == "" {
		return DefaultStudentName
	}
	return u.Name
}
