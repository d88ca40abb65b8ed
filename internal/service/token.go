package service

import "time"

type Token interface {
	Issue(userID int64, now time.Time) (token string, expiresAt time.Time, err error)
	Parse(token string) (int64, error)
}
