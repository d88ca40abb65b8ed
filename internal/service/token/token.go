package token

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ilyadubrovsky/notenmeister/internal/config"
	ierrors "github.com/ilyadubrovsky/notenmeister/internal/errors"
)

const issuer = "notenmeister"

type svc struct {
	cfg config.Token
}

func NewService(cfg config.Token) *svc {
	return &svc{
		cfg: cfg,
	}
}

// Issue signs a sync token for the web app. The subject claim is the Telegram
// user id.
func (s *svc) Issue(userID int64, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(s.cfg.TTL)

	claims := jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("token.SignedString: %w", err)
	}

	return signed, expiresAt, nil
}

func (s *svc) Parse(token string) (int64, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.Secret), nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ierrors.ErrInvalidToken, err.Error())
	}

	if !claims.VerifyIssuer(issuer, true) {
		return 0, ierrors.ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ierrors.ErrInvalidToken
	}

	return userID, nil
}
