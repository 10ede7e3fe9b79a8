package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	appErr "github.com/docbrief/docbrief/internal/pkg/errors"
	"github.com/docbrief/docbrief/internal/pkg/jwt"
	"github.com/docbrief/docbrief/internal/pkg/timeutil"
	"github.com/docbrief/docbrief/internal/repo"
)

var validUserID = regexp.MustCompile(`^[\w.\-]{1,64}$`)

// AuthService issues bearer tokens for sessions. There is no credential
// check: a caller either presents a stable client identifier or gets a fresh
// guest identity, and documents are scoped to that identity from then on.
type AuthService struct {
	users  *repo.UserRepo
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users *repo.UserRepo, secret string, ttl time.Duration) *AuthService {
	return &AuthService{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// OpenSession registers the user (creating the row on first sight) and
// returns the identity together with a signed token.
func (s *AuthService) OpenSession(ctx context.Context, userID string) (string, string, error) {
	if userID == "" {
		userID = "guest-" + newID()
	} else if !validUserID.MatchString(userID) {
		return "", "", fmt.Errorf("%w: user id may only contain letters, digits, dot, dash and underscore", appErr.ErrInvalid)
	}
	if err := s.users.Touch(ctx, userID, timeutil.NowUnix()); err != nil {
		return "", "", err
	}
	token, err := jwt.GenerateToken(userID, s.secret, s.ttl)
	if err != nil {
		return "", "", err
	}
	return userID, token, nil
}
