package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jdgomezdev/declaratax/internal/common"
	"github.com/jdgomezdev/declaratax/internal/dbx"
	"github.com/jdgomezdev/declaratax/internal/server/auth"
	"github.com/jdgomezdev/declaratax/internal/server/models"
	"github.com/jdgomezdev/declaratax/internal/server/repositories/repomanager"
)

// SessionService is the auth gate: it starts, resolves and destroys the
// server-side sessions behind the session cookie, and mints the optional
// remember-me token that can re-establish a session after expiry.
type SessionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	secretKey   []byte
	sessionTTL  time.Duration
	rememberTTL time.Duration
	now         func() time.Time
	newID       func() string
}

func NewSessionService(db *sql.DB, m repomanager.RepositoryManager, secretKey string, sessionTTL, rememberTTL time.Duration) *SessionService {
	return &SessionService{
		db:          db,
		repomanager: m,
		secretKey:   []byte(secretKey),
		sessionTTL:  sessionTTL,
		rememberTTL: rememberTTL,
		now:         time.Now,
		newID:       func() string { return uuid.NewString() },
	}
}

// Start creates a session for the user. With remember=true it also returns
// a signed remember-me token; otherwise the token is empty.
func (s *SessionService) Start(ctx context.Context, userID int64, remember bool) (*models.Session, string, error) {
	now := s.now().UTC()
	session := &models.Session{
		ID:        s.newID(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Sessions(tx)
		// Lazy housekeeping: drop dead sessions while we are writing anyway.
		if err := repo.DeleteExpired(ctx, now); err != nil {
			return err
		}
		return repo.Create(ctx, session)
	}); err != nil {
		return nil, "", common.ErrorInternal
	}

	var rememberToken string
	if remember {
		token, err := auth.GenerateRememberToken(userID, s.secretKey, s.rememberTTL)
		if err != nil {
			return nil, "", common.ErrorInternal
		}
		rememberToken = token
	}

	return session, rememberToken, nil
}

// Resolve returns the user behind a session cookie. An expired or unknown
// session falls back to the remember token when one is presented; the fresh
// session returned in that case must be re-issued to the client. With
// nothing to go on it returns ErrorUnauthorized.
func (s *SessionService) Resolve(ctx context.Context, sessionID, rememberToken string) (*models.User, *models.Session, error) {
	if sessionID != "" {
		session, err := s.repomanager.Sessions(s.db).Get(ctx, sessionID)
		switch {
		case err == nil && !session.Expired(s.now().UTC()):
			user, err := s.repomanager.Users(s.db).GetByID(ctx, session.UserID)
			if err != nil {
				return nil, nil, common.ErrorUnauthorized
			}
			return user, session, nil
		case err == nil:
			// Session row exists but is stale.
			_ = s.repomanager.Sessions(s.db).Delete(ctx, sessionID)
		case !errors.Is(err, common.ErrorNotFound):
			return nil, nil, common.ErrorInternal
		}
	}

	if rememberToken == "" {
		return nil, nil, common.ErrorUnauthorized
	}

	userID, err := auth.GetUserIDFromRememberToken(rememberToken, s.secretKey)
	if err != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	user, err := s.repomanager.Users(s.db).GetByID(ctx, userID)
	if err != nil {
		return nil, nil, common.ErrorUnauthorized
	}

	session, _, err := s.Start(ctx, user.ID, false)
	if err != nil {
		return nil, nil, common.ErrorInternal
	}
	return user, session, nil
}

// Destroy deletes the session. Destroying an unknown session reports
// ErrorUnauthorized, matching the "no session" contract.
func (s *SessionService) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return common.ErrorUnauthorized
	}
	err := s.repomanager.Sessions(s.db).Delete(ctx, sessionID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorUnauthorized
		}
		return common.ErrorInternal
	}
	return nil
}
