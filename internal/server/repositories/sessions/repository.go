package sessions

import (
	"context"
	"time"

	"github.com/jdgomezdev/declaratax/internal/server/models"
)

// Repository is the persistence contract for login sessions. Expired rows
// are removed lazily via DeleteExpired.
type Repository interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}
