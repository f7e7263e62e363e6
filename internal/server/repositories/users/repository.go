package users

import (
	"context"

	"github.com/jdgomezdev/declaratax/internal/server/models"
)

// Repository is the persistence contract for user accounts.
//
// EmailExists and DocumentExists back the uniqueness checks that run as part
// of request validation; excludeID lets an update skip the record being
// edited (pass 0 when registering).
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	DocumentExists(ctx context.Context, numeroDocumento string) (bool, error)
	List(ctx context.Context, search string, offset, limit int) ([]*models.User, error)
	Count(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
}
