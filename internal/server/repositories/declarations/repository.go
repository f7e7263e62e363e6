package declarations

import (
	"context"

	"github.com/jdgomezdev/declaratax/internal/server/models"
)

// Repository is the persistence contract for tax declarations. Declarations
// are created once and only ever read back by their owner; there is no
// update or delete.
type Repository interface {
	Create(ctx context.Context, declaration *models.Declaration) (*models.Declaration, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Declaration, error)
}
