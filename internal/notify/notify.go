// Package notify persists provider notifications and publishes
// appointment events.
package notify

import (
	"context"
	"errors"

	"appointments-server/internal/models"
)

// ErrNotFound is returned when no notification matches the id.
var ErrNotFound = errors.New("notification not found")

// Store is the append-only notification log, keyed by recipient.
type Store interface {
	Append(ctx context.Context, n *models.Notification) error
	ListForUser(ctx context.Context, userID uint, limit int) ([]models.Notification, error)
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	MarkRead(ctx context.Context, id string) (*models.Notification, error)
}
