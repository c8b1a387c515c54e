// Package store holds the relational repositories. Callers depend on the
// interfaces so the in-memory implementations in store/memory can stand in.
package store

import (
	"context"
	"errors"
	"time"

	"appointments-server/internal/models"
)

// ErrNotFound is returned when a lookup matches no record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is returned when a unique column already holds the value.
var ErrDuplicate = errors.New("duplicate record")

// ErrLockConflict is returned when the database aborted a transaction
// because another one holds the rows it needs (deadlock or lock wait timeout).
var ErrLockConflict = errors.New("lock conflict")

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ListProviders(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
}

type AppointmentStore interface {
	FindByID(ctx context.Context, id uint) (*models.Appointment, error)
	// FindConflicting returns the non-canceled appointment holding the
	// provider's slot at date, or nil when the slot is free.
	FindConflicting(ctx context.Context, providerID uint, date time.Time) (*models.Appointment, error)
	Insert(ctx context.Context, a *models.Appointment) error
	Update(ctx context.Context, a *models.Appointment) error
	// ListByUser returns one page of the user's non-canceled appointments by date.
	ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.Appointment, error)
	// ListByProvider returns the provider's non-canceled appointments in [from, to).
	ListByProvider(ctx context.Context, providerID uint, from, to time.Time) ([]models.Appointment, error)
	// Transact runs fn against a store bound to one transaction. Slot
	// lookups inside fn lock the slot until fn returns.
	Transact(ctx context.Context, fn func(AppointmentStore) error) error
}

type FileStore interface {
	FindByID(ctx context.Context, id uint) (*models.File, error)
	FindByPath(ctx context.Context, path string) (*models.File, error)
	Create(ctx context.Context, f *models.File) error
}
