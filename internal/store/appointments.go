package store

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"appointments-server/internal/models"
)

type appointmentRepository struct {
	db *gorm.DB
	// inTx is set on the copy handed to Transact callbacks.
	inTx bool
}

func NewAppointmentRepository(db *gorm.DB) AppointmentStore {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Provider").
		Preload("User").
		First(&appointment, id).Error
	if err != nil {
		return nil, translate(err, "find appointment")
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindConflicting(ctx context.Context, providerID uint, date time.Time) (*models.Appointment, error) {
	query := r.db.WithContext(ctx)
	if r.inTx {
		// InnoDB takes a next-key lock on the (provider_id, date) index range,
		// so a concurrent booking of the same slot waits for this transaction.
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var found []models.Appointment
	err := query.
		Where("provider_id = ? AND date = ? AND canceled_at IS NULL", providerID, date).
		Limit(1).
		Find(&found).Error
	if err != nil {
		return nil, translate(err, "find conflicting appointment")
	}
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (r *appointmentRepository) Insert(ctx context.Context, a *models.Appointment) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(a).Error, "insert appointment")
}

func (r *appointmentRepository) Update(ctx context.Context, a *models.Appointment) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(a).Error, "update appointment")
}

func (r *appointmentRepository) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.Appointment, error) {
	if page < 1 {
		page = 1
	}
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Provider.Avatar").
		Where("user_id = ? AND canceled_at IS NULL", userID).
		Order("date asc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&appointments).Error
	if err != nil {
		return nil, translate(err, "list appointments")
	}
	return appointments, nil
}

func (r *appointmentRepository) ListByProvider(ctx context.Context, providerID uint, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("provider_id = ? AND canceled_at IS NULL AND date >= ? AND date < ?", providerID, from, to).
		Order("date asc").
		Find(&appointments).Error
	if err != nil {
		return nil, translate(err, "list provider appointments")
	}
	return appointments, nil
}

func (r *appointmentRepository) Transact(ctx context.Context, fn func(AppointmentStore) error) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&appointmentRepository{db: tx, inTx: true})
	})
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		// raised by COMMIT rather than a statement inside fn
		return translate(err, "commit appointment transaction")
	}
	return err
}
