package store

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"appointments-server/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Discard,
	})
	require.NoError(t, err)
	return db, mock
}

var appointmentColumns = []string{"id", "created_at", "updated_at", "user_id", "provider_id", "date", "canceled_at"}

func TestFindConflictingFreeSlot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	date := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `appointments` WHERE provider_id = ? AND date = ? AND canceled_at IS NULL")).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	found, err := repo.FindConflicting(context.Background(), 2, date)
	require.NoError(t, err)
	assert.Nil(t, found)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindConflictingTakenSlot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	date := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `appointments` WHERE provider_id = ? AND date = ? AND canceled_at IS NULL")).
		WillReturnRows(sqlmock.NewRows(appointmentColumns).
			AddRow(5, date, date, 1, 2, date, nil))

	found, err := repo.FindConflicting(context.Background(), 2, date)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, uint(5), found.ID)
	assert.Equal(t, uint(2), found.ProviderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactLocksSlotAndInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	date := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM .appointments. WHERE provider_id = \? AND date = \? AND canceled_at IS NULL .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `appointments`")).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	appointment := &models.Appointment{UserID: 1, ProviderID: 2, Date: date}
	err := repo.Transact(context.Background(), func(tx AppointmentStore) error {
		conflict, err := tx.FindConflicting(context.Background(), 2, date)
		if err != nil {
			return err
		}
		require.Nil(t, conflict)
		return tx.Insert(context.Background(), appointment)
	})

	require.NoError(t, err)
	assert.Equal(t, uint(11), appointment.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactRollsBackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	boom := errors.New("slot taken")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := repo.Transact(context.Background(), func(AppointmentStore) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTransactTranslatesLockConflicts(t *testing.T) {
	date := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("deadlock on insert", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAppointmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `appointments`")).
			WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})
		mock.ExpectRollback()

		err := repo.Transact(context.Background(), func(tx AppointmentStore) error {
			return tx.Insert(context.Background(), &models.Appointment{UserID: 1, ProviderID: 2, Date: date})
		})
		assert.ErrorIs(t, err, ErrLockConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lock wait timeout on lookup", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAppointmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT \* FROM .appointments. .*FOR UPDATE`).
			WillReturnError(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"})
		mock.ExpectRollback()

		err := repo.Transact(context.Background(), func(tx AppointmentStore) error {
			_, err := tx.FindConflicting(context.Background(), 2, date)
			return err
		})
		assert.ErrorIs(t, err, ErrLockConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("deadlock on commit", func(t *testing.T) {
		db, mock := newMockDB(t)
		repo := NewAppointmentRepository(db)

		mock.ExpectBegin()
		mock.ExpectCommit().WillReturnError(&mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"})

		err := repo.Transact(context.Background(), func(AppointmentStore) error { return nil })
		assert.ErrorIs(t, err, ErrLockConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestFindAppointmentNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `appointments` WHERE `appointments`.`id` = ?")).
		WillReturnRows(sqlmock.NewRows(appointmentColumns))

	_, err := repo.FindByID(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAppointment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentRepository(db)
	now := time.Now().UTC()

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `appointments` SET")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	appointment := &models.Appointment{
		BaseModel:  models.BaseModel{ID: 3, CreatedAt: now},
		UserID:     1,
		ProviderID: 2,
		Date:       now.Add(5 * time.Hour),
		CanceledAt: &now,
		Provider:   &models.User{BaseModel: models.BaseModel{ID: 2}, Name: "Bob"},
	}
	require.NoError(t, repo.Update(context.Background(), appointment))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserByEmailNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `users` WHERE email = ?")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "email"}))

	_, err := repo.FindByEmail(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `users`")).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	err := repo.Create(context.Background(), &models.User{Name: "Ana", Email: "ana@example.com", Password: "x"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFile(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewFileRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `files`")).
		WillReturnResult(sqlmock.NewResult(8, 1))

	file := &models.File{Name: "me.png", Path: "0f0c.png"}
	require.NoError(t, repo.Create(context.Background(), file))
	assert.Equal(t, uint(8), file.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
