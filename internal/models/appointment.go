package models

import (
	"time"
)

// CancellationWindow is how long before its start an appointment stops being cancelable.
const CancellationWindow = 2 * time.Hour

// Appointment is a one-hour slot a user booked with a provider.
// It is Scheduled while CanceledAt is nil and Canceled afterwards.
type Appointment struct {
	BaseModel
	UserID     uint       `gorm:"not null;index" json:"user_id"`
	ProviderID uint       `gorm:"not null;index:idx_appointments_provider_date,priority:1" json:"provider_id"`
	Date       time.Time  `gorm:"not null;index:idx_appointments_provider_date,priority:2" json:"date"`
	CanceledAt *time.Time `json:"canceled_at"`

	// Relations (not always preloaded)
	User     *User `gorm:"foreignKey:UserID" json:"-"`
	Provider *User `gorm:"foreignKey:ProviderID" json:"-"`
}

// AppointmentView is the API representation of an appointment.
type AppointmentView struct {
	ID         uint         `json:"id"`
	UserID     uint         `json:"user_id"`
	ProviderID uint         `json:"provider_id"`
	Date       time.Time    `json:"date"`
	CanceledAt *time.Time   `json:"canceled_at"`
	Past       bool         `json:"past"`
	Cancelable bool         `json:"cancelable"`
	User       *UserSummary `json:"user,omitempty"`
	Provider   *UserSummary `json:"provider,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// IsCanceled reports whether the appointment reached its terminal state.
func (a *Appointment) IsCanceled() bool {
	return a.CanceledAt != nil
}

// Past reports whether the appointment date is before now.
func (a *Appointment) Past(now time.Time) bool {
	return a.Date.Before(now)
}

// Cancelable reports whether now is still ahead of the cancellation window.
func (a *Appointment) Cancelable(now time.Time) bool {
	return !a.IsCanceled() && !a.Date.Add(-CancellationWindow).Before(now)
}

// View builds the API representation, embedding whichever relations are loaded.
func (a *Appointment) View(now time.Time, appURL string) AppointmentView {
	return AppointmentView{
		ID:         a.ID,
		UserID:     a.UserID,
		ProviderID: a.ProviderID,
		Date:       a.Date,
		CanceledAt: a.CanceledAt,
		Past:       a.Past(now),
		Cancelable: a.Cancelable(now),
		User:       a.User.Summary(appURL),
		Provider:   a.Provider.Summary(appURL),
		CreatedAt:  a.CreatedAt,
	}
}
