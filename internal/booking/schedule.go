package booking

import (
	"context"
	"errors"
	"time"

	"appointments-server/internal/apperrors"
	"appointments-server/internal/models"
	"appointments-server/internal/store"
)

// Working hours offered by every provider, as hours of the day.
const (
	FirstSlotHour = 8
	LastSlotHour  = 19
)

// Slot is one bookable hour of a provider's day.
type Slot struct {
	Time      string    `json:"time"`
	Value     time.Time `json:"value"`
	Available bool      `json:"available"`
}

// Availability lists the provider's hour slots for the day containing day.
// A slot is available when it has not started yet and nobody booked it,
// matching what Create accepts.
func (s *Service) Availability(ctx context.Context, providerID uint, day time.Time) ([]Slot, error) {
	provider, err := s.users.FindByID(ctx, providerID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, apperrors.Internal("Failed to fetch provider", err)
	}
	if provider == nil || !provider.Provider {
		return nil, ErrProviderNotFound
	}

	start := s.startOfDay(day)
	booked, err := s.appointments.ListByProvider(ctx, providerID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch appointments", err)
	}

	taken := make(map[int64]bool, len(booked))
	for _, a := range booked {
		taken[a.Date.Unix()] = true
	}

	now := s.now()
	slots := make([]Slot, 0, LastSlotHour-FirstSlotHour+1)
	for hour := FirstSlotHour; hour <= LastSlotHour; hour++ {
		value := time.Date(start.Year(), start.Month(), start.Day(), hour, 0, 0, 0, s.loc)
		slots = append(slots, Slot{
			Time:      value.Format("15:04"),
			Value:     value,
			Available: !value.Before(now) && !taken[value.Unix()],
		})
	}
	return slots, nil
}

// Schedule returns the provider's scheduled appointments for the day containing day.
func (s *Service) Schedule(ctx context.Context, providerID uint, day time.Time) ([]models.Appointment, error) {
	start := s.startOfDay(day)
	appointments, err := s.appointments.ListByProvider(ctx, providerID, start, start.AddDate(0, 0, 1))
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch schedule", err)
	}
	return appointments, nil
}
