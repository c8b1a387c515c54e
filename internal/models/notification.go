package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notification is a message for a provider, stored in MongoDB.
type Notification struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Content   string             `bson:"content" json:"content"`
	User      uint               `bson:"user" json:"user"`
	Read      bool               `bson:"read" json:"read"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at" json:"updated_at"`
}

// AppointmentEvent is published whenever an appointment changes state.
type AppointmentEvent struct {
	ID            string     `json:"id"`
	Type          string     `json:"type"`
	AppointmentID uint       `json:"appointment_id"`
	UserID        uint       `json:"user_id"`
	ProviderID    uint       `json:"provider_id"`
	Date          time.Time  `json:"date"`
	CanceledAt    *time.Time `json:"canceled_at,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

const (
	EventAppointmentCreated  = "appointment.created"
	EventAppointmentCanceled = "appointment.canceled"
)
