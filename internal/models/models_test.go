package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserPassword(t *testing.T) {
	var u User
	require.NoError(t, u.SetPassword("s3cret-pass"))

	assert.NotEqual(t, "s3cret-pass", u.Password)
	assert.True(t, u.CheckPassword("s3cret-pass"))
	assert.False(t, u.CheckPassword("wrong"))
}

func TestUserSanitizeIncludesAvatarURL(t *testing.T) {
	u := User{
		BaseModel: BaseModel{ID: 4},
		Name:      "Ana",
		Email:     "ana@example.com",
		Provider:  true,
		Avatar:    &File{BaseModel: BaseModel{ID: 9}, Name: "me.png", Path: "abc.png"},
	}

	s := u.Sanitize("http://localhost:3333")
	require.NotNil(t, s.Avatar)
	assert.Equal(t, "http://localhost:3333/files/abc.png", s.Avatar.URL)
	assert.True(t, s.Provider)

	var nobody *User
	assert.Nil(t, nobody.Summary("http://x"))
}

func TestAppointmentCancelable(t *testing.T) {
	date := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	a := Appointment{Date: date}

	assert.True(t, a.Cancelable(date.Add(-3*time.Hour)))
	assert.True(t, a.Cancelable(date.Add(-2*time.Hour)))
	assert.False(t, a.Cancelable(date.Add(-time.Hour)))

	canceled := date.Add(-5 * time.Hour)
	a.CanceledAt = &canceled
	assert.False(t, a.Cancelable(date.Add(-3*time.Hour)))
}

func TestAppointmentView(t *testing.T) {
	date := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	a := Appointment{
		BaseModel:  BaseModel{ID: 1},
		UserID:     2,
		ProviderID: 3,
		Date:       date,
		Provider:   &User{BaseModel: BaseModel{ID: 3}, Name: "Bob"},
	}

	v := a.View(date.Add(time.Hour), "http://x")
	assert.True(t, v.Past)
	assert.False(t, v.Cancelable)
	require.NotNil(t, v.Provider)
	assert.Equal(t, "Bob", v.Provider.Name)
	assert.Nil(t, v.User)
}
