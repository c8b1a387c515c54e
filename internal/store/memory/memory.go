// Package memory provides map-backed implementations of the store
// interfaces. They are safe for concurrent use.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"appointments-server/internal/models"
	"appointments-server/internal/notify"
	"appointments-server/internal/store"
)

type Users struct {
	mu     sync.RWMutex
	nextID uint
	users  map[uint]models.User
	files  *Files
}

// NewUsers returns an empty user store. files may be nil; when set,
// avatars are resolved from it the way a preload would.
func NewUsers(files *Files) *Users {
	return &Users{users: make(map[uint]models.User), files: files}
}

func (s *Users) withAvatar(ctx context.Context, u models.User) *models.User {
	u.Avatar = nil
	if u.AvatarID != nil && s.files != nil {
		if f, err := s.files.FindByID(ctx, *u.AvatarID); err == nil {
			u.Avatar = f
		}
	}
	return &u
}

func (s *Users) FindByID(ctx context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	u, ok := s.users[id]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	return s.withAvatar(ctx, u), nil
}

func (s *Users) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return s.withAvatar(ctx, u), nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Users) ListProviders(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	var out []models.User
	for _, u := range s.users {
		if u.Provider {
			out = append(out, *s.withAvatar(ctx, u))
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Users) Create(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	if u.ID == 0 {
		s.nextID++
		u.ID = s.nextID
	} else if u.ID > s.nextID {
		s.nextID = u.ID
	}
	now := time.Now().UTC()
	u.CreatedAt, u.UpdatedAt = now, now
	s.users[u.ID] = *u
	return nil
}

func (s *Users) Update(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return store.ErrNotFound
	}
	for id, existing := range s.users {
		if id != u.ID && existing.Email == u.Email {
			return store.ErrDuplicate
		}
	}
	u.UpdatedAt = time.Now().UTC()
	s.users[u.ID] = *u
	return nil
}

type Files struct {
	mu     sync.RWMutex
	nextID uint
	files  map[uint]models.File
}

func NewFiles() *Files {
	return &Files{files: make(map[uint]models.File)}
}

func (s *Files) FindByID(_ context.Context, id uint) (*models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.files[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &f, nil
}

func (s *Files) FindByPath(_ context.Context, path string) (*models.File, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, f := range s.files {
		if f.Path == path {
			return &f, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Files) Create(_ context.Context, f *models.File) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	f.ID = s.nextID
	f.CreatedAt = time.Now().UTC()
	f.UpdatedAt = f.CreatedAt
	s.files[f.ID] = *f
	return nil
}

type Appointments struct {
	// txMu serializes Transact callers, mu guards the map.
	txMu         sync.Mutex
	mu           sync.RWMutex
	nextID       uint
	appointments map[uint]models.Appointment
	users        *Users
}

// NewAppointments returns an empty appointment store. users resolves the
// Provider and User relations.
func NewAppointments(users *Users) *Appointments {
	return &Appointments{appointments: make(map[uint]models.Appointment), users: users}
}

func (s *Appointments) load(ctx context.Context, a models.Appointment) models.Appointment {
	if s.users != nil {
		a.Provider, _ = s.users.FindByID(ctx, a.ProviderID)
		a.User, _ = s.users.FindByID(ctx, a.UserID)
	}
	return a
}

func (s *Appointments) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	s.mu.RLock()
	a, ok := s.appointments[id]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	loaded := s.load(ctx, a)
	return &loaded, nil
}

func (s *Appointments) FindConflicting(_ context.Context, providerID uint, date time.Time) (*models.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.appointments {
		if a.ProviderID == providerID && a.Date.Equal(date) && a.CanceledAt == nil {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (s *Appointments) Insert(_ context.Context, a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	a.ID = s.nextID
	now := time.Now().UTC()
	a.CreatedAt, a.UpdatedAt = now, now
	stored := *a
	stored.User, stored.Provider = nil, nil
	s.appointments[a.ID] = stored
	return nil
}

func (s *Appointments) Update(_ context.Context, a *models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.appointments[a.ID]; !ok {
		return store.ErrNotFound
	}
	a.UpdatedAt = time.Now().UTC()
	stored := *a
	stored.User, stored.Provider = nil, nil
	s.appointments[a.ID] = stored
	return nil
}

func (s *Appointments) sorted(ctx context.Context, keep func(models.Appointment) bool) []models.Appointment {
	s.mu.RLock()
	var out []models.Appointment
	for _, a := range s.appointments {
		if keep(a) {
			out = append(out, a)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date.Equal(out[j].Date) {
			return out[i].ID < out[j].ID
		}
		return out[i].Date.Before(out[j].Date)
	})
	for i := range out {
		out[i] = s.load(ctx, out[i])
	}
	return out
}

func (s *Appointments) ListByUser(ctx context.Context, userID uint, page, pageSize int) ([]models.Appointment, error) {
	if page < 1 {
		page = 1
	}
	all := s.sorted(ctx, func(a models.Appointment) bool {
		return a.UserID == userID && a.CanceledAt == nil
	})
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (s *Appointments) ListByProvider(ctx context.Context, providerID uint, from, to time.Time) ([]models.Appointment, error) {
	return s.sorted(ctx, func(a models.Appointment) bool {
		return a.ProviderID == providerID && a.CanceledAt == nil &&
			!a.Date.Before(from) && a.Date.Before(to)
	}), nil
}

// Transact holds an exclusive lock for the duration of fn. Writes made by
// fn are not rolled back when it fails.
func (s *Appointments) Transact(_ context.Context, fn func(store.AppointmentStore) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

// Notifications is an in-memory notify.Store.
type Notifications struct {
	mu    sync.RWMutex
	items map[primitive.ObjectID]models.Notification
	// Err, when set, is returned by Append.
	Err error
}

func NewNotifications() *Notifications {
	return &Notifications{items: make(map[primitive.ObjectID]models.Notification)}
}

func (s *Notifications) Append(_ context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	n.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = now
	}
	n.UpdatedAt = now
	s.items[n.ID] = *n
	return nil
}

func (s *Notifications) ListForUser(_ context.Context, userID uint, limit int) ([]models.Notification, error) {
	s.mu.RLock()
	var out []models.Notification
	for _, n := range s.items {
		if n.User == userID {
			out = append(out, n)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Notifications) FindByID(_ context.Context, id string) (*models.Notification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, notify.ErrNotFound
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.items[oid]
	if !ok {
		return nil, notify.ErrNotFound
	}
	return &n, nil
}

func (s *Notifications) MarkRead(_ context.Context, id string) (*models.Notification, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, notify.ErrNotFound
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.items[oid]
	if !ok {
		return nil, notify.ErrNotFound
	}
	n.Read = true
	n.UpdatedAt = time.Now().UTC()
	s.items[oid] = n
	return &n, nil
}

var (
	_ store.UserStore        = (*Users)(nil)
	_ store.FileStore        = (*Files)(nil)
	_ store.AppointmentStore = (*Appointments)(nil)
	_ notify.Store           = (*Notifications)(nil)
)
