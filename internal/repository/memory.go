package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/campaign-calendar/internal/domain"
)

// In-memory stores back the service when no Postgres DSN or Redis is configured.
// Missing rows are reported with pgx.ErrNoRows so callers handle both backends alike.

type memoryEventRepository struct {
	mu     sync.RWMutex
	events []domain.Event
}

// NewMemoryEventRepository returns an Event Store that keeps insertion order.
func NewMemoryEventRepository() EventRepository {
	return &memoryEventRepository{}
}

func (r *memoryEventRepository) Create(_ context.Context, event *domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *memoryEventRepository) GetByID(_ context.Context, id string) (*domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.events {
		if r.events[i].ID == id {
			event := r.events[i]
			return &event, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryEventRepository) List(_ context.Context) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Event(nil), r.events...), nil
}

func (r *memoryEventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.events {
		if r.events[i].ID == id {
			r.events = append(r.events[:i], r.events[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *memoryEventRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.events))
	r.events = nil
	return n, nil
}

type memoryUserRepository struct {
	mu    sync.RWMutex
	users []domain.User
}

// NewMemoryUserRepository returns an in-memory user directory.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{}
}

func (r *memoryUserRepository) Create(_ context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, *user)
	return nil
}

func (r *memoryUserRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.users {
		if r.users[i].ID == id {
			user := r.users[i]
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepository) List(_ context.Context) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.User(nil), r.users...), nil
}

func (r *memoryUserRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.users {
		if r.users[i].ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type memoryDepartmentRepository struct {
	mu          sync.RWMutex
	departments []domain.Department
}

// NewMemoryDepartmentRepository returns an in-memory department directory.
func NewMemoryDepartmentRepository() DepartmentRepository {
	return &memoryDepartmentRepository{}
}

func (r *memoryDepartmentRepository) Create(_ context.Context, dept *domain.Department) error {
	if dept.ID == "" {
		dept.ID = uuid.NewString()
	}
	if dept.CreatedAt.IsZero() {
		dept.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.departments = append(r.departments, *dept)
	return nil
}

func (r *memoryDepartmentRepository) GetByID(_ context.Context, id string) (*domain.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.departments {
		if r.departments[i].ID == id {
			dept := r.departments[i]
			return &dept, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryDepartmentRepository) List(_ context.Context) ([]domain.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Department(nil), r.departments...), nil
}

func (r *memoryDepartmentRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.departments {
		if r.departments[i].ID == id {
			r.departments = append(r.departments[:i], r.departments[i+1:]...)
			return nil
		}
	}
	return pgx.ErrNoRows
}

type memoryAccessMapRepository struct {
	mu        sync.RWMutex
	accessMap *domain.AccessMap
}

// NewMemoryAccessMapRepository returns an unconfigured in-memory access map.
func NewMemoryAccessMapRepository() AccessMapRepository {
	return &memoryAccessMapRepository{}
}

func (r *memoryAccessMapRepository) Get(_ context.Context) (domain.AccessMap, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.accessMap == nil {
		return domain.AccessMap{}, pgx.ErrNoRows
	}
	return r.accessMap.Clone(), nil
}

func (r *memoryAccessMapRepository) Save(_ context.Context, accessMap domain.AccessMap) error {
	clone := accessMap.Clone()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.accessMap = &clone
	return nil
}

func (r *memoryAccessMapRepository) SetDepartmentAddress(_ context.Context, address, departmentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.accessMap == nil {
		r.accessMap = &domain.AccessMap{DepartmentAddresses: map[string]string{}}
	}
	r.accessMap.DepartmentAddresses[address] = departmentID
	return nil
}

func (r *memoryAccessMapRepository) RemoveDepartmentAddress(_ context.Context, address string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.accessMap == nil {
		return pgx.ErrNoRows
	}
	if _, ok := r.accessMap.DepartmentAddresses[address]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.accessMap.DepartmentAddresses, address)
	return nil
}

type memoryNotificationStore struct {
	mu            sync.Mutex
	notifications []domain.Notification
}

// NewMemoryNotificationStore returns an unbounded in-memory notification store.
func NewMemoryNotificationStore() NotificationStore {
	return &memoryNotificationStore{}
}

func (s *memoryNotificationStore) Append(_ context.Context, notification *domain.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = append(s.notifications, *notification)
	return nil
}

func (s *memoryNotificationStore) ListAll(_ context.Context) ([]domain.Notification, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newestFirst(s.notifications), nil
}

func (s *memoryNotificationStore) MarkAllRead(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	return nil
}

func (s *memoryNotificationStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifications = nil
	return nil
}

type memoryAuditLogStore struct {
	mu      sync.Mutex
	entries []domain.AuditLogEntry
}

// NewMemoryAuditLogStore returns an unbounded in-memory activity log.
func NewMemoryAuditLogStore() AuditLogStore {
	return &memoryAuditLogStore{}
}

func (s *memoryAuditLogStore) Append(_ context.Context, entry *domain.AuditLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *memoryAuditLogStore) ListAll(_ context.Context) ([]domain.AuditLogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newestFirst(s.entries), nil
}

func (s *memoryAuditLogStore) ClearAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return nil
}

func newestFirst[T any](items []T) []T {
	out := make([]T, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out
}
