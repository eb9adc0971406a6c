package persistence

import (
	"github.com/spec-kit/campaign-calendar/internal/repository"
)

// Stores bundles every repository the service needs.
type Stores struct {
	Events        repository.EventRepository
	Users         repository.UserRepository
	Departments   repository.DepartmentRepository
	AccessMaps    repository.AccessMapRepository
	Notifications repository.NotificationStore
	AuditLog      repository.AuditLogStore
}

// OpenStores picks Postgres for events and the directory when a pool exists,
// Redis for the activity stores when enabled, and in-memory stores otherwise.
func OpenStores(pg *Postgres, rdb *Redis) Stores {
	var stores Stores

	if pool := pg.PoolHandle(); pool != nil {
		stores.Events = repository.NewEventRepository(pool)
		stores.Users = repository.NewUserRepository(pool)
		stores.Departments = repository.NewDepartmentRepository(pool)
		stores.AccessMaps = repository.NewAccessMapRepository(pool)
	} else {
		stores.Events = repository.NewMemoryEventRepository()
		stores.Users = repository.NewMemoryUserRepository()
		stores.Departments = repository.NewMemoryDepartmentRepository()
		stores.AccessMaps = repository.NewMemoryAccessMapRepository()
	}

	if rdb.Enabled() {
		stores.Notifications = repository.NewRedisNotificationStore(rdb.Client, rdb.KeyPrefix)
		stores.AuditLog = repository.NewRedisAuditLogStore(rdb.Client, rdb.KeyPrefix)
	} else {
		stores.Notifications = repository.NewMemoryNotificationStore()
		stores.AuditLog = repository.NewMemoryAuditLogStore()
	}
	return stores
}
