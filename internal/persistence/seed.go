package persistence

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/campaign-calendar/internal/domain"
	apperrors "github.com/spec-kit/campaign-calendar/pkg/util"
)

// SeedResult counts what Seed inserted.
type SeedResult struct {
	Users       int
	Departments int
	Events      int
	AccessMap   bool
}

var seedUsers = []domain.User{
	{ID: "u1", Name: "Ahmet Yılmaz", Email: "ahmet@sirket.com", Avatar: "👨‍💻"},
	{ID: "u2", Name: "Ayşe Demir", Email: "ayse@sirket.com", Avatar: "👩‍💻"},
	{ID: "u3", Name: "Mehmet Öz", Email: "mehmet@sirket.com", Avatar: "👨‍💼"},
}

var seedDepartments = []domain.Department{
	{ID: "d1", Name: "Pazarlama"},
	{ID: "d2", Name: "İnsan Kaynakları"},
	{ID: "d3", Name: "Bilgi Teknolojileri"},
	{ID: "d4", Name: "Satış"},
	{ID: "d5", Name: "Finans"},
}

type seedEvent struct {
	title        string
	urgency      domain.Urgency
	assigneeID   string
	departmentID string
	day          int
}

var seedEvents = []seedEvent{
	{"Kamera Arkası Çekimleri", domain.UrgencyMedium, "u1", "d1", 6},
	{"Müşteri Anketi Analizi", domain.UrgencyHigh, "u2", "d1", 8},
	{"Yaz İndirimi Lansmanı", domain.UrgencyVeryHigh, "u3", "d4", 14},
	{"Blog Yazısı: Destinasyonlar", domain.UrgencyLow, "u1", "d1", 17},
	{"Kullanıcı Yorumları Derlemesi", domain.UrgencyMedium, "u2", "d4", 19},
	{"Sürdürülebilirlik Raporu", domain.UrgencyLow, "u3", "d2", 22},
}

// DefaultAccessMap maps 192.168.1.20..24 to the seeded departments d1..d5.
func DefaultAccessMap(designerAddress string) domain.AccessMap {
	m := domain.AccessMap{DesignerAddress: designerAddress, DepartmentAddresses: map[string]string{}}
	for i, dept := range seedDepartments {
		m.DepartmentAddresses[fmt.Sprintf("192.168.1.%d", 20+i)] = dept.ID
	}
	return m
}

// Seed fills empty stores with sample users, departments, campaigns in the
// month of now, and the default access map. Non-empty stores are left alone.
func Seed(ctx context.Context, stores Stores, designerAddress string, now time.Time, logger *zap.Logger) (SeedResult, error) {
	var result SeedResult

	users, err := stores.Users.List(ctx)
	if err != nil {
		return result, fmt.Errorf("list users: %w", err)
	}
	if len(users) == 0 {
		for _, u := range seedUsers {
			user := u
			if err := stores.Users.Create(ctx, &user); err != nil {
				return result, fmt.Errorf("seed user %s: %w", u.ID, err)
			}
			result.Users++
		}
	}

	depts, err := stores.Departments.List(ctx)
	if err != nil {
		return result, fmt.Errorf("list departments: %w", err)
	}
	if len(depts) == 0 {
		for _, d := range seedDepartments {
			dept := d
			if err := stores.Departments.Create(ctx, &dept); err != nil {
				return result, fmt.Errorf("seed department %s: %w", d.ID, err)
			}
			result.Departments++
		}
	}

	events, err := stores.Events.List(ctx)
	if err != nil {
		return result, fmt.Errorf("list events: %w", err)
	}
	if len(events) == 0 {
		for _, se := range seedEvents {
			assigneeID, departmentID := se.assigneeID, se.departmentID
			event := &domain.Event{
				Title:        se.title,
				Date:         time.Date(now.Year(), now.Month(), se.day, 0, 0, 0, 0, now.Location()),
				Urgency:      se.urgency,
				AssigneeID:   &assigneeID,
				DepartmentID: &departmentID,
			}
			if err := stores.Events.Create(ctx, event); err != nil {
				return result, fmt.Errorf("seed event %q: %w", se.title, err)
			}
			result.Events++
		}
	}

	seeded, err := EnsureAccessMap(ctx, stores, designerAddress)
	if err != nil {
		return result, err
	}
	result.AccessMap = seeded

	logger.Info("seed completed",
		zap.Int("users", result.Users),
		zap.Int("departments", result.Departments),
		zap.Int("events", result.Events),
		zap.Bool("access_map", result.AccessMap))
	return result, nil
}

// EnsureAccessMap stores the default access map when none exists.
func EnsureAccessMap(ctx context.Context, stores Stores, designerAddress string) (bool, error) {
	_, err := stores.AccessMaps.Get(ctx)
	if err == nil {
		return false, nil
	}
	if !apperrors.IsNotFound(err) {
		return false, fmt.Errorf("load access map: %w", err)
	}
	if err := stores.AccessMaps.Save(ctx, DefaultAccessMap(designerAddress)); err != nil {
		return false, fmt.Errorf("save access map: %w", err)
	}
	return true, nil
}
