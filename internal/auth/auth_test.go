package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/campaign-calendar/internal/domain"
	"github.com/spec-kit/campaign-calendar/internal/repository"
)

func scenarioMap() domain.AccessMap {
	return domain.AccessMap{
		DesignerAddress:     "10.0.0.1",
		DepartmentAddresses: map[string]string{"10.0.0.2": "dept-A", "10.0.0.3": "dept-B"},
	}
}

func TestResolveRole(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    domain.AccessScope
	}{
		{"designer", "10.0.0.1", domain.AccessScope{Role: domain.RoleDesigner}},
		{"department", "10.0.0.2", domain.AccessScope{Role: domain.RoleDepartmentUser, DepartmentID: "dept-A"}},
		{"other department", "10.0.0.3", domain.AccessScope{Role: domain.RoleDepartmentUser, DepartmentID: "dept-B"}},
		{"unmapped", "10.0.0.9", domain.AccessScope{Role: domain.RoleGuest}},
		{"empty", "", domain.AccessScope{Role: domain.RoleGuest}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveRole(tt.address, scenarioMap()))
		})
	}
}

func TestResolveRole_DesignerShadowsDepartmentAddress(t *testing.T) {
	m := scenarioMap()
	m.DepartmentAddresses["10.0.0.1"] = "dept-A"

	assert.Equal(t, domain.RoleDesigner, ResolveRole("10.0.0.1", m).Role)
}

func TestResolveRole_EmptyDesignerNeverMatches(t *testing.T) {
	m := domain.AccessMap{DepartmentAddresses: map[string]string{"": "dept-A"}}

	scope := ResolveRole("", m)
	assert.Equal(t, domain.RoleDepartmentUser, scope.Role)
	assert.Equal(t, domain.RoleGuest, ResolveRole("", domain.AccessMap{}).Role)
}

func TestResolveRole_EmptyMapIsGuest(t *testing.T) {
	for _, addr := range []string{"127.0.0.1", "::1", "anything"} {
		assert.Equal(t, domain.RoleGuest, ResolveRole(addr, domain.AccessMap{}).Role)
	}
}

type scopeResponse struct {
	Address      string `json:"address"`
	Role         string `json:"role"`
	DepartmentID string `json:"department_id"`
}

func newTestApp(t *testing.T, accessMaps repository.AccessMapRepository) *fiber.App {
	t.Helper()
	mw := NewAccessMiddleware(accessMaps, "X-Caller-Address", zap.NewNop())
	app := fiber.New()
	app.Use(mw.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return c.SendStatus(http.StatusInternalServerError)
		}
		return c.JSON(scopeResponse{
			Address:      principal.Address,
			Role:         string(principal.Scope.Role),
			DepartmentID: principal.Scope.DepartmentID,
		})
	})
	app.Post("/designer-only", RequireDesigner(), func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusNoContent)
	})
	return app
}

func whoami(t *testing.T, app *fiber.App, address string) scopeResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if address != "" {
		req.Header.Set("X-Caller-Address", address)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out scopeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestAccessMiddleware_ResolvesFromHeader(t *testing.T) {
	accessMaps := repository.NewMemoryAccessMapRepository()
	require.NoError(t, accessMaps.Save(context.Background(), scenarioMap()))
	app := newTestApp(t, accessMaps)

	got := whoami(t, app, "10.0.0.2")
	assert.Equal(t, "10.0.0.2", got.Address)
	assert.Equal(t, "department_user", got.Role)
	assert.Equal(t, "dept-A", got.DepartmentID)

	assert.Equal(t, "designer", whoami(t, app, "10.0.0.1").Role)
	assert.Equal(t, "guest", whoami(t, app, "10.0.0.9").Role)
}

func TestAccessMiddleware_FallsBackToConnectionIP(t *testing.T) {
	accessMaps := repository.NewMemoryAccessMapRepository()
	require.NoError(t, accessMaps.Save(context.Background(), scenarioMap()))
	app := newTestApp(t, accessMaps)

	got := whoami(t, app, "")
	assert.NotEmpty(t, got.Address)
	assert.Equal(t, "guest", got.Role)
}

func TestAccessMiddleware_RereadsAccessMap(t *testing.T) {
	ctx := context.Background()
	accessMaps := repository.NewMemoryAccessMapRepository()
	require.NoError(t, accessMaps.Save(ctx, scenarioMap()))
	app := newTestApp(t, accessMaps)

	assert.Equal(t, "guest", whoami(t, app, "10.0.0.7").Role)

	require.NoError(t, accessMaps.SetDepartmentAddress(ctx, "10.0.0.7", "dept-C"))
	got := whoami(t, app, "10.0.0.7")
	assert.Equal(t, "department_user", got.Role)
	assert.Equal(t, "dept-C", got.DepartmentID)
}

func TestAccessMiddleware_UnconfiguredMapResolvesGuest(t *testing.T) {
	app := newTestApp(t, repository.NewMemoryAccessMapRepository())
	assert.Equal(t, "guest", whoami(t, app, "10.0.0.1").Role)
}

func TestRequireDesigner(t *testing.T) {
	accessMaps := repository.NewMemoryAccessMapRepository()
	require.NoError(t, accessMaps.Save(context.Background(), scenarioMap()))
	app := newTestApp(t, accessMaps)

	cases := map[string]int{
		"10.0.0.1": http.StatusNoContent,
		"10.0.0.2": http.StatusForbidden,
		"10.0.0.9": http.StatusForbidden,
	}
	for address, want := range cases {
		req := httptest.NewRequest(http.MethodPost, "/designer-only", nil)
		req.Header.Set("X-Caller-Address", address)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, want, resp.StatusCode, address)
	}
}
