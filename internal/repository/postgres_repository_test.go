package repository

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/campaign-calendar/internal/domain"
)

// calendarDayArg matches a DATE parameter holding the given day at UTC midnight.
type calendarDayArg string

func (a calendarDayArg) Match(v any) bool {
	d, ok := v.(pgtype.Date)
	return ok && d.Valid && d.Time.Location() == time.UTC &&
		d.Time.Equal(d.Time.Truncate(24*time.Hour)) && d.Time.Format("2006-01-02") == string(a)
}

func withLocalZone(t *testing.T, loc *time.Location) {
	t.Helper()
	prev := time.Local
	time.Local = loc
	t.Cleanup(func() { time.Local = prev })
}

func TestEventDate_RoundTripsThroughDateCodec(t *testing.T) {
	withLocalZone(t, time.FixedZone("EDT", -4*60*60))
	m := pgtype.NewMap()
	want := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	for _, format := range []int16{pgtype.BinaryFormatCode, pgtype.TextFormatCode} {
		buf, err := m.Encode(pgtype.DateOID, format, eventDateParam(want), nil)
		require.NoError(t, err)

		var scanned pgtype.Date
		require.NoError(t, m.Scan(pgtype.DateOID, format, buf, &scanned))

		got := eventDateValue(scanned)
		assert.Equal(t, want, got)
		assert.Equal(t, "2025-06-14", got.Format("2006-01-02"))
	}
}

func TestEventDateParam_KeepsCallerDay(t *testing.T) {
	istanbul := time.FixedZone("TRT", 3*60*60)
	param := eventDateParam(time.Date(2025, 6, 14, 0, 0, 0, 0, istanbul))

	assert.True(t, calendarDayArg("2025-06-14").Match(param))
}

func TestEventRepository_CreateBindsCalendarDay(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	createdAt := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery("INSERT INTO events").
		WithArgs("e1", "Yaz İndirimi", calendarDayArg("2025-06-14"), domain.UrgencyHigh,
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	event := &domain.Event{
		ID:      "e1",
		Title:   "Yaz İndirimi",
		Date:    time.Date(2025, 6, 14, 0, 0, 0, 0, time.FixedZone("TRT", 3*60*60)),
		Urgency: domain.UrgencyHigh,
	}
	require.NoError(t, NewEventRepository(mock).Create(context.Background(), event))

	assert.Equal(t, time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC), event.Date)
	assert.Equal(t, createdAt, event.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessMapRepository_SetDepartmentAddressCreatesSettingsRow(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO access_settings").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectExec("INSERT INTO access_department_addresses").
		WithArgs("10.0.0.7", "d2").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	repo := NewAccessMapRepository(mock)
	require.NoError(t, repo.SetDepartmentAddress(context.Background(), "10.0.0.7", "d2"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccessMapRepository_SetDepartmentAddressRollsBackOnFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO access_settings").
		WillReturnResult(pgxmock.NewResult("INSERT", 0))
	mock.ExpectExec("INSERT INTO access_department_addresses").
		WithArgs("10.0.0.7", "d2").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	repo := NewAccessMapRepository(mock)
	assert.ErrorIs(t, repo.SetDepartmentAddress(context.Background(), "10.0.0.7", "d2"), assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryAccessMapRepository_SetDepartmentAddressOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryAccessMapRepository()
	require.NoError(t, repo.SetDepartmentAddress(ctx, "10.0.0.7", "d2"))

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Empty(t, got.DesignerAddress)
	assert.Equal(t, map[string]string{"10.0.0.7": "d2"}, got.DepartmentAddresses)
}
