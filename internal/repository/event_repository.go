package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/spec-kit/campaign-calendar/internal/domain"
)

// EventRepository is the Event Store. List preserves the store order.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByID(ctx context.Context, id string) (*domain.Event, error)
	List(ctx context.Context) ([]domain.Event, error)
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context) (int64, error)
}

type eventRepository struct {
	pool DB
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool DB) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	event.Date = domain.CalendarDate(event.Date)
	const query = `
        INSERT INTO events (id, title, event_date, urgency, description, assignee_id, department_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		event.ID,
		event.Title,
		eventDateParam(event.Date),
		event.Urgency,
		event.Description,
		event.AssigneeID,
		event.DepartmentID,
	).Scan(&event.CreatedAt)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	const query = `
        SELECT id, title, event_date, urgency, description, assignee_id, department_id, created_at
        FROM events WHERE id=$1`
	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) List(ctx context.Context) ([]domain.Event, error) {
	const query = `
        SELECT id, title, event_date, urgency, description, assignee_id, department_id, created_at
        FROM events ORDER BY event_date ASC, created_at ASC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM events`)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func scanEvents(rows pgx.Rows) ([]domain.Event, error) {
	var result []domain.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

func scanEvent(row pgx.Row) (domain.Event, error) {
	var (
		event domain.Event
		date  pgtype.Date
	)
	if err := row.Scan(
		&event.ID,
		&event.Title,
		&date,
		&event.Urgency,
		&event.Description,
		&event.AssigneeID,
		&event.DepartmentID,
		&event.CreatedAt,
	); err != nil {
		return domain.Event{}, err
	}
	event.Date = eventDateValue(date)
	return event, nil
}

// eventDateParam binds a calendar day to the DATE column.
func eventDateParam(t time.Time) pgtype.Date {
	return pgtype.Date{Time: domain.CalendarDate(t), Valid: true}
}

// eventDateValue reads the DATE column back as UTC midnight of the same day.
func eventDateValue(d pgtype.Date) time.Time {
	return domain.CalendarDate(d.Time)
}
