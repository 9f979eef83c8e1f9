package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vikask011/react-native/internal/domain"
)

// PostgresEventRepository implements EventRepository using PostgreSQL
type PostgresEventRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(pool *pgxpool.Pool) *PostgresEventRepository {
	return &PostgresEventRepository{pool: pool}
}

// eventColumns uses COALESCE for nullable text columns to avoid scan errors
const eventColumns = `id, title,
	COALESCE(description, '') AS description,
	location, date, price::float8 AS price, category,
	COALESCE(image_url, '') AS image_url,
	available_seats, is_active, created_at`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	event := &domain.Event{}
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.Location,
		&event.Date,
		&event.Price,
		&event.Category,
		&event.ImageURL,
		&event.AvailableSeats,
		&event.IsActive,
		&event.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// List returns active events matching filter ordered by date then id
func (r *PostgresEventRepository) List(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error) {
	query, args := buildListQuery(filter.Normalize())

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate events: %w", err)
	}

	return events, nil
}

func buildListQuery(filter domain.EventFilter) (string, []interface{}) {
	conditions := []string{"is_active = TRUE"}
	args := []interface{}{}
	argIndex := 1

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(title ILIKE $%d OR location ILIKE $%d OR COALESCE(description, '') ILIKE $%d)",
			argIndex, argIndex, argIndex))
		args = append(args, "%"+escapeLike(filter.Search)+"%")
		argIndex++
	}

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(category) = LOWER($%d)", argIndex))
		args = append(args, filter.Category)
	}

	query := fmt.Sprintf(`SELECT %s FROM events WHERE %s ORDER BY date ASC, id ASC`,
		eventColumns, strings.Join(conditions, " AND "))
	return query, args
}

// escapeLike makes user input match literally inside an ILIKE pattern
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// GetByID retrieves an event by ID regardless of its active flag
func (r *PostgresEventRepository) GetByID(ctx context.Context, id int64) (*domain.Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM events WHERE id = $1`, eventColumns)

	event, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return event, nil
}

// DecrementSeat takes one seat outside of a transaction
func (r *PostgresEventRepository) DecrementSeat(ctx context.Context, id int64) error {
	return decrementSeat(ctx, r.pool, id)
}

// querier is satisfied by both the pool and a transaction
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

func decrementSeat(ctx context.Context, q querier, id int64) error {
	query := `
		UPDATE events
		SET available_seats = available_seats - 1
		WHERE id = $1 AND available_seats > 0
	`

	result, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to decrement seats: %w", err)
	}

	if result.RowsAffected() == 0 {
		var exists bool
		if err := q.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)", id).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check event existence: %w", err)
		}
		if !exists {
			return domain.ErrEventNotFound
		}
		return domain.ErrSoldOut
	}

	return nil
}

// Count returns the number of events in the catalog
func (r *PostgresEventRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM events").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// CreateBatch inserts events whose title is not present yet in one transaction
func (r *PostgresEventRepository) CreateBatch(ctx context.Context, events []*domain.Event) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO events (title, description, location, date, price, category, image_url, available_seats, is_active)
		SELECT $1, $2, $3, $4, $5, $6, $7, $8, $9
		WHERE NOT EXISTS (SELECT 1 FROM events WHERE title = $1)
		RETURNING id, created_at
	`

	created := 0
	for _, e := range events {
		err := tx.QueryRow(ctx, query,
			e.Title,
			nullIfEmpty(e.Description),
			e.Location,
			e.Date,
			e.Price,
			e.Category,
			nullIfEmpty(e.ImageURL),
			e.AvailableSeats,
			e.IsActive,
		).Scan(&e.ID, &e.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("failed to insert event %q: %w", e.Title, err)
		}
		created++
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}
