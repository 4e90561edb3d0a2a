package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"tooldeals/internal/domain"
	"tooldeals/pkg/errcodes"
)

const uniqueViolation = "23505"

type SubscriberRepository struct {
	db *sqlx.DB
}

func NewSubscriberRepository(db *sqlx.DB) *SubscriberRepository {
	return &SubscriberRepository{db: db}
}

func (r *SubscriberRepository) Add(ctx context.Context, email string) error {
	query := `INSERT INTO subscribers (email, created_at) VALUES ($1, $2)`

	if _, err := r.db.ExecContext(ctx, query, email, time.Now()); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.NewError(errcodes.SubscriberAlreadyExists, "already subscribed")
		}
		return domain.WrapError(err, errcodes.PersistenceFailure, "failed to add subscriber")
	}
	return nil
}

func (r *SubscriberRepository) Remove(ctx context.Context, email string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM subscribers WHERE email = $1`, email)
	if err != nil {
		return domain.WrapError(err, errcodes.PersistenceFailure, "failed to remove subscriber")
	}

	rows, _ := res.RowsAffected()
	if rows == 0 {
		return domain.NewError(errcodes.SubscriberNotFound, "subscriber not found")
	}
	return nil
}

func (r *SubscriberRepository) ListEmails(ctx context.Context) ([]string, error) {
	var schemas []subscriberSchema
	if err := r.db.SelectContext(ctx, &schemas, `SELECT * FROM subscribers ORDER BY created_at`); err != nil {
		return nil, domain.WrapError(err, errcodes.PersistenceFailure, "failed to list subscribers")
	}

	emails := make([]string, 0, len(schemas))
	for _, schema := range schemas {
		emails = append(emails, schema.toDomain().Email)
	}
	return emails, nil
}
