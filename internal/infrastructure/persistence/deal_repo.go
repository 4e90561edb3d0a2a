package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"tooldeals/internal/domain"
	"tooldeals/internal/domain/entity"
	"tooldeals/internal/domain/value"
	"tooldeals/pkg/errcodes"
)

type DealRepository struct {
	db *sqlx.DB
}

func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

func (r *DealRepository) withTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to begin transaction")
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to commit")
	}
	return nil
}

func (r *DealRepository) GetByID(ctx context.Context, id string) (*entity.Deal, error) {
	query := `SELECT * FROM deals WHERE id = $1`
	var schema dealSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.DealNotFound, "deal not found")
		}
		return nil, domain.WrapError(err, errcodes.PersistenceFailure, "failed to get deal")
	}

	deal := schema.toDomain()
	return &deal, nil
}

// UpsertBatch writes one source pass atomically: either the whole pass lands
// or none of it does.
func (r *DealRepository) UpsertBatch(ctx context.Context, deals []entity.Deal) error {
	if len(deals) == 0 {
		return nil
	}

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO deals (
				id, title, url, image, price, original_price,
				store, category, deal_type, status, timestamp, last_seen, hot
			) VALUES (
				:id, :title, :url, :image, :price, :original_price,
				:store, :category, :deal_type, :status, :timestamp, :last_seen, :hot
			)
			ON CONFLICT (id) DO UPDATE SET
				title = EXCLUDED.title,
				url = EXCLUDED.url,
				image = EXCLUDED.image,
				price = EXCLUDED.price,
				original_price = EXCLUDED.original_price,
				store = EXCLUDED.store,
				category = EXCLUDED.category,
				deal_type = EXCLUDED.deal_type,
				status = EXCLUDED.status,
				timestamp = EXCLUDED.timestamp,
				last_seen = EXCLUDED.last_seen,
				hot = EXCLUDED.hot`

		for _, deal := range deals {
			if _, err := tx.NamedExecContext(ctx, query, fromDeal(deal)); err != nil {
				return domain.WrapError(err, errcodes.PersistenceFailure, fmt.Sprintf("failed to upsert deal %s", deal.ID))
			}
		}
		return nil
	})
}

type ListFilter struct {
	Store    value.Store
	Category value.Category
	DealType value.DealType
	Statuses []value.Status
	Limit    int
}

// List returns deals ordered by rank, newest first.
func (r *DealRepository) List(ctx context.Context, filter ListFilter) ([]entity.Deal, error) {
	conds := make([]string, 0, 4)
	args := make([]any, 0, 4)

	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Store != "" {
		add("store = $%d", string(filter.Store))
	}
	if filter.Category != "" {
		add("category = $%d", string(filter.Category))
	}
	if filter.DealType != "" {
		add("deal_type = $%d", string(filter.DealType))
	}

	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			args = append(args, string(s))
			placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
		}
		conds = append(conds, "status IN ("+strings.Join(placeholders, ", ")+")")
	}

	query := `SELECT * FROM deals`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY timestamp DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	var schemas []dealSchema
	if err := r.db.SelectContext(ctx, &schemas, query, args...); err != nil {
		return nil, domain.WrapError(err, errcodes.PersistenceFailure, "failed to list deals")
	}

	deals := make([]entity.Deal, 0, len(schemas))
	for _, schema := range schemas {
		deals = append(deals, schema.toDomain())
	}
	return deals, nil
}

// ListActiveBefore returns active deals last seen before the cutoff, the
// candidate set for the expiry sweep.
func (r *DealRepository) ListActiveBefore(ctx context.Context, cutoff time.Time) ([]entity.Deal, error) {
	query := `SELECT * FROM deals WHERE status = $1 AND last_seen < $2`

	var schemas []dealSchema
	if err := r.db.SelectContext(ctx, &schemas, query, string(value.StatusActive), cutoff); err != nil {
		return nil, domain.WrapError(err, errcodes.PersistenceFailure, "failed to list stale deals")
	}

	deals := make([]entity.Deal, 0, len(schemas))
	for _, schema := range schemas {
		deals = append(deals, schema.toDomain())
	}
	return deals, nil
}

func (r *DealRepository) ExpireBatch(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		query, args, err := sqlx.In(`UPDATE deals SET status = ? WHERE id IN (?)`, string(value.StatusExpired), ids)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to build expire query")
		}

		if _, err := tx.ExecContext(ctx, tx.Rebind(query), args...); err != nil {
			return domain.WrapError(err, errcodes.PersistenceFailure, "failed to expire deals")
		}
		return nil
	})
}

func (r *DealRepository) DeleteByID(ctx context.Context, id string) error {
	return r.withTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM deals WHERE id = $1`, id)
		if err != nil {
			return domain.WrapError(err, errcodes.PersistenceFailure, "failed to delete deal")
		}

		rows, _ := res.RowsAffected()
		if rows == 0 {
			return domain.NewError(errcodes.DealNotFound, "deal not found")
		}
		return nil
	})
}

// PurgeStoresNotIn deletes every deal whose store is outside the allowlist.
// Admin cleanup after a source misconfiguration flooded the table.
func (r *DealRepository) PurgeStoresNotIn(ctx context.Context, keep []value.Store) (int64, error) {
	if len(keep) == 0 {
		return 0, domain.NewError(errcodes.ValidationError, "keep list must not be empty")
	}

	stores := make([]string, 0, len(keep))
	for _, s := range keep {
		stores = append(stores, string(s))
	}

	var deleted int64
	err := r.withTx(ctx, func(tx *sqlx.Tx) error {
		query, args, err := sqlx.In(`DELETE FROM deals WHERE store NOT IN (?)`, stores)
		if err != nil {
			return domain.WrapError(err, errcodes.InternalServerError, "failed to build purge query")
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
		if err != nil {
			return domain.WrapError(err, errcodes.PersistenceFailure, "failed to purge deals")
		}

		deleted, _ = res.RowsAffected()
		return nil
	})

	return deleted, err
}
