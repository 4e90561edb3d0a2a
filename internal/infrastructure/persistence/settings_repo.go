package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"tooldeals/internal/domain"
	"tooldeals/internal/domain/entity"
	"tooldeals/pkg/errcodes"
)

// SettingsRepository holds the single-row site settings, currently just the
// featured video.
type SettingsRepository struct {
	db *sqlx.DB
}

func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

func (r *SettingsRepository) UpsertFeaturedVideo(ctx context.Context, video entity.FeaturedVideo) error {
	query := `
		INSERT INTO featured_video (singleton, video_id, title, updated_at)
		VALUES (TRUE, $1, $2, $3)
		ON CONFLICT (singleton) DO UPDATE SET
			video_id = EXCLUDED.video_id,
			title = EXCLUDED.title,
			updated_at = EXCLUDED.updated_at`

	if _, err := r.db.ExecContext(ctx, query, video.VideoID, video.Title, time.Now()); err != nil {
		return domain.WrapError(err, errcodes.PersistenceFailure, "failed to upsert featured video")
	}
	return nil
}

func (r *SettingsRepository) GetFeaturedVideo(ctx context.Context) (*entity.FeaturedVideo, error) {
	query := `SELECT video_id, title, updated_at FROM featured_video WHERE singleton`

	var schema featuredVideoSchema
	if err := r.db.GetContext(ctx, &schema, query); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewError(errcodes.NotFound, "featured video not set")
		}
		return nil, domain.WrapError(err, errcodes.PersistenceFailure, "failed to get featured video")
	}

	video := schema.toDomain()
	return &video, nil
}
