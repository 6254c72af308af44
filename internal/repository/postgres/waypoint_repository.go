package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/linuskangsoftware/bubbly/internal/domain"
	"github.com/linuskangsoftware/bubbly/internal/domain/repository"
	"github.com/linuskangsoftware/bubbly/internal/pkg/errors"
)

type waypointRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewWaypointRepository(db *DB) repository.WaypointRepository {
	return &waypointRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

const waypointListQuery = `
	SELECT
		w.id, w.name, w.latitude, w.longitude, w.description, w.amenities,
		w.image, w.maintainer, w.added_by_user_id, w.created_at,
		u.id AS owner_id, u.handle AS owner_handle,
		u.display_name AS owner_display_name, u.image AS owner_image,
		COUNT(DISTINCT f.user_id) AS favorite_count,
		COUNT(DISTINCT r.id) AS review_count
	FROM waypoints w
	JOIN users u ON u.id = w.added_by_user_id
	LEFT JOIN waypoint_favorites f ON f.waypoint_id = w.id
	LEFT JOIN waypoint_reviews r ON r.waypoint_id = w.id
`

const waypointListGroup = `
	GROUP BY w.id, u.id
	ORDER BY w.created_at DESC
`

func (r *waypointRepository) List(ctx context.Context, userID string) ([]domain.WaypointWithOwner, error) {
	query := waypointListQuery
	var args []interface{}
	if userID != "" {
		query += ` WHERE w.added_by_user_id = $1`
		args = append(args, userID)
	}
	query += waypointListGroup

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to list waypoints", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	defer rows.Close()

	waypoints := make([]domain.WaypointWithOwner, 0)
	for rows.Next() {
		var wp domain.WaypointWithOwner
		var amenities pq.StringArray
		if err := rows.Scan(
			&wp.ID, &wp.Name, &wp.Latitude, &wp.Longitude, &wp.Description, &amenities,
			&wp.Image, &wp.Maintainer, &wp.AddedByUserID, &wp.CreatedAt,
			&wp.AddedBy.ID, &wp.AddedBy.Handle,
			&wp.AddedBy.DisplayName, &wp.AddedBy.Image,
			&wp.FavoriteCount, &wp.ReviewCount,
		); err != nil {
			r.logger.Error("Failed to scan waypoint row", zap.Error(err))
			return nil, errors.ErrDatabaseError
		}
		wp.Amenities = amenities
		waypoints = append(waypoints, wp)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Waypoint rows iteration failed", zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return waypoints, nil
}

func (r *waypointRepository) GetByID(ctx context.Context, id int64) (*domain.Waypoint, error) {
	query := `
		SELECT id, name, latitude, longitude, description, amenities,
		       image, maintainer, added_by_user_id, created_at
		FROM waypoints
		WHERE id = $1
	`

	var wp domain.Waypoint
	var amenities pq.StringArray
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&wp.ID, &wp.Name, &wp.Latitude, &wp.Longitude, &wp.Description, &amenities,
		&wp.Image, &wp.Maintainer, &wp.AddedByUserID, &wp.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errors.ErrWaypointNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get waypoint by ID", zap.Int64("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}
	wp.Amenities = amenities

	return &wp, nil
}

func (r *waypointRepository) Create(ctx context.Context, wp *domain.Waypoint) (*domain.Waypoint, error) {
	query := `
		INSERT INTO waypoints (name, latitude, longitude, description, amenities,
		                       image, maintainer, added_by_user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at
	`

	amenities := wp.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	err := r.db.QueryRowContext(ctx, query,
		wp.Name, wp.Latitude, wp.Longitude, wp.Description, pq.StringArray(amenities),
		wp.Image, wp.Maintainer, wp.AddedByUserID,
	).Scan(&wp.ID, &wp.CreatedAt)
	if err != nil {
		r.logger.Error("Failed to create waypoint", zap.String("name", wp.Name), zap.Error(err))
		return nil, errors.ErrDatabaseError
	}

	return wp, nil
}

func (r *waypointRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM waypoints WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete waypoint", zap.Int64("id", id), zap.Error(err))
		return errors.ErrDatabaseError
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.ErrDatabaseError
	}
	if affected == 0 {
		return errors.ErrWaypointNotFound
	}

	return nil
}
