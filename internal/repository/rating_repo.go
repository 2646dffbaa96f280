package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type RatingRepo struct {
	pool *pgxpool.Pool
}

func NewRatingRepo(pool *pgxpool.Pool) *RatingRepo {
	return &RatingRepo{pool: pool}
}

// GetChannelRatings returns every channel rating the user has submitted,
// keyed by channel id. Nothing is filtered out here; the exclusion policy
// lives entirely in the rating index.
func (r *RatingRepo) GetChannelRatings(ctx context.Context, userID string) (map[string]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT channel_id, stars FROM channel_ratings WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ratings := make(map[string]int)
	for rows.Next() {
		var channelID string
		var stars int
		if err := rows.Scan(&channelID, &stars); err != nil {
			return nil, err
		}
		ratings[channelID] = stars
	}
	return ratings, rows.Err()
}

// GetLowRatedChannelIds returns the channel ids the user rated one star.
func (r *RatingRepo) GetLowRatedChannelIds(ctx context.Context, userID string) ([]string, error) {
	return r.lowRatedIDs(ctx, `
		SELECT channel_id FROM channel_ratings WHERE user_id = $1 AND stars = 1`, userID)
}

// GetLowRatedVideoIds returns the video ids the user rated one star.
func (r *RatingRepo) GetLowRatedVideoIds(ctx context.Context, userID string) ([]string, error) {
	return r.lowRatedIDs(ctx, `
		SELECT video_id FROM video_ratings WHERE user_id = $1 AND stars = 1`, userID)
}

func (r *RatingRepo) lowRatedIDs(ctx context.Context, query, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
