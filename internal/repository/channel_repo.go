package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/model"
)

type ChannelRepo struct {
	pool *pgxpool.Pool
}

func NewChannelRepo(pool *pgxpool.Pool) *ChannelRepo {
	return &ChannelRepo{pool: pool}
}

// GetTrackedChannels returns the channels the user follows. No exclusion
// filtering happens here; that is the rating index's job.
func (r *ChannelRepo) GetTrackedChannels(ctx context.Context, userID string) ([]model.TrackedChannel, error) {
	query := `
		SELECT channel_id, channel_name
		FROM tracked_channels
		WHERE user_id = $1
		ORDER BY channel_name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var channels []model.TrackedChannel
	for rows.Next() {
		var ch model.TrackedChannel
		if err := rows.Scan(&ch.ChannelID, &ch.ChannelName); err != nil {
			return nil, err
		}
		channels = append(channels, ch)
	}
	return channels, rows.Err()
}
