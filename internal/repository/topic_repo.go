package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/model"
)

type TopicRepo struct {
	pool *pgxpool.Pool
}

func NewTopicRepo(pool *pgxpool.Pool) *TopicRepo {
	return &TopicRepo{pool: pool}
}

// GetUserTopics returns the user's active interest topics in creation order.
// Topic CRUD lives in the main application; this is a read-only view.
func (r *TopicRepo) GetUserTopics(ctx context.Context, userID string) ([]model.Topic, error) {
	query := `
		SELECT topic_id, name
		FROM topics
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topics []model.Topic
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.TopicID, &t.Name); err != nil {
			return nil, err
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}
