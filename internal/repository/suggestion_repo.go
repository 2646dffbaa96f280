package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/DecafCoding/TargetBrowse-sub004/internal/model"
)

type SuggestionRepo struct {
	pool *pgxpool.Pool
}

func NewSuggestionRepo(pool *pgxpool.Pool) *SuggestionRepo {
	return &SuggestionRepo{pool: pool}
}

// ReplaceForUser atomically swaps the user's stored suggestion list for the
// output of a new run. Rank preserves the aggregator's ordering so reads
// never have to re-sort.
func (r *SuggestionRepo) ReplaceForUser(ctx context.Context, userID, runID string, suggestions []model.Suggestion) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `DELETE FROM suggestions WHERE user_id = $1`, userID)
	if err != nil {
		return err
	}

	insert := `
		INSERT INTO suggestions (
			user_id, run_id, rank, video_id, title, description,
			channel_id, channel_name, published_at, duration_seconds,
			view_count, like_count, comment_count, thumbnail_url,
			relevance_score, matched_keywords, contributing_topics,
			channel_stars, tier
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`

	for rank, s := range suggestions {
		keywords, err := json.Marshal(s.MatchedKeywords)
		if err != nil {
			return err
		}
		topics, err := json.Marshal(s.ContributingTopics)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, insert,
			userID, runID, rank, s.VideoID, s.Title, s.Description,
			s.ChannelID, s.ChannelName, s.PublishedAt, s.DurationSeconds,
			s.ViewCount, s.LikeCount, s.CommentCount, s.ThumbnailURL,
			s.RelevanceScore, keywords, topics,
			s.ChannelStars, string(s.Tier))
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// ListForUser returns the user's last stored run in rank order.
func (r *SuggestionRepo) ListForUser(ctx context.Context, userID string) ([]model.Suggestion, error) {
	query := `
		SELECT video_id, title, description, channel_id, channel_name,
		       published_at, duration_seconds, view_count, like_count,
		       comment_count, thumbnail_url, relevance_score,
		       matched_keywords, contributing_topics, channel_stars, tier
		FROM suggestions
		WHERE user_id = $1
		ORDER BY rank`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []model.Suggestion
	for rows.Next() {
		var s model.Suggestion
		var keywords, topics []byte
		var tier string
		err := rows.Scan(
			&s.VideoID, &s.Title, &s.Description, &s.ChannelID, &s.ChannelName,
			&s.PublishedAt, &s.DurationSeconds, &s.ViewCount, &s.LikeCount,
			&s.CommentCount, &s.ThumbnailURL, &s.RelevanceScore,
			&keywords, &topics, &s.ChannelStars, &tier,
		)
		if err != nil {
			return nil, err
		}
		if len(keywords) > 0 {
			if err := json.Unmarshal(keywords, &s.MatchedKeywords); err != nil {
				return nil, err
			}
		}
		if len(topics) > 0 {
			if err := json.Unmarshal(topics, &s.ContributingTopics); err != nil {
				return nil, err
			}
		}
		s.Tier = model.Tier(tier)
		suggestions = append(suggestions, s)
	}
	return suggestions, rows.Err()
}
