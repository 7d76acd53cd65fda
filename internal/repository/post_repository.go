package repository

import (
	"context"
	"database/sql"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"go.uber.org/zap"
)

type PostRepository interface {
	Upsert(ctx context.Context, post *models.Post) error
	ListByUserID(ctx context.Context, userID string, includeHidden bool) ([]*models.Post, error)
	SetHidden(ctx context.Context, userID, postID string, hidden bool) (bool, error)
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

// Upsert writes a synced media item keyed by its Instagram id. An existing
// row keeps its is_hidden flag.
func (r *postRepository) Upsert(ctx context.Context, post *models.Post) error {
	query := `
		INSERT INTO posts (user_id, instagram_post_id, caption, media_url, media_type, permalink, posted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (instagram_post_id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
			caption = EXCLUDED.caption,
			media_url = EXCLUDED.media_url,
			media_type = EXCLUDED.media_type,
			permalink = EXCLUDED.permalink,
			posted_at = EXCLUDED.posted_at,
			updated_at = NOW()
	`
	_, err := r.db.ExecContext(ctx, query, post.UserID, post.InstagramPostID, post.Caption, post.MediaURL, post.MediaType, post.Permalink, post.PostedAt)
	if err != nil {
		zap.L().Info("post upsert failed", zap.String("instagram_post_id", post.InstagramPostID), zap.Error(err))
		return err
	}
	return nil
}

func (r *postRepository) ListByUserID(ctx context.Context, userID string, includeHidden bool) ([]*models.Post, error) {
	query := `
		SELECT id, user_id, instagram_post_id, caption, media_url, media_type, permalink, posted_at, is_hidden, created_at, updated_at
		FROM posts WHERE user_id = $1`
	if !includeHidden {
		query += " AND is_hidden = FALSE"
	}
	query += " ORDER BY posted_at DESC"

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		zap.L().Info("post list failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	posts := []*models.Post{}
	for rows.Next() {
		var post models.Post
		err := rows.Scan(&post.ID, &post.UserID, &post.InstagramPostID, &post.Caption, &post.MediaURL, &post.MediaType, &post.Permalink, &post.PostedAt, &post.IsHidden, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			zap.L().Info("post scan failed", zap.Error(err))
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, rows.Err()
}

// SetHidden reports false when the post does not belong to the user.
func (r *postRepository) SetHidden(ctx context.Context, userID, postID string, hidden bool) (bool, error) {
	query := `UPDATE posts SET is_hidden = $1, updated_at = NOW() WHERE id = $2 AND user_id = $3`
	res, err := r.db.ExecContext(ctx, query, hidden, postID, userID)
	if err != nil {
		zap.L().Info("post visibility update failed", zap.Error(err))
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
