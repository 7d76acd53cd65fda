package localdb

import (
	"context"
	"sort"

	"github.com/maheshrc27/cominiti-api/internal/models"
	"github.com/maheshrc27/cominiti-api/internal/repository"
)

const postsTable = "posts"

type postRepository struct {
	s *Store
}

func NewPostRepository(s *Store) repository.PostRepository {
	return &postRepository{s: s}
}

func (r *postRepository) Upsert(ctx context.Context, post *models.Post) error {
	_, err := r.s.Upsert(postsTable, Match{
		"user_id":           post.UserID,
		"instagram_post_id": post.InstagramPostID,
		"caption":           post.Caption,
		"media_url":         post.MediaURL,
		"media_type":        post.MediaType,
		"permalink":         post.Permalink,
		"posted_at":         post.PostedAt,
	}, "instagram_post_id")
	return err
}

func (r *postRepository) ListByUserID(ctx context.Context, userID string, includeHidden bool) ([]*models.Post, error) {
	rows, err := r.s.Select(postsTable, Match{"user_id": userID})
	if err != nil {
		return nil, err
	}
	all, err := decodeAll[models.Post](rows)
	if err != nil {
		return nil, err
	}
	posts := make([]*models.Post, 0, len(all))
	for _, p := range all {
		if p.IsHidden && !includeHidden {
			continue
		}
		posts = append(posts, p)
	}
	sort.SliceStable(posts, func(i, j int) bool { return posts[i].PostedAt.After(posts[j].PostedAt) })
	return posts, nil
}

func (r *postRepository) SetHidden(ctx context.Context, userID, postID string, hidden bool) (bool, error) {
	rows, err := r.s.Update(postsTable, Match{"id": postID, "user_id": userID}, Match{"is_hidden": hidden})
	if err != nil {
		return false, err
	}
	return len(rows) > 0, nil
}
