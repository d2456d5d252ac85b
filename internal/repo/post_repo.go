// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Post model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They hold no business rules: category
// checks and validation live in the service layer.
//
// Error semantics:
//   - A missing post yields ErrNotFound.
//   - Flagging an already flagged post yields ErrAlreadyFlagged.
//   - Any other ORM or driver failure is wrapped once as *apierr.DatastoreError.
//
// Usage:
//
//	post, err := repo.FlagPost(ctx, db, id, "spam")
//	switch {
//	case errors.Is(err, repo.ErrNotFound):
//	    // 404
//	case errors.Is(err, repo.ErrAlreadyFlagged):
//	    // 400
//	}
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/campus-pulse/internal/apierr"
	"github.com/tbourn/campus-pulse/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrAlreadyFlagged is returned by FlagPost when the post is already flagged.
var ErrAlreadyFlagged = errors.New("post already flagged")

// NewPost builds an unsaved post with a fresh UUIDv4 and a UTC creation time
// truncated to microseconds, the finest precision every supported datastore
// keeps.
func NewPost(content string, categoryID *string) *domain.Post {
	return &domain.Post{
		ID:         uuid.NewString(),
		Content:    content,
		CategoryID: categoryID,
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

// InsertPost persists p as-is.
func InsertPost(ctx context.Context, db *gorm.DB, p *domain.Post) error {
	return apierr.Datastore("insert post", db.WithContext(ctx).Create(p).Error)
}

// GetPost fetches a post by id, or ErrNotFound.
func GetPost(ctx context.Context, db *gorm.DB, id string) (*domain.Post, error) {
	var p domain.Post
	err := db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, apierr.Datastore("get post", err)
	}
	return &p, nil
}

// ListPosts returns a page of posts ordered newest first (created_at DESC,
// ties by id DESC). A non-empty categoryID restricts the result to that exact
// category. A zero limit yields an empty page.
func ListPosts(ctx context.Context, db *gorm.DB, categoryID string, offset, limit int) ([]domain.Post, error) {
	out := []domain.Post{}
	err := postsScope(db.WithContext(ctx), categoryID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, apierr.Datastore("list posts", err)
	}
	return out, nil
}

// CountPosts returns the number of posts matching categoryID (all when empty).
func CountPosts(ctx context.Context, db *gorm.DB, categoryID string) (int64, error) {
	var n int64
	if err := postsScope(db.WithContext(ctx), categoryID).Count(&n).Error; err != nil {
		return 0, apierr.Datastore("count posts", err)
	}
	return n, nil
}

// FlagPost marks the post flagged with reason and returns the updated row.
//
// The transition is a single conditional UPDATE (WHERE flagged = false) run
// in a transaction, so of two concurrent callers exactly one wins and the
// other gets ErrAlreadyFlagged. Zero affected rows is resolved by a follow-up
// read into ErrNotFound or ErrAlreadyFlagged.
func FlagPost(ctx context.Context, db *gorm.DB, id, reason string) (*domain.Post, error) {
	var out domain.Post
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Post{}).
			Where("id = ? AND flagged = ?", id, false).
			Updates(map[string]any{"flagged": true, "flag_reason": reason})
		if res.Error != nil {
			return apierr.Datastore("flag post", res.Error)
		}

		err := tx.Where("id = ?", id).First(&out).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return apierr.Datastore("flag post", err)
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyFlagged
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func postsScope(db *gorm.DB, categoryID string) *gorm.DB {
	q := db.Model(&domain.Post{})
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	return q
}
