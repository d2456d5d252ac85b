package handlers

import (
	"context"
	"errors"
	"time"

	"github.com/tbourn/campus-pulse/internal/apierr"
	"github.com/tbourn/campus-pulse/internal/categories"
	"github.com/tbourn/campus-pulse/internal/domain"
	"github.com/tbourn/campus-pulse/internal/http/envelope"
	"github.com/tbourn/campus-pulse/internal/services"
)

// PostService defines the post operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type PostService interface {
	// ListCategories returns the static category set in display order.
	ListCategories() []categories.Category
	// Create persists a post. The bool reports an idempotent replay.
	Create(ctx context.Context, in services.CreatePostInput) (*domain.Post, bool, error)
	// List returns a page of posts, newest first, optionally filtered.
	List(ctx context.Context, categoryID string, offset, limit int) ([]domain.Post, error)
	// ListStats returns the aggregates a list ETag is derived from.
	ListStats(ctx context.Context, categoryID string) (count, flagged int64, maxCreatedAt *time.Time, err error)
	// Flag marks a post as flagged with reason, once.
	Flag(ctx context.Context, postID, reason string) (*domain.Post, error)
}

// Handlers groups the HTTP endpoints for categories and posts.
type Handlers struct {
	svc PostService
	// maxListLimit caps ?limit= on GET /posts when > 0.
	maxListLimit int
}

// New constructs Handlers bound to svc. maxListLimit <= 0 leaves the list
// limit unbounded.
func New(svc PostService, maxListLimit int) *Handlers {
	return &Handlers{svc: svc, maxListLimit: maxListLimit}
}

// Client-facing messages for domain failures.
const (
	MsgCategoryNotFound    = "Category not found."
	MsgPostNotFound        = "Post not found."
	MsgPostAlreadyFlagged  = "Post is already flagged."
	MsgCategoriesRetrieved = "Categories retrieved successfully."
	MsgCategoriesCustomer  = "Successfully loaded categories."
	MsgPostCreated         = "Post created successfully."
	MsgPostsRetrieved      = "Posts retrieved successfully."
	MsgPostsCustomer       = "Successfully loaded posts."
	MsgPostFlagged         = "Post flagged successfully."
	MsgPostFlaggedCustomer = "The post has been flagged for moderation."
)

// serviceError maps service sentinels onto the error taxonomy. Anything else
// (datastore and entity validation failures) passes through unchanged.
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrCategoryNotFound):
		return apierr.NotFound(MsgCategoryNotFound)
	case errors.Is(err, services.ErrPostNotFound):
		return apierr.NotFound(MsgPostNotFound)
	case errors.Is(err, services.ErrPostAlreadyFlagged):
		return apierr.BadRequest(MsgPostAlreadyFlagged)
	}
	return err
}

//
// DTOs
//

// PostResponse is the public representation of a newly created post.
type PostResponse struct {
	ID         string  `json:"id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Content    string  `json:"content" example:"Library is packed again tonight"`
	CategoryID *string `json:"category_id" example:"campus-life"`
	CreatedAt  string  `json:"created_at" example:"2025-01-02T15:04:05.123456Z"`
}

// PostDetailResponse adds moderation state to PostResponse. Returned by the
// list and flag endpoints.
type PostDetailResponse struct {
	ID         string  `json:"id" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
	Content    string  `json:"content" example:"Library is packed again tonight"`
	CategoryID *string `json:"category_id" example:"campus-life"`
	CreatedAt  string  `json:"created_at" example:"2025-01-02T15:04:05.123456Z"`
	Flagged    bool    `json:"flagged" example:"false"`
	FlagReason *string `json:"flag_reason" example:"spam"`
}

func toPostResponse(p *domain.Post) PostResponse {
	return PostResponse{
		ID:         p.ID,
		Content:    p.Content,
		CategoryID: p.CategoryID,
		CreatedAt:  envelope.FormatTime(p.CreatedAt),
	}
}

func toPostDetail(p *domain.Post) PostDetailResponse {
	return PostDetailResponse{
		ID:         p.ID,
		Content:    p.Content,
		CategoryID: p.CategoryID,
		CreatedAt:  envelope.FormatTime(p.CreatedAt),
		Flagged:    p.Flagged,
		FlagReason: p.FlagReason,
	}
}
