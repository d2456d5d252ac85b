// Package services – PostService
//
// This file implements PostService, the application-level component that owns
// the post lifecycle: creation (with category lookup, entity validation and
// optional idempotent replay), listing, and the one-way flag transition.
//
// Service-level errors (ErrCategoryNotFound, ErrPostNotFound,
// ErrPostAlreadyFlagged) are returned for predictable cases so handlers can
// map them to API errors consistently. Datastore failures pass through as
// *apierr.DatastoreError; entity validation failures pass through as
// validator.ValidationErrors.
//
// Observability: all public methods are OpenTelemetry-instrumented.
package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/campus-pulse/internal/categories"
	"github.com/tbourn/campus-pulse/internal/domain"
	"github.com/tbourn/campus-pulse/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/unicode/norm"
)

// IdempotencyScope namespaces idempotency keys used by post creation.
const IdempotencyScope = "posts.create"

// DefaultIdempotencyTTL is used when PostService.IdempotencyTTL is unset.
const DefaultIdempotencyTTL = 24 * time.Hour

// errReplay aborts the create transaction when another request already
// claimed the idempotency key.
var errReplay = errors.New("idempotency key already used")

// CreatePostInput carries the already shape-validated create request.
type CreatePostInput struct {
	Content    string
	CategoryID *string
	// IdempotencyKey is optional; when set, a retry within the TTL returns
	// the post created by the first request.
	IdempotencyKey string
}

// PostService coordinates post persistence and moderation.
type PostService struct {
	DB         *gorm.DB
	Categories *categories.Store
	Validate   *validator.Validate

	IdempotencyTTL time.Duration
}

// NewPostService constructs a PostService with a fresh validator and the
// default idempotency window.
func NewPostService(db *gorm.DB, cats *categories.Store) *PostService {
	return &PostService{
		DB:             db,
		Categories:     cats,
		Validate:       NewValidator(),
		IdempotencyTTL: DefaultIdempotencyTTL,
	}
}

// ListCategories returns the full category list in display order.
func (s *PostService) ListCategories() []categories.Category {
	return s.Categories.All()
}

// Create validates the category, builds and validates the entity, and
// persists it. The returned bool reports an idempotent replay, in which case
// the post is the one stored by the original request and nothing new was
// written.
func (s *PostService) Create(ctx context.Context, in CreatePostInput) (*domain.Post, bool, error) {
	tr := otel.Tracer("services/PostService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("post.category_id", categoryLabel(in.CategoryID)),
			attribute.Bool("idempotency.key_present", in.IdempotencyKey != ""),
		),
	)
	defer span.End()

	catID := in.CategoryID
	if catID != nil && *catID == "" {
		catID = nil
	}
	if catID != nil {
		if _, ok := s.Categories.Get(*catID); !ok {
			return nil, false, ErrCategoryNotFound
		}
	}

	if in.IdempotencyKey != "" {
		if p, ok, err := s.replay(ctx, in.IdempotencyKey); err != nil || ok {
			return p, ok, err
		}
	}

	post := repo.NewPost(norm.NFC.String(in.Content), catID)
	if err := s.validator().Struct(post); err != nil {
		return nil, false, err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.InsertPost(ctx, tx, post); err != nil {
			return err
		}
		if in.IdempotencyKey == "" {
			return nil
		}
		_, err := repo.CreateIdempotency(ctx, tx, IdempotencyScope, in.IdempotencyKey, post.ID, http.StatusCreated, s.ttl())
		if errors.Is(err, repo.ErrDuplicate) {
			return errReplay
		}
		return err
	})
	if errors.Is(err, errReplay) {
		// Lost a race on the same key: hand back the winner's post.
		p, ok, rerr := s.replay(ctx, in.IdempotencyKey)
		if rerr != nil {
			return nil, false, rerr
		}
		if ok {
			return p, true, nil
		}
	}
	if err != nil {
		return nil, false, err
	}

	postsCreated.WithLabelValues(categoryLabel(post.CategoryID)).Inc()
	span.SetAttributes(attribute.String("post.id", post.ID))
	return post, false, nil
}

// List returns a page of posts, newest first, optionally restricted to one
// category. An empty categoryID means no filter. The category is not checked
// against the category set: an unknown id simply matches nothing.
func (s *PostService) List(ctx context.Context, categoryID string, offset, limit int) ([]domain.Post, error) {
	tr := otel.Tracer("services/PostService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(
			attribute.String("post.category_id", categoryID),
			attribute.Int("offset", offset),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	return repo.ListPosts(ctx, s.DB, categoryID, offset, limit)
}

// ListStats returns the aggregates used to build a list ETag.
func (s *PostService) ListStats(ctx context.Context, categoryID string) (count, flagged int64, maxCreatedAt *time.Time, err error) {
	return repo.PostsStats(ctx, s.DB, categoryID)
}

// Flag sets flagged=true with reason on the post, once. Unknown and non-UUID
// ids yield ErrPostNotFound; a second flag yields ErrPostAlreadyFlagged and
// leaves the stored reason untouched.
func (s *PostService) Flag(ctx context.Context, postID, reason string) (*domain.Post, error) {
	tr := otel.Tracer("services/PostService")
	ctx, span := tr.Start(ctx, "Flag",
		trace.WithAttributes(attribute.String("post.id", postID)),
	)
	defer span.End()

	if _, err := uuid.Parse(postID); err != nil {
		return nil, ErrPostNotFound
	}

	p, err := repo.FlagPost(ctx, s.DB, postID, norm.NFC.String(reason))
	switch {
	case errors.Is(err, repo.ErrNotFound):
		return nil, ErrPostNotFound
	case errors.Is(err, repo.ErrAlreadyFlagged):
		return nil, ErrPostAlreadyFlagged
	case err != nil:
		return nil, err
	}

	postsFlagged.Inc()
	return p, nil
}

// replay looks up a live idempotency record for key and loads its post.
func (s *PostService) replay(ctx context.Context, key string) (*domain.Post, bool, error) {
	rec, err := repo.GetIdempotency(ctx, s.DB, IdempotencyScope, key, time.Now().UTC())
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	p, err := repo.GetPost(ctx, s.DB, rec.PostID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

var defaultValidator = sync.OnceValue(NewValidator)

func (s *PostService) validator() *validator.Validate {
	if s.Validate == nil {
		return defaultValidator()
	}
	return s.Validate
}

func (s *PostService) ttl() time.Duration {
	if s.IdempotencyTTL <= 0 {
		return DefaultIdempotencyTTL
	}
	return s.IdempotencyTTL
}
