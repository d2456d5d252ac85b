// Post HTTP handlers.
//
// This file exposes REST endpoints for post resources:
//   - POST   /posts                  (create, Idempotency-Key support)
//   - GET    /posts                  (list, limit/offset, ETag support)
//   - POST   /posts/{post_id}/flag   (flag for moderation)
//
// Handlers are transport-thin: they bind input, call the post service, and
// translate results into envelopes (including conditional responses).
package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/campus-pulse/internal/apierr"
	"github.com/tbourn/campus-pulse/internal/http/middleware"
	"github.com/tbourn/campus-pulse/internal/services"
)

// CreatePostRequest is the JSON payload for creating a post.
type CreatePostRequest struct {
	// Content is the post text (1-1000 characters); nil when absent.
	Content *string `json:"content" binding:"required,min=1,max=1000" example:"Library is packed again tonight"`
	// CategoryID optionally tags the post; null or "" means untagged.
	CategoryID *string `json:"category_id" example:"campus-life"`
}

// ListPostsQuery carries the query parameters of GET /posts.
type ListPostsQuery struct {
	CategoryID string `form:"category_id"`
	Limit      int    `form:"limit,default=10" binding:"min=0"`
	Offset     int    `form:"offset,default=0" binding:"min=0"`
}

// FlagPostRequest is the JSON payload for flagging a post.
type FlagPostRequest struct {
	// Reason explains why the post is flagged (1-255 characters).
	Reason *string `json:"reason" binding:"required,min=1,max=255" example:"spam"`
}

// CreatePost godoc
// @ID          createPost
// @Summary     Create a post
// @Description Creates an anonymous post, optionally tagged with a category. A retry carrying the same Idempotency-Key returns the original post with Idempotent-Replayed: true.
// @Tags        Posts
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Deduplicates retries of the same create"  example(7d3c1f1e-create-1)
// @Param       body             body    handlers.CreatePostRequest  true  "Create post payload"
//
// @Success     201  {object}  envelope.Envelope{body=handlers.PostResponse}
// @Header      201  {string}  Idempotent-Replayed  "true when served from a stored result"
// @Failure     400  {object}  handlers.ErrorResponse  "Invalid Idempotency-Key"
// @Failure     404  {object}  handlers.ErrorResponse  "Category not found"
// @Failure     413  {object}  handlers.ErrorResponse  "Body too large"
// @Failure     422  {object}  envelope.Envelope{body=handlers.ValidationErrorBody}  "Validation error"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /posts [post]
func (h *Handlers) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.RequestValidation("body", err))
		return
	}

	key, _ := middleware.GetIdempotencyKey(c)
	p, replayed, err := h.svc.Create(c.Request.Context(), services.CreatePostInput{
		Content:        *req.Content,
		CategoryID:     req.CategoryID,
		IdempotencyKey: key,
	})
	if err != nil {
		fail(c, serviceError(err))
		return
	}
	if replayed {
		middleware.SetReplay(c)
	}
	ok(c, http.StatusCreated, MsgPostCreated, MsgPostCreated, toPostResponse(p))
}

// ListPosts godoc
// @ID          listPosts
// @Summary     List posts
// @Description Returns posts newest first, optionally filtered by exact category id. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Posts
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"  example(W/\"posts:campus-life:0:10:3:0:1735830245123456000\")
// @Param       category_id    query   string  false "Exact category id filter"    example(campus-life)
// @Param       limit          query   int     false "Page size"                   minimum(0) default(10)
// @Param       offset         query   int     false "Rows to skip"                minimum(0) default(0)
//
// @Success     200  {object}  envelope.Envelope{body=[]handlers.PostDetailResponse}
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string "Not Modified"
// @Failure     422  {object}  envelope.Envelope{body=handlers.ValidationErrorBody}  "Validation error"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /posts [get]
func (h *Handlers) ListPosts(c *gin.Context) {
	if err := intParams(c, "limit", "offset"); err != nil {
		fail(c, apierr.RequestValidation("query", err))
		return
	}
	var q ListPostsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		fail(c, apierr.RequestValidation("query", err))
		return
	}
	if h.maxListLimit > 0 && q.Limit > h.maxListLimit {
		le := strconv.Itoa(h.maxListLimit)
		fail(c, apierr.RequestValidation("query", apierr.FieldError{
			Type:  "less_than_equal",
			Loc:   []string{"limit"},
			Msg:   "Input should be less than or equal to " + le,
			Input: q.Limit,
			Ctx:   map[string]string{"le": le},
		}))
		return
	}

	ctx := c.Request.Context()

	// ETag pre-check (best effort).
	count, flagged, maxTS, err := h.svc.ListStats(ctx, q.CategoryID)
	if err == nil {
		var ts int64
		if maxTS != nil {
			ts = maxTS.UnixNano()
		}
		etag := fmt.Sprintf(`W/"posts:%s:%d:%d:%d:%d:%d"`,
			url.PathEscape(q.CategoryID), q.Offset, q.Limit, count, flagged, ts)
		c.Header("ETag", etag)
		if etagMatch(c.GetHeader("If-None-Match"), etag) {
			c.Status(http.StatusNotModified)
			return
		}
	}

	items, err := h.svc.List(ctx, q.CategoryID, q.Offset, q.Limit)
	if err != nil {
		c.Writer.Header().Del("ETag")
		fail(c, serviceError(err))
		return
	}

	out := make([]PostDetailResponse, 0, len(items))
	for i := range items {
		out = append(out, toPostDetail(&items[i]))
	}
	ok(c, http.StatusOK, MsgPostsRetrieved, MsgPostsCustomer, out)
}

// FlagPost godoc
// @ID          flagPost
// @Summary     Flag a post
// @Description Marks a post as flagged for moderation with a reason. A post can be flagged once.
// @Tags        Posts
// @Accept      json
// @Produce     json
//
// @Param       post_id  path  string  true  "Post ID (UUID)"  format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
// @Param       body     body  handlers.FlagPostRequest  true  "Flag payload"
//
// @Success     200  {object}  envelope.Envelope{body=handlers.PostDetailResponse}
// @Failure     400  {object}  handlers.ErrorResponse  "Post is already flagged"
// @Failure     404  {object}  handlers.ErrorResponse  "Post not found"
// @Failure     422  {object}  envelope.Envelope{body=handlers.ValidationErrorBody}  "Validation error"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /posts/{post_id}/flag [post]
func (h *Handlers) FlagPost(c *gin.Context) {
	var req FlagPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, apierr.RequestValidation("body", err))
		return
	}

	p, err := h.svc.Flag(c.Request.Context(), c.Param("post_id"), *req.Reason)
	if err != nil {
		fail(c, serviceError(err))
		return
	}
	ok(c, http.StatusOK, MsgPostFlagged, MsgPostFlaggedCustomer, toPostDetail(p))
}

// intParams checks that each named query parameter, when given, parses as an
// integer. Gin's binder reports parse failures without the field name.
func intParams(c *gin.Context, keys ...string) error {
	for _, k := range keys {
		v, ok := c.GetQuery(k)
		if !ok || v == "" {
			continue
		}
		if _, err := strconv.Atoi(v); err != nil {
			return apierr.IntParsing(k, v)
		}
	}
	return nil
}

// etagMatch reports whether an If-None-Match value matches etag. It accepts
// "*" and comma-separated lists.
func etagMatch(inm, etag string) bool {
	if inm == "" {
		return false
	}
	for _, part := range strings.Split(inm, ",") {
		part = strings.TrimSpace(part)
		if part == "*" || part == etag {
			return true
		}
	}
	return false
}
