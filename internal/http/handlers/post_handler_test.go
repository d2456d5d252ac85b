package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/campus-pulse/internal/apierr"
	"github.com/tbourn/campus-pulse/internal/categories"
	"github.com/tbourn/campus-pulse/internal/domain"
	"github.com/tbourn/campus-pulse/internal/http/middleware"
	"github.com/tbourn/campus-pulse/internal/repo"
	"github.com/tbourn/campus-pulse/internal/services"
)

// ---------- test DB + router ----------

func newHandlerDB(t *testing.T) *gorm.DB {
	t.Helper()

	// Unique DSN per call to avoid cross-test contamination
	dsn := fmt.Sprintf("file:post_handlers_%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestRouter(svc PostService, maxListLimit int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	RegisterBindingTagNames()

	h := New(svc, maxListLimit)
	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Errors(), middleware.IdempotencyValidator(middleware.IdempotencyOptions{}))
	r.GET("/categories", h.ListCategories)
	r.POST("/posts", h.CreatePost)
	r.GET("/posts", h.ListPosts)
	r.POST("/posts/:post_id/flag", h.FlagPost)
	return r
}

func newRealRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := newHandlerDB(t)
	svc := services.NewPostService(db, categories.Bundled())
	return newTestRouter(svc, 0), db
}

type envelopeResp struct {
	Header struct {
		RequestRefID    string `json:"requestRefId"`
		ResponseCode    int    `json:"responseCode"`
		ResponseMessage string `json:"responseMessage"`
		CustomerMessage string `json:"customerMessage"`
		Timestamp       string `json:"timestamp"`
	} `json:"header"`
	Body json.RawMessage `json:"body"`
}

func do(t *testing.T, r http.Handler, method, path, body string, hdr map[string]string) (*httptest.ResponseRecorder, envelopeResp) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelopeResp
	if w.Code != http.StatusNotModified {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("invalid envelope %q: %v", w.Body.String(), err)
		}
		if env.Header.ResponseCode != w.Code {
			t.Fatalf("responseCode=%d, status=%d", env.Header.ResponseCode, w.Code)
		}
	}
	return w, env
}

func decodeBody[T any](t *testing.T, env envelopeResp) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(env.Body, &v); err != nil {
		t.Fatalf("decode body %s: %v", env.Body, err)
	}
	return v
}

func seedPost(t *testing.T, db *gorm.DB, content string, cat *string, at time.Time) *domain.Post {
	t.Helper()
	p := repo.NewPost(content, cat)
	p.CreatedAt = at
	if err := repo.InsertPost(context.Background(), db, p); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return p
}

func strPtr(s string) *string { return &s }

// ---------- create ----------

func TestCreatePost_201_WithCategory(t *testing.T) {
	r, _ := newRealRouter(t)

	w, env := do(t, r, http.MethodPost, "/posts", `{"content":"hello","category_id":"events"}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if env.Header.ResponseMessage != MsgPostCreated || env.Header.CustomerMessage != MsgPostCreated {
		t.Fatalf("header: %+v", env.Header)
	}
	if len(env.Header.RequestRefID) != 10 {
		t.Fatalf("requestRefId: %q", env.Header.RequestRefID)
	}

	p := decodeBody[PostResponse](t, env)
	if _, err := uuid.Parse(p.ID); err != nil {
		t.Fatalf("id not a uuid: %q", p.ID)
	}
	if p.Content != "hello" || p.CategoryID == nil || *p.CategoryID != "events" {
		t.Fatalf("body: %+v", p)
	}
	if _, err := time.Parse(time.RFC3339Nano, p.CreatedAt); err != nil {
		t.Fatalf("created_at %q: %v", p.CreatedAt, err)
	}
}

func TestCreatePost_NullCategory(t *testing.T) {
	r, _ := newRealRouter(t)

	w, env := do(t, r, http.MethodPost, "/posts", `{"content":"hello","category_id":null}`, nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	var raw map[string]any
	_ = json.Unmarshal(env.Body, &raw)
	if raw["content"] != "hello" {
		t.Fatalf("content: %v", raw["content"])
	}
	if v, ok := raw["category_id"]; !ok || v != nil {
		t.Fatalf("category_id must be present and null, got %v (present=%v)", v, ok)
	}
}

func TestCreatePost_FreshIDs(t *testing.T) {
	r, _ := newRealRouter(t)
	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		_, env := do(t, r, http.MethodPost, "/posts", `{"content":"same"}`, nil)
		id := decodeBody[PostResponse](t, env).ID
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestCreatePost_UnknownCategory_404(t *testing.T) {
	r, db := newRealRouter(t)

	w, env := do(t, r, http.MethodPost, "/posts", `{"content":"hello","category_id":"nope"}`, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d", w.Code)
	}
	if env.Header.ResponseMessage != MsgCategoryNotFound || env.Header.CustomerMessage != MsgCategoryNotFound {
		t.Fatalf("header: %+v", env.Header)
	}
	if string(env.Body) != "{}" {
		t.Fatalf("body: %s", env.Body)
	}
	var n int64
	db.Model(&domain.Post{}).Count(&n)
	if n != 0 {
		t.Fatalf("no post must be stored, got %d", n)
	}
}

func TestCreatePost_ValidationErrors(t *testing.T) {
	r, _ := newRealRouter(t)

	cases := []struct {
		name, body, wantType, wantLoc string
	}{
		{"missing content", `{"category_id":"events"}`, "missing", "body.content"},
		{"null content", `{"content":null}`, "missing", "body.content"},
		{"empty content", `{"content":""}`, "string_too_short", "body.content"},
		{"too long", `{"content":"` + strings.Repeat("é", domain.MaxContentLen+1) + `"}`, "string_too_long", "body.content"},
		{"wrong type", `{"content":12}`, "string_type", "body.content"},
		{"bad json", `{"content":`, "json_invalid", "body"},
		{"no body", ``, "missing", "body"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, env := do(t, r, http.MethodPost, "/posts", tc.body, map[string]string{"Content-Type": "application/json"})
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
			}
			if env.Header.ResponseMessage != middleware.MsgValidationError ||
				env.Header.CustomerMessage != middleware.MsgInvalidInputCustomer {
				t.Fatalf("header: %+v", env.Header)
			}
			b := decodeBody[ValidationErrorBody](t, env)
			if len(b.Errors) == 0 {
				t.Fatalf("no errors in %s", env.Body)
			}
			if b.Errors[0].Type != tc.wantType || strings.Join(b.Errors[0].Loc, ".") != tc.wantLoc {
				t.Fatalf("got %+v", b.Errors[0])
			}
		})
	}
}

func TestCreatePost_ContentAtLimitInRunes(t *testing.T) {
	r, _ := newRealRouter(t)
	body := `{"content":"` + strings.Repeat("é", domain.MaxContentLen) + `"}`
	if w, _ := do(t, r, http.MethodPost, "/posts", body, nil); w.Code != http.StatusCreated {
		t.Fatalf("1000 runes must be accepted, status=%d", w.Code)
	}
}

func TestCreatePost_IdempotentReplay(t *testing.T) {
	r, db := newRealRouter(t)
	hdr := map[string]string{middleware.HeaderIdempotencyKey: "create-1"}

	w1, env1 := do(t, r, http.MethodPost, "/posts", `{"content":"once"}`, hdr)
	if w1.Code != http.StatusCreated || w1.Header().Get(middleware.HeaderIdempotentReplayed) != "" {
		t.Fatalf("first: status=%d replay=%q", w1.Code, w1.Header().Get(middleware.HeaderIdempotentReplayed))
	}
	w2, env2 := do(t, r, http.MethodPost, "/posts", `{"content":"once"}`, hdr)
	if w2.Code != http.StatusCreated || w2.Header().Get(middleware.HeaderIdempotentReplayed) != "true" {
		t.Fatalf("second: status=%d replay=%q", w2.Code, w2.Header().Get(middleware.HeaderIdempotentReplayed))
	}
	if decodeBody[PostResponse](t, env1).ID != decodeBody[PostResponse](t, env2).ID {
		t.Fatalf("replay must return the original post")
	}
	var n int64
	db.Model(&domain.Post{}).Count(&n)
	if n != 1 {
		t.Fatalf("want 1 stored post, got %d", n)
	}
}

func TestCreatePost_BadIdempotencyKey_400(t *testing.T) {
	r, _ := newRealRouter(t)
	w, env := do(t, r, http.MethodPost, "/posts", `{"content":"x"}`,
		map[string]string{middleware.HeaderIdempotencyKey: "has space"})
	if w.Code != http.StatusBadRequest || env.Header.ResponseMessage != middleware.MsgInvalidIdempotencyKey {
		t.Fatalf("status=%d header=%+v", w.Code, env.Header)
	}
}

// ---------- list ----------

func TestListPosts_OrderFilterAndShape(t *testing.T) {
	r, db := newRealRouter(t)
	base := time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
	old := seedPost(t, db, "old", strPtr("events"), base)
	mid := seedPost(t, db, "mid", nil, base.Add(time.Minute))
	newest := seedPost(t, db, "new", strPtr("events"), base.Add(2*time.Minute))

	w, env := do(t, r, http.MethodGet, "/posts", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if env.Header.ResponseMessage != MsgPostsRetrieved || env.Header.CustomerMessage != MsgPostsCustomer {
		t.Fatalf("header: %+v", env.Header)
	}
	items := decodeBody[[]PostDetailResponse](t, env)
	if len(items) != 3 || items[0].ID != newest.ID || items[1].ID != mid.ID || items[2].ID != old.ID {
		t.Fatalf("order: %+v", items)
	}

	_, env = do(t, r, http.MethodGet, "/posts?category_id=events", "", nil)
	items = decodeBody[[]PostDetailResponse](t, env)
	if len(items) != 2 {
		t.Fatalf("filter: %+v", items)
	}
	for _, it := range items {
		if it.CategoryID == nil || *it.CategoryID != "events" {
			t.Fatalf("filter leaked %+v", it)
		}
	}

	_, env = do(t, r, http.MethodGet, "/posts?limit=1&offset=1", "", nil)
	items = decodeBody[[]PostDetailResponse](t, env)
	if len(items) != 1 || items[0].ID != mid.ID {
		t.Fatalf("window: %+v", items)
	}

	_, env = do(t, r, http.MethodGet, "/posts?limit=0", "", nil)
	if string(env.Body) != "[]" {
		t.Fatalf("limit=0 must give [], got %s", env.Body)
	}
}

func TestListPosts_DefaultLimitIs10(t *testing.T) {
	r, db := newRealRouter(t)
	base := time.Now().UTC()
	for i := 0; i < 12; i++ {
		seedPost(t, db, fmt.Sprintf("p%d", i), nil, base.Add(time.Duration(i)*time.Second))
	}
	_, env := do(t, r, http.MethodGet, "/posts", "", nil)
	if items := decodeBody[[]PostDetailResponse](t, env); len(items) != 10 {
		t.Fatalf("want 10, got %d", len(items))
	}

	w, env := do(t, r, http.MethodGet, "/posts?limit=0", "", nil)
	if w.Code != http.StatusOK || string(env.Body) != "[]" {
		t.Fatalf("limit=0: status=%d body=%s", w.Code, env.Body)
	}
}

func TestListPosts_CreatedThenListedIsIdentical(t *testing.T) {
	r, _ := newRealRouter(t)
	_, env := do(t, r, http.MethodPost, "/posts", `{"content":"round trip","category_id":"clubs"}`, nil)
	created := decodeBody[PostResponse](t, env)

	_, env = do(t, r, http.MethodGet, "/posts?category_id=clubs", "", nil)
	items := decodeBody[[]PostDetailResponse](t, env)
	if len(items) != 1 {
		t.Fatalf("items: %+v", items)
	}
	got := items[0]
	if got.ID != created.ID || got.Content != created.Content || got.CreatedAt != created.CreatedAt ||
		got.CategoryID == nil || *got.CategoryID != *created.CategoryID || got.Flagged || got.FlagReason != nil {
		t.Fatalf("created %+v listed %+v", created, got)
	}
}

func TestListPosts_QueryValidation(t *testing.T) {
	r, _ := newRealRouter(t)
	cases := []struct {
		query, wantType, wantLoc string
	}{
		{"limit=-1", "greater_than_equal", "query.limit"},
		{"offset=-5", "greater_than_equal", "query.offset"},
		{"limit=abc", "int_parsing", "query.limit"},
		{"limit=5&offset=1.5", "int_parsing", "query.offset"},
	}
	for _, tc := range cases {
		w, env := do(t, r, http.MethodGet, "/posts?"+tc.query, "", nil)
		if w.Code != http.StatusUnprocessableEntity || env.Header.ResponseMessage != middleware.MsgValidationError {
			t.Fatalf("%s: status=%d header=%+v", tc.query, w.Code, env.Header)
		}
		b := decodeBody[ValidationErrorBody](t, env)
		if len(b.Errors) == 0 || b.Errors[0].Type != tc.wantType || strings.Join(b.Errors[0].Loc, ".") != tc.wantLoc {
			t.Fatalf("%s: errors %+v", tc.query, b.Errors)
		}
	}

	_, env := do(t, r, http.MethodGet, "/posts?limit=abc", "", nil)
	if b := decodeBody[ValidationErrorBody](t, env); b.Errors[0].Input != "abc" {
		t.Fatalf("input: %+v", b.Errors[0])
	}
}

func TestListPosts_MaxListLimit(t *testing.T) {
	db := newHandlerDB(t)
	r := newTestRouter(services.NewPostService(db, categories.Bundled()), 50)

	if w, _ := do(t, r, http.MethodGet, "/posts?limit=50", "", nil); w.Code != http.StatusOK {
		t.Fatalf("at cap: status=%d", w.Code)
	}
	w, env := do(t, r, http.MethodGet, "/posts?limit=51", "", nil)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("above cap: status=%d", w.Code)
	}
	b := decodeBody[ValidationErrorBody](t, env)
	if len(b.Errors) != 1 || strings.Join(b.Errors[0].Loc, ".") != "query.limit" || b.Errors[0].Ctx["le"] != "50" {
		t.Fatalf("errors: %+v", b.Errors)
	}
}

func TestListPosts_ETag304AndInvalidation(t *testing.T) {
	r, db := newRealRouter(t)
	p := seedPost(t, db, "tagged", nil, time.Now().UTC())

	w1, _ := do(t, r, http.MethodGet, "/posts", "", nil)
	etag := w1.Header().Get("ETag")
	if !strings.HasPrefix(etag, `W/"posts:`) {
		t.Fatalf("etag: %q", etag)
	}

	w2, _ := do(t, r, http.MethodGet, "/posts", "", map[string]string{"If-None-Match": etag})
	if w2.Code != http.StatusNotModified || w2.Body.Len() != 0 {
		t.Fatalf("want 304 empty, got %d %q", w2.Code, w2.Body.String())
	}

	// a different window is a different representation
	w3, _ := do(t, r, http.MethodGet, "/posts?limit=5", "", map[string]string{"If-None-Match": etag})
	if w3.Code != http.StatusOK {
		t.Fatalf("other window: status=%d", w3.Code)
	}

	// flagging changes the representation
	if w, _ := do(t, r, http.MethodPost, "/posts/"+p.ID+"/flag", `{"reason":"spam"}`, nil); w.Code != http.StatusOK {
		t.Fatalf("flag: %d", w.Code)
	}
	w4, _ := do(t, r, http.MethodGet, "/posts", "", map[string]string{"If-None-Match": etag})
	if w4.Code != http.StatusOK || w4.Header().Get("ETag") == etag {
		t.Fatalf("etag must change after flag: %d %q", w4.Code, w4.Header().Get("ETag"))
	}
}

func TestEtagMatch(t *testing.T) {
	const tag = `W/"posts::0:10:1:0:1"`
	cases := []struct {
		inm  string
		want bool
	}{
		{"", false},
		{tag, true},
		{"*", true},
		{`W/"other", ` + tag, true},
		{`W/"other"`, false},
		{`"posts::0:10:1:0:1"`, false},
	}
	for _, tc := range cases {
		if got := etagMatch(tc.inm, tag); got != tc.want {
			t.Fatalf("etagMatch(%q)=%v want %v", tc.inm, got, tc.want)
		}
	}
}

// ---------- flag ----------

func TestFlagPost_OKThenAlreadyFlagged(t *testing.T) {
	r, db := newRealRouter(t)
	p := seedPost(t, db, "bad", nil, time.Now().UTC())

	w, env := do(t, r, http.MethodPost, "/posts/"+p.ID+"/flag", `{"reason":"spam"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if env.Header.ResponseMessage != MsgPostFlagged || env.Header.CustomerMessage != MsgPostFlaggedCustomer {
		t.Fatalf("header: %+v", env.Header)
	}
	got := decodeBody[PostDetailResponse](t, env)
	if !got.Flagged || got.FlagReason == nil || *got.FlagReason != "spam" || got.ID != p.ID {
		t.Fatalf("body: %+v", got)
	}

	w, env = do(t, r, http.MethodPost, "/posts/"+p.ID+"/flag", `{"reason":"again"}`, nil)
	if w.Code != http.StatusBadRequest || env.Header.ResponseMessage != MsgPostAlreadyFlagged {
		t.Fatalf("second flag: status=%d header=%+v", w.Code, env.Header)
	}

	stored, err := repo.GetPost(context.Background(), db, p.ID)
	if err != nil || stored.FlagReason == nil || *stored.FlagReason != "spam" {
		t.Fatalf("reason must stay from the first flag: %+v err=%v", stored, err)
	}
}

func TestFlagPost_NotFound(t *testing.T) {
	r, _ := newRealRouter(t)
	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		w, env := do(t, r, http.MethodPost, "/posts/"+id+"/flag", `{"reason":"spam"}`, nil)
		if w.Code != http.StatusNotFound || env.Header.ResponseMessage != MsgPostNotFound {
			t.Fatalf("%s: status=%d header=%+v", id, w.Code, env.Header)
		}
	}
}

func TestFlagPost_ReasonValidation(t *testing.T) {
	r, db := newRealRouter(t)
	p := seedPost(t, db, "x", nil, time.Now().UTC())

	cases := []struct{ body, wantType string }{
		{`{}`, "missing"},
		{`{"reason":""}`, "string_too_short"},
		{`{"reason":"` + strings.Repeat("r", domain.MaxFlagReasonLen+1) + `"}`, "string_too_long"},
	}
	for _, tc := range cases {
		w, env := do(t, r, http.MethodPost, "/posts/"+p.ID+"/flag", tc.body, nil)
		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("%s: status=%d", tc.body, w.Code)
		}
		if b := decodeBody[ValidationErrorBody](t, env); b.Errors[0].Type != tc.wantType {
			t.Fatalf("%s: %+v", tc.body, b.Errors[0])
		}
	}
}

func TestFlagPost_ConcurrentOnlyOneWins(t *testing.T) {
	// File-backed so the WAL and busy_timeout pragmas serialize writers.
	db, err := repo.OpenSQLite(filepath.Join(t.TempDir(), "flag.db"), false)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	r := newTestRouter(services.NewPostService(db, categories.Bundled()), 0)
	p := seedPost(t, db, "race", nil, time.Now().UTC())

	const n = 8
	codes := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := httptest.NewRequest(http.MethodPost, "/posts/"+p.ID+"/flag",
				strings.NewReader(fmt.Sprintf(`{"reason":"r%d"}`, i)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			codes <- w.Code
		}(i)
	}
	wg.Wait()
	close(codes)

	var okCount, already int
	for code := range codes {
		switch code {
		case http.StatusOK:
			okCount++
		case http.StatusBadRequest:
			already++
		}
	}
	if okCount != 1 || already != n-1 {
		t.Fatalf("ok=%d already=%d", okCount, already)
	}
}

// ---------- service failures ----------

type failingSvc struct{ err error }

func (f failingSvc) ListCategories() []categories.Category { return nil }
func (f failingSvc) Create(context.Context, services.CreatePostInput) (*domain.Post, bool, error) {
	return nil, false, f.err
}
func (f failingSvc) List(context.Context, string, int, int) ([]domain.Post, error) {
	return nil, f.err
}
func (f failingSvc) ListStats(context.Context, string) (int64, int64, *time.Time, error) {
	return 0, 0, nil, f.err
}
func (f failingSvc) Flag(context.Context, string, string) (*domain.Post, error) {
	return nil, f.err
}

func TestHandlers_DatastoreErrorTranslated(t *testing.T) {
	r := newTestRouter(failingSvc{err: apierr.Datastore("list posts", errors.New("no such table: posts"))}, 0)

	w, env := do(t, r, http.MethodGet, "/posts", "", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	if w.Header().Get("ETag") != "" {
		t.Fatalf("no etag when stats fail")
	}
	if env.Header.ResponseMessage != middleware.MsgDatabaseError {
		t.Fatalf("header: %+v", env.Header)
	}
	body := decodeBody[map[string]string](t, env)
	if body["error"] != "no such table: posts" {
		t.Fatalf("body: %+v", body)
	}
}

func TestHandlers_UnknownErrorIsGeneric500(t *testing.T) {
	r := newTestRouter(failingSvc{err: errors.New("secret detail")}, 0)

	w, env := do(t, r, http.MethodPost, "/posts/"+uuid.NewString()+"/flag", `{"reason":"x"}`, nil)
	if w.Code != http.StatusInternalServerError || env.Header.ResponseMessage != apierr.MsgInternalServerError {
		t.Fatalf("status=%d header=%+v", w.Code, env.Header)
	}
	if strings.Contains(w.Body.String(), "secret detail") {
		t.Fatalf("raw error leaked: %s", w.Body.String())
	}
}
