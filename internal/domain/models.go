// Package domain defines the persistence models of the posting service. These
// types are mapped with GORM and form the core data layer of the application.
package domain

import "time"

// Post limits enforced at the validation boundary.
const (
	MaxContentLen    = 1000
	MaxFlagReasonLen = 255
	MaxCategoryIDLen = 64
)

// Post is an anonymous text post, optionally tagged with a category.
//
// Fields:
//   - ID: UUIDv4 primary key (char(36)), generated server-side, immutable.
//   - Content: the post text (1..1000 runes).
//   - CategoryID: optional category identifier. Not a foreign key; it is
//     checked against the static category set when the post is created.
//   - CreatedAt: UTC creation time, truncated to microseconds, immutable.
//   - Flagged / FlagReason: moderation state. FlagReason is non-nil exactly
//     when Flagged is true and both change together, once.
//
// The validate tags are checked by the service before every insert.
type Post struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"            validate:"required,uuid4"`
	Content    string    `json:"content"     gorm:"type:text;not null"                  validate:"required,max=1000"`
	CategoryID *string   `json:"category_id" gorm:"type:varchar(64);index:idx_posts_category" validate:"omitempty,min=1,max=64"`
	CreatedAt  time.Time `json:"created_at"  gorm:"not null;index:idx_posts_created"    validate:"required"`
	Flagged    bool      `json:"flagged"     gorm:"not null;default:false"`
	FlagReason *string   `json:"flag_reason" gorm:"type:varchar(255)"                   validate:"omitempty,min=1,max=255"`
}

// TableName returns the database table name for Post.
func (Post) TableName() string { return "posts" }
