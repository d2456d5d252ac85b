// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate queries used for
// conditional responses (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/campus-pulse/internal/apierr"
)

// PostsStats returns aggregate metadata for the posts matching categoryID
// (all posts when empty): the row count, how many of them are flagged and the
// newest CreatedAt. When no rows match, count is 0 and maxCreatedAt is nil.
//
// Together these change whenever a post is created or flagged, which is all
// the mutation the table ever sees.
func PostsStats(ctx context.Context, db *gorm.DB, categoryID string) (count, flagged int64, maxCreatedAt *time.Time, err error) {
	base := db.WithContext(ctx)

	if count, err = CountPosts(ctx, db, categoryID); err != nil {
		return 0, 0, nil, err
	}
	if count == 0 {
		return 0, 0, nil, nil
	}
	if err = postsScope(base, categoryID).Where("flagged = ?", true).Count(&flagged).Error; err != nil {
		return 0, 0, nil, apierr.Datastore("posts stats", err)
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = postsScope(base, categoryID).Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, 0, nil, apierr.Datastore("posts stats", err)
	}
	return count, flagged, &row.CreatedAt, nil
}
