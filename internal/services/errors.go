// Package services defines the business logic for posts. This file
// centralizes service-level error values so that they can be consistently
// returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

var (
	// ErrCategoryNotFound is returned when a post names a category outside
	// the static category set.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrPostNotFound indicates that the requested post does not exist. A
	// post id that is not a UUID can never exist and yields the same error.
	ErrPostNotFound = errors.New("post not found")

	// ErrPostAlreadyFlagged is returned when flagging a post that is already
	// flagged. A post is flagged at most once.
	ErrPostAlreadyFlagged = errors.New("post already flagged")
)
