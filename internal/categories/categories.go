// Package categories holds the static category set posts may be tagged with.
//
// The set is loaded once at startup, either from the bundled categories.json
// or from a file on disk, and is read-only afterwards. A Store is therefore
// safe for concurrent use without locking.
package categories

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/tbourn/campus-pulse/internal/domain"
)

//go:embed categories.json
var bundled []byte

// Category is one entry of the category set. Only ID is used by the post
// rules; the rest is display data handed to clients as-is.
type Category struct {
	ID          string `json:"id" example:"academics"`
	Name        string `json:"name" example:"Academics"`
	Slug        string `json:"slug" example:"academics"`
	Description string `json:"description" example:"Courses, exams, professors and study life."`
	Color       string `json:"color" example:"#3B82F6"`
	Order       int    `json:"order" example:"1"`
}

// Store is an immutable, ordered category set with lookup by id.
type Store struct {
	list []Category
	byID map[string]Category
}

// ErrEmptyID is returned when a category in the source has a blank id.
var ErrEmptyID = errors.New("category id must not be empty")

// Load reads the category set from path. An empty path selects the bundled
// set.
func Load(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return NewFromReader(bytes.NewReader(bundled))
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read categories: %w", err)
	}
	return NewFromReader(bytes.NewReader(b))
}

// Bundled returns the store built from the embedded categories.json.
func Bundled() *Store {
	s, err := NewFromReader(bytes.NewReader(bundled))
	if err != nil {
		panic(fmt.Sprintf("bundled categories are invalid: %v", err))
	}
	return s
}

// NewFromReader decodes a JSON array of categories from r.
func NewFromReader(r io.Reader) (*Store, error) {
	var list []Category
	if err := json.NewDecoder(r).Decode(&list); err != nil {
		return nil, fmt.Errorf("decode categories: %w", err)
	}
	return New(list)
}

// New builds a Store from list, keeping its order. Ids must be non-empty,
// unique and fit the post category column.
func New(list []Category) (*Store, error) {
	s := &Store{
		list: make([]Category, 0, len(list)),
		byID: make(map[string]Category, len(list)),
	}
	for _, c := range list {
		if strings.TrimSpace(c.ID) == "" {
			return nil, ErrEmptyID
		}
		if len(c.ID) > domain.MaxCategoryIDLen {
			return nil, fmt.Errorf("category id %q exceeds %d bytes", c.ID, domain.MaxCategoryIDLen)
		}
		if _, dup := s.byID[c.ID]; dup {
			return nil, fmt.Errorf("duplicate category id %q", c.ID)
		}
		s.list = append(s.list, c)
		s.byID[c.ID] = c
	}
	return s, nil
}

// All returns a copy of the category list in source order.
func (s *Store) All() []Category {
	out := make([]Category, len(s.list))
	copy(out, s.list)
	return out
}

// Get looks up a category by exact id.
func (s *Store) Get(id string) (Category, bool) {
	c, ok := s.byID[id]
	return c, ok
}

// Len returns the number of categories.
func (s *Store) Len() int { return len(s.list) }
