package content

import (
	"context"
	"errors"
)

// Store errors. Handlers translate these into the HTTP error taxonomy.
var (
	// ErrNotFound is returned when no item matches the given id
	ErrNotFound = errors.New("content item not found")
	// ErrInvalidDraft is returned when a draft fails validation
	ErrInvalidDraft = errors.New("invalid content draft")
)

// Filter narrows Query and Count to items with the given flags set
type Filter struct {
	PublishedOnly bool
	PromotedOnly  bool
}

// ContentStore is the capability the handlers program against. The
// production adapter is SQLStore; MemoryStore backs tests and dev mode.
// Query results are always sorted by creation time descending.
type ContentStore interface {
	Query(ctx context.Context, f Filter, offset, limit int) ([]int64, error)
	Count(ctx context.Context, f Filter) (int, error)
	Load(ctx context.Context, id int64) (*ContentItem, error)
	LoadMany(ctx context.Context, ids []int64) ([]ContentItem, error)
	Create(ctx context.Context, draft Draft) (*ContentItem, error)
	// Update applies mutate to the stored item. When rev is non-nil a
	// Revision is appended in the same transaction. ChangedAt never
	// moves backwards.
	Update(ctx context.Context, id int64, mutate func(*ContentItem), rev *RevisionLog) (*ContentItem, error)
	CanView(item *ContentItem, actor Actor) bool
}

var store ContentStore

// UseStore installs the ContentStore the handlers operate on.
// Called once at startup (and by tests to swap in a MemoryStore).
func UseStore(s ContentStore) {
	store = s
}

// validateDraft enforces the invariants shared by both store adapters
func validateDraft(d Draft) error {
	if d.Title == "" {
		return ErrInvalidDraft
	}
	if !ValidContentTypes[d.Type] {
		return ErrInvalidDraft
	}
	return nil
}
