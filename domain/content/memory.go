package content

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory ContentStore for tests and local development
// (STORE_DRIVER=memory). Semantics match SQLStore, including revision
// append and ChangedAt monotonicity.
type MemoryStore struct {
	mu        sync.Mutex
	seq       int64
	items     map[int64]*ContentItem
	revisions map[int64][]Revision

	// ViewFunc overrides the access predicate when set. Tests use it to
	// exercise restrictive permission configurations.
	ViewFunc func(item *ContentItem, actor Actor) bool
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items:     make(map[int64]*ContentItem),
		revisions: make(map[int64][]Revision),
	}
}

func matches(item *ContentItem, f Filter) bool {
	if f.PublishedOnly && !item.Published {
		return false
	}
	if f.PromotedOnly && !item.Promoted {
		return false
	}
	return true
}

// sortedIDs returns matching ids by creation time descending, newest first
func (m *MemoryStore) sortedIDs(f Filter) []int64 {
	matched := make([]*ContentItem, 0, len(m.items))
	for _, item := range m.items {
		if matches(item, f) {
			matched = append(matched, item)
		}
	}
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].CreatedAt.After(matched[j].CreatedAt)
		}
		return matched[i].ID > matched[j].ID
	})
	ids := make([]int64, len(matched))
	for i, item := range matched {
		ids[i] = item.ID
	}
	return ids
}

func (m *MemoryStore) Query(ctx context.Context, f Filter, offset, limit int) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.sortedIDs(f)
	if offset >= len(ids) {
		return []int64{}, nil
	}
	end := offset + limit
	if end > len(ids) {
		end = len(ids)
	}
	return ids[offset:end], nil
}

func (m *MemoryStore) Count(ctx context.Context, f Filter) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sortedIDs(f)), nil
}

func (m *MemoryStore) Load(ctx context.Context, id int64) (*ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}
	clone := *item
	return &clone, nil
}

func (m *MemoryStore) LoadMany(ctx context.Context, ids []int64) ([]ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items := make([]ContentItem, 0, len(ids))
	for _, id := range ids {
		if item, ok := m.items[id]; ok {
			items = append(items, *item)
		}
	}
	return items, nil
}

func (m *MemoryStore) Create(ctx context.Context, draft Draft) (*ContentItem, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	now := time.Now().UTC()
	item := &ContentItem{
		ID:        m.seq,
		UUID:      uuid.New().String(),
		Title:     draft.Title,
		Body:      draft.Body,
		Type:      draft.Type,
		Published: draft.Published,
		Promoted:  draft.Promoted,
		OwnerID:   draft.OwnerID,
		CreatedAt: now,
		ChangedAt: now,
	}
	m.items[item.ID] = item

	clone := *item
	return &clone, nil
}

func (m *MemoryStore) Update(ctx context.Context, id int64, mutate func(*ContentItem), rev *RevisionLog) (*ContentItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	item, ok := m.items[id]
	if !ok {
		return nil, ErrNotFound
	}

	mutate(item)

	now := time.Now().UTC()
	if now.After(item.ChangedAt) {
		item.ChangedAt = now
	}

	if rev != nil {
		m.revisions[id] = append(m.revisions[id], Revision{
			ID:         int64(len(m.revisions[id]) + 1),
			ItemID:     id,
			EditorID:   rev.EditorID,
			LogMessage: rev.LogMessage,
			CreatedAt:  item.ChangedAt,
		})
	}

	clone := *item
	return &clone, nil
}

func (m *MemoryStore) CanView(item *ContentItem, actor Actor) bool {
	if m.ViewFunc != nil {
		return m.ViewFunc(item, actor)
	}
	if item.Published {
		return true
	}
	if actor.Anonymous() {
		return false
	}
	return actor.ID == item.OwnerID || actor.Role <= RoleEditor
}

// Revisions returns the revision history for an item, oldest first
func (m *MemoryStore) Revisions(id int64) []Revision {
	m.mu.Lock()
	defer m.mu.Unlock()

	revs := make([]Revision, len(m.revisions[id]))
	copy(revs, m.revisions[id])
	return revs
}

// Len returns the number of stored items
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}
