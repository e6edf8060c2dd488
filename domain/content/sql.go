package content

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// SQLStore is the production ContentStore adapter backed by MySQL
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore creates a SQLStore on the given connection pool
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func filterWhere(f Filter) (string, []interface{}) {
	where := "1 = 1"
	args := []interface{}{}
	if f.PublishedOnly {
		where += " AND published = ?"
		args = append(args, true)
	}
	if f.PromotedOnly {
		where += " AND promoted = ?"
		args = append(args, true)
	}
	return where, args
}

func (s *SQLStore) Query(ctx context.Context, f Filter, offset, limit int) ([]int64, error) {
	where, args := filterWhere(f)
	query := "SELECT id FROM content_items WHERE " + where + " ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	ids := []int64{}
	if err := s.db.SelectContext(ctx, &ids, query, args...); err != nil {
		return nil, err
	}
	return ids, nil
}

func (s *SQLStore) Count(ctx context.Context, f Filter) (int, error) {
	where, args := filterWhere(f)

	var total int
	if err := s.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM content_items WHERE "+where, args...); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *SQLStore) Load(ctx context.Context, id int64) (*ContentItem, error) {
	var item ContentItem
	err := s.db.GetContext(ctx, &item, "SELECT * FROM content_items WHERE id = ?", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *SQLStore) LoadMany(ctx context.Context, ids []int64) ([]ContentItem, error) {
	if len(ids) == 0 {
		return []ContentItem{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM content_items WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}

	items := []ContentItem{}
	if err := s.db.SelectContext(ctx, &items, s.db.Rebind(query), args...); err != nil {
		return nil, err
	}

	// IN(...) loses the requested order; restore creation-descending via ids
	byID := make(map[int64]ContentItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	ordered := make([]ContentItem, 0, len(items))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			ordered = append(ordered, it)
		}
	}
	return ordered, nil
}

func (s *SQLStore) Create(ctx context.Context, draft Draft) (*ContentItem, error) {
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	itemUUID := uuid.New().String()

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO content_items (uuid, title, body, content_type, published, promoted, owner_id, created_at, changed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, itemUUID, draft.Title, draft.Body, draft.Type, draft.Published, draft.Promoted, draft.OwnerID, now, now)
	if err != nil {
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	return &ContentItem{
		ID:        id,
		UUID:      itemUUID,
		Title:     draft.Title,
		Body:      draft.Body,
		Type:      draft.Type,
		Published: draft.Published,
		Promoted:  draft.Promoted,
		OwnerID:   draft.OwnerID,
		CreatedAt: now,
		ChangedAt: now,
	}, nil
}

func (s *SQLStore) Update(ctx context.Context, id int64, mutate func(*ContentItem), rev *RevisionLog) (*ContentItem, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var item ContentItem
	err = tx.GetContext(ctx, &item, "SELECT * FROM content_items WHERE id = ? FOR UPDATE", id)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	mutate(&item)

	// ChangedAt is monotonically non-decreasing across updates
	now := time.Now().UTC()
	if now.After(item.ChangedAt) {
		item.ChangedAt = now
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE content_items
		SET title = ?, body = ?, content_type = ?, published = ?, promoted = ?, changed_at = ?
		WHERE id = ?
	`, item.Title, item.Body, item.Type, item.Published, item.Promoted, item.ChangedAt, item.ID)
	if err != nil {
		return nil, err
	}

	if rev != nil {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO content_revisions (item_id, editor_id, log_message, created_at)
			VALUES (?, ?, ?, ?)
		`, item.ID, rev.EditorID, rev.LogMessage, item.ChangedAt)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &item, nil
}

// CanView implements the access predicate: published items are public,
// unpublished ones are visible to their owner and to editors/admins only.
func (s *SQLStore) CanView(item *ContentItem, actor Actor) bool {
	if item.Published {
		return true
	}
	if actor.Anonymous() {
		return false
	}
	return actor.ID == item.OwnerID || actor.Role <= RoleEditor
}
