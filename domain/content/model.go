package content

import (
	"time"
)

// ContentItem represents a row in the content_items table
type ContentItem struct {
	ID        int64     `db:"id" json:"id"`
	UUID      string    `db:"uuid" json:"uuid"`
	Title     string    `db:"title" json:"title"`
	Body      string    `db:"body" json:"body"`
	Type      string    `db:"content_type" json:"type"`
	Published bool      `db:"published" json:"published"`
	Promoted  bool      `db:"promoted" json:"promoted"`
	OwnerID   int64     `db:"owner_id" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	ChangedAt time.Time `db:"changed_at" json:"changedAt"`
}

// Revision is one entry in an item's append-only edit history
type Revision struct {
	ID         int64     `db:"id" json:"id"`
	ItemID     int64     `db:"item_id" json:"item_id"`
	EditorID   int64     `db:"editor_id" json:"editor_id"`
	LogMessage string    `db:"log_message" json:"log_message"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Draft holds the fields a caller supplies when creating an item
type Draft struct {
	Title     string
	Body      string
	Type      string
	Published bool
	Promoted  bool
	OwnerID   int64
}

// RevisionLog describes the revision to append alongside an update.
// A nil RevisionLog means the update is not revisioned.
type RevisionLog struct {
	EditorID   int64
	LogMessage string
}

// Actor roles, lower value = more privilege
const (
	RoleAdmin  int64 = 0
	RoleEditor int64 = 1
	RoleViewer int64 = 2
)

// Actor identifies the requesting user for access checks.
// The zero value (ID 0) is the anonymous actor.
type Actor struct {
	ID   int64
	Role int64
}

// Anonymous reports whether the actor carries no authenticated identity
func (a Actor) Anonymous() bool {
	return a.ID == 0
}

// Registered content types
const (
	TypePage    = "page"
	TypeArticle = "article"
	TypeLanding = "landing_page"
)

// ValidContentTypes is a map of registered content types for validation
var ValidContentTypes = map[string]bool{
	TypePage:    true,
	TypeArticle: true,
	TypeLanding: true,
}

// --- Request / response shapes ---

// HomepageUpdateRequest is the POST /homepage-update payload
type HomepageUpdateRequest struct {
	UpdateText string `json:"updateText"`
}

// HomepageUpdateResponse is the POST /homepage-update success body
type HomepageUpdateResponse struct {
	Message   string    `json:"message"`
	ID        int64     `json:"id"`
	ChangedAt time.Time `json:"changedAt"`
}

// ExportItem is one exported content item
type ExportItem struct {
	ID           int64     `json:"id"`
	UUID         string    `json:"uuid"`
	Title        string    `json:"title"`
	CreatedAt    time.Time `json:"createdAt"`
	ChangedAt    time.Time `json:"changedAt"`
	Published    bool      `json:"published"`
	Type         string    `json:"type"`
	Body         string    `json:"body"`
	CanonicalURL string    `json:"canonicalUrl"`
}

// Pagination describes the exported page
type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

// ExportResponse is the GET /bulk-export body
type ExportResponse struct {
	Data       []ExportItem `json:"data"`
	Pagination Pagination   `json:"pagination"`
}

// ImportItem is one element of the POST /bulk-import array
type ImportItem struct {
	Title string `json:"title"`
	Body  string `json:"body,omitempty"`
	Type  string `json:"type,omitempty"`
}

// ImportedItem records a successfully created item
type ImportedItem struct {
	ID    int64  `json:"id"`
	UUID  string `json:"uuid"`
	Title string `json:"title"`
}

// ImportError records a per-item failure, keyed by the caller's index
type ImportError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// ImportResponse is the POST /bulk-import body
type ImportResponse struct {
	Created    []ImportedItem `json:"created"`
	Count      int            `json:"count"`
	Errors     []ImportError  `json:"errors,omitempty"`
	ErrorCount int            `json:"errorCount,omitempty"`
}
