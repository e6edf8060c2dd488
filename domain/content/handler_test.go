package content

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
)

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func asEditor(c echo.Context) {
	c.Set("user_id", int64(42))
	c.Set("email", "editor@intelligensi.ai")
	c.Set("role_id", RoleEditor)
}

func mustCreate(t *testing.T, mem *MemoryStore, draft Draft) *ContentItem {
	t.Helper()
	item, err := mem.Create(context.Background(), draft)
	if err != nil {
		t.Fatalf("create %q: %v", draft.Title, err)
	}
	return item
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response: %v (%s)", err, rec.Body.String())
	}
}

// --- homepage update ---

func TestHomepageUpdateNoCandidate(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)

	// Published but not promoted items are never homepage candidates
	mustCreate(t, mem, Draft{Title: "About", Type: TypePage, Published: true})

	c, rec := newTestContext(t, http.MethodPost, "/homepage-update", `{"updateText":"hello"}`)
	asEditor(c)

	if err := HomepageUpdateHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if got := len(mem.Revisions(1)); got != 0 {
		t.Fatalf("expected no revisions on 404, got %d", got)
	}
}

func TestHomepageUpdatePrependsAndRevisions(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)

	mustCreate(t, mem, Draft{Title: "Old frontpage", Body: "<p>old</p>", Type: TypePage, Published: true, Promoted: true})
	newest := mustCreate(t, mem, Draft{Title: "Frontpage", Body: "<p>existing</p>", Type: TypePage, Published: true, Promoted: true})

	c, rec := newTestContext(t, http.MethodPost, "/homepage-update", `{"updateText":"breaking news"}`)
	asEditor(c)

	if err := HomepageUpdateHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp HomepageUpdateResponse
	decodeBody(t, rec, &resp)
	if resp.ID != newest.ID {
		t.Fatalf("updated item %d, want newest promoted item %d", resp.ID, newest.ID)
	}

	updated, err := mem.Load(context.Background(), newest.ID)
	if err != nil {
		t.Fatalf("load updated item: %v", err)
	}
	if !strings.HasPrefix(updated.Body, "<p><strong>breaking news</strong></p>") {
		t.Fatalf("body not prefixed with bold paragraph: %q", updated.Body)
	}
	if !strings.HasSuffix(updated.Body, "<p>existing</p>") {
		t.Fatalf("original body not preserved as suffix: %q", updated.Body)
	}
	if updated.ChangedAt.Before(newest.ChangedAt) {
		t.Fatalf("changedAt moved backwards: %v -> %v", newest.ChangedAt, updated.ChangedAt)
	}

	revs := mem.Revisions(newest.ID)
	if len(revs) != 1 {
		t.Fatalf("expected 1 revision, got %d", len(revs))
	}
	if revs[0].EditorID != 42 {
		t.Fatalf("revision editor = %d, want 42", revs[0].EditorID)
	}
	if revs[0].LogMessage == "" {
		t.Fatal("revision log message is empty")
	}

	// A second update appends, never rewrites, the history
	c2, _ := newTestContext(t, http.MethodPost, "/homepage-update", `{"updateText":"again"}`)
	asEditor(c2)
	if err := HomepageUpdateHandler(c2); err != nil {
		t.Fatalf("second update: %v", err)
	}
	if got := len(mem.Revisions(newest.ID)); got != 2 {
		t.Fatalf("expected 2 revisions after second update, got %d", got)
	}
}

func TestHomepageUpdateMissingText(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)
	mustCreate(t, mem, Draft{Title: "Frontpage", Type: TypePage, Published: true, Promoted: true})

	for _, body := range []string{`{}`, `{"updateText":""}`, `{"updateText":"   "}`} {
		c, rec := newTestContext(t, http.MethodPost, "/homepage-update", body)
		asEditor(c)
		if err := HomepageUpdateHandler(c); err != nil {
			t.Fatalf("handler error: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body %s: status = %d, want 400", body, rec.Code)
		}
	}

	if got := len(mem.Revisions(1)); got != 0 {
		t.Fatalf("store mutated on validation failure: %d revisions", got)
	}
}

func TestHomepageUpdateStripsUnsafeMarkup(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)
	item := mustCreate(t, mem, Draft{Title: "Frontpage", Body: "<p>base</p>", Type: TypePage, Published: true, Promoted: true})

	c, rec := newTestContext(t, http.MethodPost, "/homepage-update",
		`{"updateText":"<script>alert(1)</script>safe <em>text</em>"}`)
	asEditor(c)

	if err := HomepageUpdateHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	updated, _ := mem.Load(context.Background(), item.ID)
	if strings.Contains(updated.Body, "<script>") {
		t.Fatalf("script tag survived sanitization: %q", updated.Body)
	}
	if !strings.Contains(updated.Body, "safe <em>text</em>") {
		t.Fatalf("safe markup lost: %q", updated.Body)
	}
}

// --- bulk export ---

func seedPublished(t *testing.T, mem *MemoryStore, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		mustCreate(t, mem, Draft{
			Title:     fmt.Sprintf("Item %d", i),
			Body:      fmt.Sprintf("<p>body %d</p>", i),
			Type:      TypeArticle,
			Published: true,
		})
	}
}

func TestBulkExportPagination(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)
	viper.Set("SITE_BASE_URL", "https://example.org")
	seedPublished(t, mem, 25)

	c, rec := newTestContext(t, http.MethodGet, "/bulk-export?page=2&limit=10", "")
	if err := BulkExportHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ExportResponse
	decodeBody(t, rec, &resp)

	want := Pagination{Total: 25, Page: 2, Limit: 10, Pages: 3}
	if resp.Pagination != want {
		t.Fatalf("pagination = %+v, want %+v", resp.Pagination, want)
	}
	if len(resp.Data) != 10 {
		t.Fatalf("len(data) = %d, want 10", len(resp.Data))
	}

	// Creation-descending: page 2 of 25 holds the 11th..20th newest,
	// i.e. ids 15 down to 6.
	if resp.Data[0].ID != 15 || resp.Data[9].ID != 6 {
		t.Fatalf("page window = [%d..%d], want [15..6]", resp.Data[0].ID, resp.Data[9].ID)
	}

	if got := rec.Header().Get("X-Total-Count"); got != "25" {
		t.Fatalf("X-Total-Count = %q, want 25", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "public, max-age=300" {
		t.Fatalf("Cache-Control = %q", got)
	}
	if !strings.Contains(resp.Data[0].CanonicalURL, "https://example.org/content/") {
		t.Fatalf("canonicalUrl = %q", resp.Data[0].CanonicalURL)
	}
}

func TestBulkExportDefaultsAndClamps(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)
	seedPublished(t, mem, 5)

	cases := []struct {
		target    string
		wantPage  int
		wantLimit int
	}{
		{"/bulk-export", 1, 20},
		{"/bulk-export?page=0&limit=0", 1, 1},
		{"/bulk-export?page=-3&limit=500", 1, 50},
		{"/bulk-export?page=abc&limit=xyz", 1, 20},
	}

	for _, tc := range cases {
		c, rec := newTestContext(t, http.MethodGet, tc.target, "")
		if err := BulkExportHandler(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.target, err)
		}
		var resp ExportResponse
		decodeBody(t, rec, &resp)
		if resp.Pagination.Page != tc.wantPage || resp.Pagination.Limit != tc.wantLimit {
			t.Fatalf("%s: page/limit = %d/%d, want %d/%d",
				tc.target, resp.Pagination.Page, resp.Pagination.Limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestBulkExportPastEndReturnsEmptyPage(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)
	seedPublished(t, mem, 3)

	c, rec := newTestContext(t, http.MethodGet, "/bulk-export?page=99&limit=10", "")
	if err := BulkExportHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ExportResponse
	decodeBody(t, rec, &resp)
	if len(resp.Data) != 0 {
		t.Fatalf("expected empty page, got %d items", len(resp.Data))
	}
	if resp.Pagination.Total != 3 || resp.Pagination.Pages != 1 {
		t.Fatalf("pagination = %+v", resp.Pagination)
	}
}

func TestBulkExportExcludesForbiddenItems(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)
	seedPublished(t, mem, 4)

	// Deny everything with an even id regardless of published state
	mem.ViewFunc = func(item *ContentItem, actor Actor) bool {
		return item.ID%2 == 1
	}

	c, rec := newTestContext(t, http.MethodGet, "/bulk-export?limit=10", "")
	if err := BulkExportHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite exclusions", rec.Code)
	}

	var resp ExportResponse
	decodeBody(t, rec, &resp)
	if len(resp.Data) != 2 {
		t.Fatalf("len(data) = %d, want 2 viewable items", len(resp.Data))
	}
	for _, item := range resp.Data {
		if item.ID%2 == 0 {
			t.Fatalf("forbidden item %d leaked into export", item.ID)
		}
	}
}

// --- bulk import ---

func TestBulkImportPartialSuccess(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)

	c, rec := newTestContext(t, http.MethodPost, "/bulk-import", `[{"title":"A"},{"title":""}]`)
	asEditor(c)

	if err := BulkImportHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("status = %d, want 207", rec.Code)
	}

	var resp ImportResponse
	decodeBody(t, rec, &resp)
	if resp.Count != 1 || resp.ErrorCount != 1 {
		t.Fatalf("count/errorCount = %d/%d, want 1/1", resp.Count, resp.ErrorCount)
	}
	if resp.Count+resp.ErrorCount != 2 {
		t.Fatalf("created + errors = %d, want batch size 2", resp.Count+resp.ErrorCount)
	}
	if resp.Errors[0].Index != 1 {
		t.Fatalf("error index = %d, want 1", resp.Errors[0].Index)
	}
	if mem.Len() != 1 {
		t.Fatalf("store has %d items, want 1", mem.Len())
	}
}

func TestBulkImportAllSucceed(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)

	c, rec := newTestContext(t, http.MethodPost, "/bulk-import",
		`[{"title":"One","body":"<p>b1</p>"},{"title":"Two","type":"article"}]`)
	asEditor(c)

	if err := BulkImportHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp ImportResponse
	decodeBody(t, rec, &resp)
	if resp.Count != 2 || resp.ErrorCount != 0 {
		t.Fatalf("count/errorCount = %d/%d, want 2/0", resp.Count, resp.ErrorCount)
	}
	for _, created := range resp.Created {
		if created.UUID == "" {
			t.Fatalf("created item %d has no uuid", created.ID)
		}
	}

	one, _ := mem.Load(context.Background(), resp.Created[0].ID)
	if !one.Published {
		t.Fatal("imported item not published")
	}
	if one.OwnerID != 42 {
		t.Fatalf("owner = %d, want acting user 42", one.OwnerID)
	}
	if one.Type != TypePage {
		t.Fatalf("default type = %q, want %q", one.Type, TypePage)
	}

	two, _ := mem.Load(context.Background(), resp.Created[1].ID)
	if two.Type != TypeArticle {
		t.Fatalf("type = %q, want %q", two.Type, TypeArticle)
	}
}

func TestBulkImportUnknownType(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)

	c, rec := newTestContext(t, http.MethodPost, "/bulk-import",
		`[{"title":"Good"},{"title":"Bad","type":"widget"}]`)
	asEditor(c)

	if err := BulkImportHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusMultiStatus {
		t.Fatalf("status = %d, want 207", rec.Code)
	}

	var resp ImportResponse
	decodeBody(t, rec, &resp)
	if resp.Count != 1 || resp.ErrorCount != 1 {
		t.Fatalf("count/errorCount = %d/%d, want 1/1", resp.Count, resp.ErrorCount)
	}
	if !strings.Contains(resp.Errors[0].Error, "unknown content type") {
		t.Fatalf("error = %q", resp.Errors[0].Error)
	}
}

func TestBulkImportAllFail(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)

	c, rec := newTestContext(t, http.MethodPost, "/bulk-import", `[{"title":""},{"body":"<p>no title</p>"}]`)
	asEditor(c)

	if err := BulkImportHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 when nothing was created", rec.Code)
	}

	var resp ImportResponse
	decodeBody(t, rec, &resp)
	if resp.Count != 0 || resp.ErrorCount != 2 {
		t.Fatalf("count/errorCount = %d/%d, want 0/2", resp.Count, resp.ErrorCount)
	}
	if mem.Len() != 0 {
		t.Fatalf("store mutated: %d items", mem.Len())
	}
}

func TestBulkImportOversizedBatch(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)

	items := make([]string, 51)
	for i := range items {
		items[i] = fmt.Sprintf(`{"title":"Item %d"}`, i)
	}
	payload := "[" + strings.Join(items, ",") + "]"

	c, rec := newTestContext(t, http.MethodPost, "/bulk-import", payload)
	asEditor(c)

	if err := BulkImportHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if mem.Len() != 0 {
		t.Fatalf("oversized batch mutated the store: %d items", mem.Len())
	}

	var errResp struct {
		Error string `json:"error"`
	}
	decodeBody(t, rec, &errResp)
	if errResp.Error != "VALIDATION_BATCH_TOO_LARGE" {
		t.Fatalf("error code = %q", errResp.Error)
	}
}

func TestBulkImportMalformedPayload(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)

	c, rec := newTestContext(t, http.MethodPost, "/bulk-import", `{"title":"not an array"}`)
	asEditor(c)

	if err := BulkImportHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if mem.Len() != 0 {
		t.Fatalf("store mutated on malformed payload")
	}
}

func TestBulkImportEmptyBatch(t *testing.T) {
	mem := NewMemoryStore()
	UseStore(mem)

	c, rec := newTestContext(t, http.MethodPost, "/bulk-import", `[]`)
	asEditor(c)

	if err := BulkImportHandler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 for empty batch", rec.Code)
	}

	var resp ImportResponse
	decodeBody(t, rec, &resp)
	if resp.Count != 0 || resp.ErrorCount != 0 {
		t.Fatalf("count/errorCount = %d/%d, want 0/0", resp.Count, resp.ErrorCount)
	}
}
