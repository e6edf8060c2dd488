package content

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/intelligensi-ai/intelligensi-bridge/config"
	"github.com/intelligensi-ai/intelligensi-bridge/pkg/apperrors"
	"github.com/intelligensi-ai/intelligensi-bridge/pkg/logger"
	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"
)

const (
	defaultExportLimit = 20
	maxExportLimit     = 50
)

// exportCacheControl matches config.ExportCacheTTL
const exportCacheControl = "public, max-age=300"

// ParsePagination reads page/limit query values, applying defaults and
// clamping limit into [1,50] and page to a floor of 1.
func ParsePagination(pageParam, limitParam string) (page, limit int) {
	page, err := strconv.Atoi(pageParam)
	if err != nil || page < 1 {
		page = 1
	}

	limit, err = strconv.Atoi(limitParam)
	if err != nil {
		limit = defaultExportLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > maxExportLimit {
		limit = maxExportLimit
	}
	return page, limit
}

func canonicalURL(item *ContentItem) string {
	return fmt.Sprintf("%s/content/%s", viper.GetString("SITE_BASE_URL"), item.UUID)
}

func roleCacheKey(actor Actor) string {
	if actor.Anonymous() {
		return "anon"
	}
	return strconv.FormatInt(actor.Role, 10)
}

// BulkExportHandler returns a page of published items as JSON, excluding
// items the requesting actor may not view.
func BulkExportHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")
	actor := actorFromContext(c)

	page, limit := ParsePagination(c.QueryParam("page"), c.QueryParam("limit"))
	offset := (page - 1) * limit

	c.Response().Header().Set("Cache-Control", exportCacheControl)

	// Serve a cached page when one exists for this page/limit/role
	if cached := config.GetCachedExport(page, limit, roleCacheKey(actor)); cached != "" {
		var resp ExportResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			c.Response().Header().Set("X-Total-Count", strconv.Itoa(resp.Pagination.Total))
			return c.JSON(http.StatusOK, resp)
		}
	}

	ctx := c.Request().Context()
	filter := Filter{PublishedOnly: true}

	total, err := store.Count(ctx, filter)
	if err != nil {
		log.Error("Failed to count published items", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeStoreError,
			"Internal server error.",
			err,
		))
	}

	ids, err := store.Query(ctx, filter, offset, limit)
	if err != nil {
		log.Error("Failed to query published items", err, logger.Page(page), logger.Limit(limit))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeStoreError,
			"Internal server error.",
			err,
		))
	}

	items, err := store.LoadMany(ctx, ids)
	if err != nil {
		log.Error("Failed to load items for export", err, logger.Count(len(ids)))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeStoreError,
			"Internal server error.",
			err,
		))
	}

	data := make([]ExportItem, 0, len(items))
	for i := range items {
		item := &items[i]
		// Items the viewer may not see are silently excluded
		if !store.CanView(item, actor) {
			continue
		}
		data = append(data, ExportItem{
			ID:           item.ID,
			UUID:         item.UUID,
			Title:        item.Title,
			CreatedAt:    item.CreatedAt,
			ChangedAt:    item.ChangedAt,
			Published:    item.Published,
			Type:         item.Type,
			Body:         item.Body,
			CanonicalURL: canonicalURL(item),
		})
	}

	resp := ExportResponse{
		Data: data,
		Pagination: Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: (total + limit - 1) / limit,
		},
	}

	c.Response().Header().Set("X-Total-Count", strconv.Itoa(total))

	if body, err := json.Marshal(resp); err == nil {
		if err := config.SetCachedExport(page, limit, roleCacheKey(actor), string(body)); err != nil {
			log.Warn("Failed to cache export page", logger.Err(err))
		}
	}

	return c.JSON(http.StatusOK, resp)
}
