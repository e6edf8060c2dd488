package content

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/intelligensi-ai/intelligensi-bridge/config"
	"github.com/intelligensi-ai/intelligensi-bridge/pkg/apperrors"
	"github.com/intelligensi-ai/intelligensi-bridge/pkg/logger"
	"github.com/labstack/echo/v4"
)

// MaxImportBatch is the largest accepted bulk import payload
const MaxImportBatch = 50

// BulkImportHandler creates up to MaxImportBatch published items from a
// JSON array. Items are processed independently; one bad item never aborts
// the rest. Responds 200 when all succeed, 207 on mixed outcomes, 400 when
// nothing was created.
func BulkImportHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")
	actor := actorFromContext(c)
	log = log.WithActorID(actor.ID)

	var batch []ImportItem
	if err := c.Bind(&batch); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Request body must be a JSON array of content items.",
		))
	}

	if len(batch) > MaxImportBatch {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeBatchTooLarge,
			fmt.Sprintf("Import batch exceeds the maximum of %d items.", MaxImportBatch),
		))
	}

	log.Info("Starting bulk import", logger.BatchSize(len(batch)))

	ctx := c.Request().Context()
	created := []ImportedItem{}
	importErrors := []ImportError{}

	for i, in := range batch {
		title := SanitizePlain(in.Title)
		if title == "" {
			importErrors = append(importErrors, ImportError{
				Index: i,
				Error: "title is required",
			})
			continue
		}

		contentType := SanitizePlain(in.Type)
		if contentType == "" {
			contentType = TypePage
		}
		if !ValidContentTypes[contentType] {
			importErrors = append(importErrors, ImportError{
				Index: i,
				Error: fmt.Sprintf("unknown content type %q", strings.ToLower(contentType)),
			})
			continue
		}

		item, err := store.Create(ctx, Draft{
			Title:     title,
			Body:      SanitizeBody(in.Body),
			Type:      contentType,
			Published: true,
			OwnerID:   actor.ID,
		})
		if err != nil {
			log.Warn("Failed to create imported item",
				logger.Int("index", i),
				logger.String("title", title),
				logger.Err(err),
			)
			importErrors = append(importErrors, ImportError{
				Index: i,
				Error: err.Error(),
			})
			continue
		}

		created = append(created, ImportedItem{
			ID:    item.ID,
			UUID:  item.UUID,
			Title: item.Title,
		})
	}

	if len(created) > 0 {
		config.InvalidateExportCache()
	}

	resp := ImportResponse{
		Created:    created,
		Count:      len(created),
		Errors:     importErrors,
		ErrorCount: len(importErrors),
	}

	log.Info("Bulk import completed",
		logger.CreatedCount(len(created)),
		logger.FailedCount(len(importErrors)),
	)

	switch {
	case len(created) == 0 && len(importErrors) > 0:
		return c.JSON(http.StatusBadRequest, resp)
	case len(importErrors) > 0:
		return apperrors.RespondWithMultiStatus(c, resp)
	default:
		return apperrors.RespondWithSuccess(c, resp)
	}
}
