package content

import (
	"fmt"
	"strings"

	"github.com/intelligensi-ai/intelligensi-bridge/config"
	"github.com/intelligensi-ai/intelligensi-bridge/pkg/apperrors"
	"github.com/intelligensi-ai/intelligensi-bridge/pkg/logger"
	"github.com/labstack/echo/v4"
)

const homepageRevisionMessage = "Homepage update via bridge API"

// actorFromContext reads the identity the JWT middleware put on the
// context. Missing claims yield the anonymous actor.
func actorFromContext(c echo.Context) Actor {
	actor := Actor{Role: RoleViewer}
	if id, ok := c.Get("user_id").(int64); ok {
		actor.ID = id
	}
	if role, ok := c.Get("role_id").(int64); ok {
		actor.Role = role
	}
	return actor
}

// HomepageUpdateHandler prepends a sanitized bold paragraph to the body of
// the newest promoted, published item and records a revision.
func HomepageUpdateHandler(c echo.Context) error {
	log := logger.Get().WithComponent("content")
	actor := actorFromContext(c)
	log = log.WithActorID(actor.ID)

	req := new(HomepageUpdateRequest)
	if err := c.Bind(req); err != nil {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeValidationFailed,
			"Invalid request payload.",
		))
	}

	if strings.TrimSpace(req.UpdateText) == "" {
		return apperrors.RespondWithError(c, apperrors.NewBadRequest(
			apperrors.ErrCodeMissingField,
			"updateText is required.",
		))
	}

	updateText := SanitizeBody(req.UpdateText)

	ctx := c.Request().Context()
	ids, err := store.Query(ctx, Filter{PublishedOnly: true, PromotedOnly: true}, 0, 1)
	if err != nil {
		log.Error("Failed to query homepage candidates", err)
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeStoreError,
			"Internal server error.",
			err,
		))
	}

	if len(ids) == 0 {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeHomepageNotFound,
			"No promoted published content item found.",
		))
	}

	item, err := store.Update(ctx, ids[0], func(item *ContentItem) {
		item.Body = fmt.Sprintf("<p><strong>%s</strong></p>\n%s", updateText, item.Body)
	}, &RevisionLog{
		EditorID:   actor.ID,
		LogMessage: homepageRevisionMessage,
	})
	if err == ErrNotFound {
		return apperrors.RespondWithError(c, apperrors.NewNotFound(
			apperrors.ErrCodeHomepageNotFound,
			"No promoted published content item found.",
		))
	}
	if err != nil {
		log.Error("Failed to update homepage item", err, logger.ContentID(ids[0]))
		return apperrors.RespondWithError(c, apperrors.NewInternal(
			apperrors.ErrCodeStoreError,
			"Internal server error.",
			err,
		))
	}

	config.InvalidateExportCache()

	log.Info("Homepage updated", logger.ContentID(item.ID))
	return apperrors.RespondWithSuccess(c, HomepageUpdateResponse{
		Message:   "Homepage updated successfully.",
		ID:        item.ID,
		ChangedAt: item.ChangedAt,
	})
}
