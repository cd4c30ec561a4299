package http_rating

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/cinetally/internal/delivery/http/common"
	http_auth_middleware "github.com/humanbelnik/cinetally/internal/delivery/http/middleware/auth"
	"github.com/humanbelnik/cinetally/internal/service/rating"
	usecase_catalog "github.com/humanbelnik/cinetally/internal/usecase/catalog"
)

type SubmitRatingRequestDTO struct {
	Value int `json:"value" binding:"required" example:"8"`
}

type Controller struct {
	uc *usecase_catalog.Usecase
	mw *http_auth_middleware.Middleware

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	uc *usecase_catalog.Usecase,
	mw *http_auth_middleware.Middleware,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		uc:     uc,
		mw:     mw,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries/:entry_id")
	entries.POST("/rating", c.mw.AuthRequired(), c.submitRating)
}

// SubmitRating records one rater's vote for an entry
// @Summary Submit a rating
// @Description Appends a rating event; a rater's newer vote supersedes their older one
// @Tags Rating operations
// @Accept json
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Param request body SubmitRatingRequestDTO true "Rating value, 6 to 10"
// @Success 202 "Rating accepted"
// @Failure 400 {object} http_common.ErrorResponse "Value out of range"
// @Failure 401 {object} http_common.ErrorResponse "No authenticated user"
// @Failure 403 {object} http_common.ErrorResponse "Raters cannot rate their own entries"
// @Failure 404 {object} http_common.ErrorResponse "No such entry"
// @Failure 502 {object} http_common.ErrorResponse "Store rejected the write"
// @Router /entries/{entry_id}/rating [post]
func (c *Controller) submitRating(ctx *gin.Context) {
	var req SubmitRatingRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	entryID := ctx.Param("entry_id")
	user := http_auth_middleware.UserFromContext(ctx)

	if err := c.uc.SubmitRating(ctx, entryID, user, req.Value); err != nil {
		switch {
		case errors.Is(err, rating.ErrValidationFailed):
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
		case errors.Is(err, rating.ErrSelfRating):
			ctx.JSON(http.StatusForbidden, http_common.ErrorResponse{Message: "rating your own entry is forbidden"})
		case errors.Is(err, usecase_catalog.ErrUnauthenticated):
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: "authentication required"})
		case errors.Is(err, usecase_catalog.ErrEntryNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
		case errors.Is(err, usecase_catalog.ErrRemoteWrite):
			c.logger.Error("rating write failed",
				slog.String("entry_id", entryID),
				slog.String("error", err.Error()))
			ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: "store rejected the operation"})
		default:
			c.logger.Error("unexpected rating error", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
		}
		return
	}

	ctx.Status(http.StatusAccepted)
}
