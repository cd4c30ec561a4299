package http_catalog

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/cinetally/internal/delivery/http/common"
	http_auth_middleware "github.com/humanbelnik/cinetally/internal/delivery/http/middleware/auth"
	"github.com/humanbelnik/cinetally/internal/model"
	"github.com/humanbelnik/cinetally/internal/service/consensus"
	"github.com/humanbelnik/cinetally/internal/service/projection"
	usecase_catalog "github.com/humanbelnik/cinetally/internal/usecase/catalog"
	usecase_sync "github.com/humanbelnik/cinetally/internal/usecase/sync"
)

type CreateEntryRequestDTO struct {
	Title      string `json:"title" binding:"required" example:"Interstellar"`
	Kind       string `json:"kind" binding:"required" example:"movie"`
	Year       int    `json:"year" binding:"required" example:"2014"`
	BaseRating int    `json:"base_rating" binding:"required" example:"9"`
	Category   string `json:"category" binding:"required" example:"must-watch"`
	Language   string `json:"language" binding:"required" example:"English"`
	AgeRating  string `json:"age_rating" binding:"required" example:"PG-13"`
}

func (r *CreateEntryRequestDTO) ConvertToDraft() model.EntryDraft {
	return model.EntryDraft{
		Title:      r.Title,
		Kind:       model.Kind(r.Kind),
		Year:       r.Year,
		BaseRating: r.BaseRating,
		Category:   model.Category(r.Category),
		Language:   r.Language,
		AgeRating:  r.AgeRating,
	}
}

type CreateEntryResponseDTO struct {
	ID string `json:"id"`
}

type EntryResponseDTO struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Kind       string    `json:"kind"`
	Year       int       `json:"year"`
	BaseRating int       `json:"base_rating"`
	Category   string    `json:"category"`
	Language   string    `json:"language"`
	AgeRating  string    `json:"age_rating"`
	CreatedAt  time.Time `json:"created_at"`
	CreatedBy  string    `json:"created_by"`
	PosterLink string    `json:"poster_link,omitempty"`
	Score      float64   `json:"score"`
	Votes      int       `json:"votes"`
}

func ConvertFromEntry(e model.Entry) EntryResponseDTO {
	return EntryResponseDTO{
		ID:         e.ID,
		Title:      e.Title,
		Kind:       string(e.Kind),
		Year:       e.Year,
		BaseRating: e.BaseRating,
		Category:   string(e.Category),
		Language:   e.Language,
		AgeRating:  e.AgeRating,
		CreatedAt:  e.CreatedAt,
		CreatedBy:  e.CreatedBy.String(),
		PosterLink: e.PosterLink,
		Score:      consensus.Display(consensus.Score(e)),
		Votes:      1 + len(e.Ratings),
	}
}

type EntriesListResponseDTO struct {
	Entries    []EntryResponseDTO `json:"entries"`
	Page       int                `json:"page"`
	TotalPages int                `json:"total_pages"`
}

type ListEntriesRequestDTO struct {
	Kind     string `form:"kind" binding:"required,oneof=movie series"`
	Category string `form:"category" binding:"omitempty,oneof=must-watch good one-time-watch bad"`
	Sort     string `form:"sort" binding:"omitempty,oneof=latest score"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type Controller struct {
	uc         *usecase_catalog.Usecase
	collection *usecase_sync.Usecase
	mw         *http_auth_middleware.Middleware

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(uc *usecase_catalog.Usecase,
	collection *usecase_sync.Usecase,
	mw *http_auth_middleware.Middleware,
	opts ...ControllerOption) *Controller {
	c := &Controller{
		uc:         uc,
		collection: collection,
		mw:         mw,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	entries := router.Group("/entries")
	entries.GET("", c.listEntries)
	entries.POST("", c.mw.AuthRequired(), c.createEntry)
	entries.DELETE("/:entry_id", c.mw.AuthRequired(), c.deleteEntry)
}

// ListEntries serves a projected view of the synced collection
// @Summary List catalog entries
// @Description Filters, sorts and paginates the current collection state for one media kind
// @Tags Catalog operations
// @Produce json
// @Param kind query string true "movie or series"
// @Param category query string false "must-watch, good, one-time-watch or bad"
// @Param sort query string false "latest (default) or score"
// @Param page query int false "1-based page, default 1"
// @Param page_size query int false "page size, default 15"
// @Success 200 {object} EntriesListResponseDTO "Projected slice"
// @Failure 400 {object} http_common.ErrorResponse "Malformed query"
// @Router /entries [get]
func (c *Controller) listEntries(ctx *gin.Context) {
	var req ListEntriesRequestDTO
	if err := ctx.ShouldBindQuery(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid query: " + err.Error(),
		})
		return
	}

	opts := projection.Options{
		Kind:     model.Kind(req.Kind),
		Category: model.Category(req.Category),
		SortBy:   projection.SortBy(req.Sort),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if opts.SortBy == "" {
		opts.SortBy = projection.SortLatest
	}
	if opts.Page == 0 {
		opts.Page = 1
	}

	p := projection.Project(c.collection.Current(), opts)

	entries := make([]EntryResponseDTO, 0, len(p.Slice))
	for _, e := range p.Slice {
		entries = append(entries, ConvertFromEntry(e))
	}

	ctx.JSON(http.StatusOK, EntriesListResponseDTO{
		Entries:    entries,
		Page:       opts.Page,
		TotalPages: p.TotalPages,
	})
}

// CreateEntry adds a work to the shared catalog
// @Summary Create a catalog entry
// @Description Validates the draft and writes it to the store; the new entry arrives through the snapshot stream
// @Tags Catalog operations
// @Accept json
// @Produce json
// @Param request body CreateEntryRequestDTO true "Entry draft"
// @Success 201 {object} CreateEntryResponseDTO "Entry created"
// @Failure 400 {object} http_common.ErrorResponse "Validation failed"
// @Failure 401 {object} http_common.ErrorResponse "No authenticated user"
// @Failure 502 {object} http_common.ErrorResponse "Store rejected the write"
// @Router /entries [post]
func (c *Controller) createEntry(ctx *gin.Context) {
	var req CreateEntryRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request body: " + err.Error(),
		})
		return
	}

	user := http_auth_middleware.UserFromContext(ctx)

	id, err := c.uc.CreateEntry(ctx, req.ConvertToDraft(), user)
	if err != nil {
		c.respondWriteError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, CreateEntryResponseDTO{ID: id})
}

// DeleteEntry removes an entry owned by the requester
// @Summary Delete a catalog entry
// @Description Issues the delete to the store; ownership is enforced there
// @Tags Catalog operations
// @Produce json
// @Param entry_id path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 401 {object} http_common.ErrorResponse "No authenticated user"
// @Failure 404 {object} http_common.ErrorResponse "No such entry for this owner"
// @Failure 502 {object} http_common.ErrorResponse "Store rejected the delete"
// @Router /entries/{entry_id} [delete]
func (c *Controller) deleteEntry(ctx *gin.Context) {
	entryID := ctx.Param("entry_id")
	user := http_auth_middleware.UserFromContext(ctx)

	if err := c.uc.DeleteEntry(ctx, entryID, user); err != nil {
		c.respondWriteError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *Controller) respondWriteError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase_catalog.ErrValidationFailed):
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{Message: err.Error()})
	case errors.Is(err, usecase_catalog.ErrUnauthenticated):
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{Message: "authentication required"})
	case errors.Is(err, usecase_catalog.ErrEntryNotFound):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{Message: "not found"})
	case errors.Is(err, usecase_catalog.ErrRemoteWrite):
		c.logger.Error("store write failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadGateway, http_common.ErrorResponse{Message: "store rejected the operation"})
	default:
		c.logger.Error("unexpected catalog error", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{Message: "internal error"})
	}
}
