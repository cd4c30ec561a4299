package http_auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/cinetally/internal/delivery/http/common"
	session_auth "github.com/humanbelnik/cinetally/internal/service/auth/session"
)

type Controller struct {
	service *session_auth.Service
	logger  *slog.Logger
}

func New(
	service *session_auth.Service,
) *Controller {
	return &Controller{
		service: service,
		logger:  slog.Default(),
	}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.POST("/login", c.login)
}

type LoginRequestDTO struct {
	DisplayName string `json:"display_name" binding:"required" example:"maria"`
}

type LoginResponseDTO struct {
	Token       string `json:"token"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
}

// Login issues a session token
// @Summary Log in
// @Description Creates a session for the given display name and returns the token to pass in X-user-token
// @Tags Auth operations
// @Accept json
// @Produce json
// @Param request body LoginRequestDTO true "Login payload"
// @Success 200 {object} LoginResponseDTO "Session created"
// @Failure 400 {object} http_common.ErrorResponse "Malformed request"
// @Failure 500 {object} http_common.ErrorResponse "Internal error"
// @Router /auth/login [post]
func (c *Controller) login(ctx *gin.Context) {
	var req LoginRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "display_name is required",
		})
		return
	}

	user, token, err := c.service.Login(req.DisplayName)
	if err != nil {
		if errors.Is(err, session_auth.ErrEmptyName) {
			ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
				Message: "display_name is required",
			})
			return
		}
		c.logger.Error("login failed", slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
		return
	}

	ctx.JSON(http.StatusOK, LoginResponseDTO{
		Token:       token,
		UserID:      user.ID.String(),
		DisplayName: user.DisplayName,
	})
}
