package http_auth_middleware

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	http_common "github.com/humanbelnik/cinetally/internal/delivery/http/common"
	"github.com/humanbelnik/cinetally/internal/model"
	session_auth "github.com/humanbelnik/cinetally/internal/service/auth/session"
)

const (
	HeaderUserToken = "X-user-token"
	contextUserKey  = "current_user"
)

type Identity interface {
	CurrentUser(token string) (model.User, error)
}

type Middleware struct {
	identity Identity
	logger   *slog.Logger
}

func New(
	identity Identity,
) *Middleware {
	return &Middleware{
		identity: identity,
		logger:   slog.Default(),
	}
}

// AuthRequired resolves the session token into a user and aborts with 401
// when there is none. The resolved user lands in the request context.
func (m *Middleware) AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		t := ctx.GetHeader(HeaderUserToken)
		if t == "" {
			ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
				Message: "no " + HeaderUserToken + " header",
			})
			ctx.Abort()
			return
		}

		user, err := m.identity.CurrentUser(t)
		if err != nil {
			if errors.Is(err, session_auth.ErrNoSession) {
				ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
					Message: "invalid or expired token",
				})
				ctx.Abort()
				return
			}
			m.logger.Error("session lookup failed", slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
			ctx.Abort()
			return
		}

		ctx.Set(contextUserKey, user)
		ctx.Next()
	}
}

// UserFromContext returns the user AuthRequired resolved, or the zero user
// on routes that ran without it.
func UserFromContext(ctx *gin.Context) model.User {
	v, ok := ctx.Get(contextUserKey)
	if !ok {
		return model.User{}
	}

	user, ok := v.(model.User)
	if !ok {
		return model.User{}
	}
	return user
}
