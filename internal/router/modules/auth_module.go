package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/complaint-desk/internal/interface/http"
)

// AuthModule serves POST /register, /login and the authenticated /logout.
type AuthModule struct {
	Handler *handlers.AuthHandler
	Authn   gin.HandlerFunc
}

func NewAuthModule(h *handlers.AuthHandler, authn gin.HandlerFunc) *AuthModule {
	return &AuthModule{Handler: h, Authn: authn}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/register", m.Handler.Register)
	rg.POST("/login", m.Handler.Login)
	rg.POST("/logout", m.Authn, m.Handler.Logout)
}
