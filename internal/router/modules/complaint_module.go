package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/complaint-desk/internal/interface/http"
)

type ComplaintModule struct {
	Handler      *handlers.ComplaintHandler
	Authn        gin.HandlerFunc
	Admin        gin.HandlerFunc
	AllAdminOnly bool
}

func NewComplaintModule(h *handlers.ComplaintHandler, authn, admin gin.HandlerFunc, allAdminOnly bool) *ComplaintModule {
	return &ComplaintModule{Handler: h, Authn: authn, Admin: admin, AllAdminOnly: allAdminOnly}
}

func (m *ComplaintModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/complaints")
	g.Use(m.Authn)

	g.POST("", m.Handler.Submit)
	g.GET("/my", m.Handler.ListMine)
	if m.AllAdminOnly {
		g.GET("/all", m.Admin, m.Handler.ListAll)
	} else {
		g.GET("/all", m.Handler.ListAll)
	}
	g.GET("/search", m.Admin, m.Handler.Search)
	g.PUT("/:id/status", m.Admin, m.Handler.UpdateStatus)
}
