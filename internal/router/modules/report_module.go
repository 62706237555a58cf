package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/complaint-desk/internal/interface/http"
)

type ReportModule struct {
	Handler *handlers.ReportHandler
	Authn   gin.HandlerFunc
	Admin   gin.HandlerFunc
}

func NewReportModule(h *handlers.ReportHandler, authn, admin gin.HandlerFunc) *ReportModule {
	return &ReportModule{Handler: h, Authn: authn, Admin: admin}
}

func (m *ReportModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/report", m.Authn, m.Admin)
	g.GET("", m.Handler.Summary)
	g.POST("/export", m.Handler.Export)
}
