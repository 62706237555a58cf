package modules

import (
	"expvar"

	"github.com/gin-gonic/gin"
)

// DebugModule exposes expvar at /debug/vars. Only registered when
// DEBUG_METRICS_ENABLED is set.
type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rg.GET("/debug/vars", gin.WrapH(expvar.Handler()))
}
