package router

import (
	"github.com/oksasatya/complaint-desk/internal/container"
	handlers "github.com/oksasatya/complaint-desk/internal/interface/http"
	"github.com/oksasatya/complaint-desk/internal/interface/middleware"
	"github.com/oksasatya/complaint-desk/internal/router/modules"
)

// InitModules builds services and handlers from the container and adds every
// feature module to the registry. Call once during startup.
func InitModules(r *Registry, c *container.Container) {
	auth := c.AuthService()
	authn := middleware.Auth(auth, c.Config.AuthHeader)
	admin := middleware.Admin(auth)

	r.Add(modules.NewHealthModule())
	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(auth, c.Logger), authn))
	r.Add(modules.NewComplaintModule(
		handlers.NewComplaintHandler(c.ComplaintService(), c.Logger),
		authn, admin, c.Config.ComplaintsAllAdminOnly,
	))
	r.Add(modules.NewReportModule(handlers.NewReportHandler(c.ReportService()), authn, admin))
	if c.Config.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}

	r.Fallback(handlers.NewStaticHandler(c.Config.StaticDir).Serve)
}
