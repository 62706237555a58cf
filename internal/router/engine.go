package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/complaint-desk/internal/container"
	handlers "github.com/oksasatya/complaint-desk/internal/interface/http"
	"github.com/oksasatya/complaint-desk/internal/interface/middleware"
	"github.com/oksasatya/complaint-desk/pkg/validation"
)

// NewEngine builds the gin engine with global middleware and every module
// registered under /api.
func NewEngine(c *container.Container) *gin.Engine {
	validation.Init()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	if c.Config.HTTPLogEnabled {
		r.Use(middleware.RequestLogger(c.Logger))
	}
	r.Use(cors.New(corsConfig(c.Config.CORSOrigins(), c.Config.AuthHeader)))

	reg := NewRegistry(r)
	reg.Use(handlers.ErrorHandler(c.Logger))
	InitModules(reg, c)
	reg.RegisterAll()
	return r
}

// Tokens travel in a header, never in cookies, so credentials stay off.
func corsConfig(origins []string, authHeader string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", authHeader, middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
