package router

import "github.com/gin-gonic/gin"

// Registry collects feature modules and mounts them under /api.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
	fallback    gin.HandlerFunc
}

func NewRegistry(engine *gin.Engine) *Registry {
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

// Use adds middleware that runs for every /api route.
func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// Fallback handles every request no module matched.
func (r *Registry) Fallback(h gin.HandlerFunc) {
	r.fallback = h
}

func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	if r.fallback != nil {
		r.Engine.NoRoute(r.fallback)
	}
}
