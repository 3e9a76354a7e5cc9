package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter wires the routes. Paths no route claims are served from
// staticDir when it is set.
func NewRouter(h *Handler, staticDir string, middlewares ...gin.HandlerFunc) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares...)

	r.GET("/healthz", h.Health)
	r.GET("/graphql", h.GraphQL)
	r.POST("/graphql", h.GraphQL)

	if staticDir != "" {
		r.NoRoute(gin.WrapH(http.FileServer(http.Dir(staticDir))))
	}
	return r
}
