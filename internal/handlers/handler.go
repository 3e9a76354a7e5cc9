package handlers

import (
	"net/http"

	"github.com/harentsoaR/clinic-api/internal/store"
)

// Handler holds what the HTTP routes need: the store for health checks and
// the GraphQL endpoint.
type Handler struct {
	Store          store.Store
	GraphQLHandler http.Handler
}

func NewHandler(s store.Store, graphqlHandler http.Handler) *Handler {
	return &Handler{
		Store:          s,
		GraphQLHandler: graphqlHandler,
	}
}
