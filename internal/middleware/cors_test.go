package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func corsRouter(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(origins))
	r.POST("/graphql", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func preflight(r http.Handler, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/graphql", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCORSAllowsAnyOrigin(t *testing.T) {
	w := preflight(corsRouter([]string{"*"}), "http://clinic.test")

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSListedOrigins(t *testing.T) {
	r := corsRouter([]string{"http://clinic.test"})

	w := preflight(r, "http://clinic.test")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://clinic.test", w.Header().Get("Access-Control-Allow-Origin"))

	w = preflight(r, "http://evil.test")
	assert.Equal(t, http.StatusForbidden, w.Code)
}
