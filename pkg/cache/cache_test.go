package cache

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMiddlewareNilClientPassesThrough(t *testing.T) {
	calls := 0
	wrapped := Middleware(nil, DefaultConfig())(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"success":true}`))
	})

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		wrapped(rec, httptest.NewRequest(http.MethodGet, "/api/products", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
	assert.Equal(t, 2, calls)
}

func TestCacheKeyVariesWithQuery(t *testing.T) {
	a := cacheKey(httptest.NewRequest(http.MethodGet, "/api/products?limit=10", nil))
	b := cacheKey(httptest.NewRequest(http.MethodGet, "/api/products?limit=20", nil))
	c := cacheKey(httptest.NewRequest(http.MethodGet, "/api/products?limit=10", nil))

	assert.NotEqual(t, a, b)
	assert.Equal(t, a, c)
}
