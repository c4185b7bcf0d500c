package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/product-catalog/internal/config"
)

func cacheCtx(method, target string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestCacheKeyStrategies(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	a := cacheKey(cfg, cacheCtx(http.MethodGet, "/products?page=1"))
	b := cacheKey(cfg, cacheCtx(http.MethodGet, "/products?page=2"))
	assert.NotEqual(t, a, b, "query must be part of the key under route_query")

	cfg.KeyStrategy = "route"
	a = cacheKey(cfg, cacheCtx(http.MethodGet, "/products?page=1"))
	b = cacheKey(cfg, cacheCtx(http.MethodGet, "/products?page=2"))
	assert.Equal(t, a, b, "query must not matter under route")

	cfg.KeyStrategy = "method_route"
	a = cacheKey(cfg, cacheCtx(http.MethodGet, "/products"))
	b = cacheKey(cfg, cacheCtx(http.MethodHead, "/products"))
	assert.NotEqual(t, a, b, "method must matter under method_route")
}

func TestCacheKeyDistinguishesConcreteURIs(t *testing.T) {
	// Two requests hitting the same route template but different ids must
	// never share an entry.
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route"}
	a := cacheKey(cfg, cacheCtx(http.MethodGet, "/products/111"))
	b := cacheKey(cfg, cacheCtx(http.MethodGet, "/products/222"))
	assert.NotEqual(t, a, b)
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{}
	hdr.Set("Content-Type", "application/json")
	body := []byte(`{"status":"success"}`)

	payload, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(payload)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", gotHdr.Get("Content-Type"))
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{nil, {}, {1, 2, 3}, []byte("short")} {
		_, _, _, ok := decodePayload(bs)
		assert.False(t, ok)
	}
}

func TestCacheDisabledIsPassThrough(t *testing.T) {
	for _, cfg := range []config.CacheConfig{
		{Enabled: false},
		{Enabled: true}, // enabled but no Redis client
	} {
		e := echo.New()
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/products", nil), rec)

		called := false
		h := Cache(cfg, nil)(func(c echo.Context) error {
			called = true
			return c.NoContent(http.StatusOK)
		})
		require.NoError(t, h(c))
		assert.True(t, called)
		assert.Empty(t, rec.Header().Get("X-Cache"))
	}
}
