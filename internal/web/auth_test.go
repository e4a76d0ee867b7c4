package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"miniview/internal/initdata"
)

const testToken = "test-token"

var testNow = time.Unix(1700000000, 0)

func testServer(t *testing.T, dev bool) *Server {
	t.Helper()
	v := initdata.New(testToken)
	v.Now = func() time.Time { return testNow }
	return NewServer(v, ":0", dev)
}

func signedInitData(t *testing.T, fields initdata.Fields) string {
	t.Helper()
	vals := url.Values{}
	for k, val := range fields {
		vals.Set(k, val)
	}
	vals.Set("hash", initdata.Sign(fields, testToken))
	return vals.Encode()
}

func freshInitData(t *testing.T) string {
	return signedInitData(t, initdata.Fields{
		"auth_date": "1699999940", // минуту назад по тестовым часам
		"query_id":  "AAA",
		"user":      `{"id":1}`,
	})
}

func doAuth(t *testing.T, s *Server, raw string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/auth", nil)
	if raw != "" {
		req.Header.Set("X-TG-Init-Data", raw)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec.Code, body
}

func TestAuthEndpointValid(t *testing.T) {
	s := testServer(t, false)
	code, body := doAuth(t, s, freshInitData(t))
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["sig_ok"])
	require.Equal(t, true, body["fresh"])
}

func TestAuthEndpointTampered(t *testing.T) {
	s := testServer(t, false)
	raw := freshInitData(t)
	code, body := doAuth(t, s, raw+"x")
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, false, body["sig_ok"])
}

func TestAuthEndpointStale(t *testing.T) {
	s := testServer(t, false)
	raw := signedInitData(t, initdata.Fields{"auth_date": "1699800000", "query_id": "AAA"})
	code, body := doAuth(t, s, raw)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, true, body["sig_ok"])
	require.Equal(t, false, body["fresh"])
}

func TestAuthEndpointMalformed(t *testing.T) {
	s := testServer(t, false)
	code, body := doAuth(t, s, "no-equals-sign")
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "malformed", body["error"])
}

func TestAuthEndpointNoHash(t *testing.T) {
	s := testServer(t, false)
	code, body := doAuth(t, s, "auth_date=1699999940&query_id=AAA")
	require.Equal(t, http.StatusBadRequest, code)
	require.Equal(t, "no_hash", body["error"])
}

func TestMiddlewareProtectsAPI(t *testing.T) {
	s := testServer(t, false)
	h := s.Handler()

	// без initData — мусор, 400
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	// подделанная подпись — 401
	req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("X-TG-Init-Data", freshInitData(t)+"x")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// протухшая метка при валидной подписи — 401
	stale := signedInitData(t, initdata.Fields{"auth_date": "1699800000"})
	req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("X-TG-Init-Data", stale)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	// валидная и свежая — 200
	req = httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	req.Header.Set("X-TG-Init-Data", freshInitData(t))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareQueryParamSource(t *testing.T) {
	s := testServer(t, false)
	req := httptest.NewRequest(http.MethodGet, "/api/ping?initData="+url.QueryEscape(freshInitData(t)), nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareDevBypass(t *testing.T) {
	s := testServer(t, true)
	req := httptest.NewRequest(http.MethodGet, "/api/ping", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestStaticOpenWithoutAuth(t *testing.T) {
	s := testServer(t, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}
