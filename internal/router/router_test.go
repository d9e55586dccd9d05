package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/chronos-tachyon/canonhuff/container"
	"github.com/chronos-tachyon/canonhuff/internal/handler"
	"github.com/chronos-tachyon/canonhuff/internal/service"
	"github.com/chronos-tachyon/canonhuff/pkg/logger"
)

func newTestEngine(maxBody int64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc := service.NewCodecService(logger.Discard())
	Register(r, Dependencies{CodecHandler: handler.NewCodecHandler(svc, maxBody)})
	return r
}

func post(r http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r := newTestEngine(1 << 20)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"ok":true}`, w.Body.String())
}

func TestCompressDecompress(t *testing.T) {
	r := newTestEngine(1 << 20)
	data := []byte("she sells sea shells by the sea shore")

	w := post(r, "/api/v1/compress", data)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "application/octet-stream", w.Header().Get("Content-Type"))
	require.Equal(t, "37", w.Header().Get("X-Huff-Symbols"))
	raw := w.Body.Bytes()

	expect, err := container.EncodeBytes(data)
	require.NoError(t, err)
	require.Equal(t, expect, raw)

	w = post(r, "/api/v1/decompress", raw)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, data, w.Body.Bytes())

	w = post(r, "/api/v1/inspect", raw)
	require.Equal(t, http.StatusOK, w.Code)
	var info service.Inspection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	require.Equal(t, uint32(len(data)), info.Count)
	require.Len(t, info.Codes, info.Symbols)
}

func TestErrors(t *testing.T) {
	r := newTestEngine(container.HeaderSize + 16)

	w := post(r, "/api/v1/decompress", []byte("not a container"))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	require.Contains(t, w.Body.String(), "truncated header")

	bad := make([]byte, container.HeaderSize)
	bad['A'], bad['B'] = 1, 2
	w = post(r, "/api/v1/inspect", bad)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = post(r, "/api/v1/compress", make([]byte, container.HeaderSize+17))
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
