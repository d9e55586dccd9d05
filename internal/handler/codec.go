package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/chronos-tachyon/canonhuff/container"
	"github.com/chronos-tachyon/canonhuff/internal/service"
)

const contentType = "application/octet-stream"

// CodecHandler serves the codec endpoints of the HTTP API.
type CodecHandler struct {
	svc          *service.CodecService
	maxBodyBytes int64
}

// NewCodecHandler returns a CodecHandler that rejects request bodies larger
// than maxBodyBytes.
func NewCodecHandler(s *service.CodecService, maxBodyBytes int64) *CodecHandler {
	return &CodecHandler{svc: s, maxBodyBytes: maxBodyBytes}
}

// Compress answers with the container for the request body.
func (h *CodecHandler) Compress(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	raw, stats, err := h.svc.Compress(body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("X-Huff-Symbols", strconv.FormatUint(stats.Symbols, 10))
	c.Header("X-Huff-Payload-Bits", strconv.FormatUint(stats.PayloadBits, 10))
	c.Data(http.StatusOK, contentType, raw)
}

// Decompress answers with the bytes stored in the container request body.
func (h *CodecHandler) Decompress(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	out, _, err := h.svc.Decompress(body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Data(http.StatusOK, contentType, out)
}

// Inspect answers with a JSON summary of the container header.
func (h *CodecHandler) Inspect(c *gin.Context) {
	body, ok := h.readBody(c)
	if !ok {
		return
	}
	info, err := h.svc.Inspect(body)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

func (h *CodecHandler) readBody(c *gin.Context) ([]byte, bool) {
	r := http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)
	body, err := io.ReadAll(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return body, true
}

func (h *CodecHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, container.ErrInputTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidContainer):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
