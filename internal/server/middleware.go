package server

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
	"sync"

	"todoapp/internal/domain/errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type gzipBody struct {
	io.Reader
	gzipReader io.Closer
	bodyCloser io.Closer
}

func (b *gzipBody) Close() error {
	var err1, err2 error
	if b.gzipReader != nil {
		err1 = b.gzipReader.Close()
	}
	if b.bodyCloser != nil {
		err2 = b.bodyCloser.Close()
	}
	if err1 != nil {
		return err1
	}
	return err2
}

// GzipRequestDecompress transparently unwraps gzip-encoded request bodies.
func GzipRequestDecompress() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !strings.Contains(strings.ToLower(ctx.GetHeader("Content-Encoding")), "gzip") {
			ctx.Next()
			return
		}

		gr, err := gzip.NewReader(ctx.Request.Body)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"success": false, "error": errors.ErrInvalidGzipRequest.Error()})
			return
		}

		ctx.Request.Body = &gzipBody{
			Reader:     gr,
			gzipReader: gr,
			bodyCloser: ctx.Request.Body,
		}
		ctx.Request.Header.Del("Content-Encoding")
		ctx.Request.Header.Del("Content-Length")

		ctx.Next()
	}
}

type gzipWriter struct {
	gin.ResponseWriter
	gw *gzip.Writer
}

func (w *gzipWriter) Write(data []byte) (int, error) {
	return w.gw.Write(data)
}

func (w *gzipWriter) WriteString(s string) (int, error) {
	return w.gw.Write([]byte(s))
}

// GzipResponseCompress compresses responses for clients that accept gzip.
func GzipResponseCompress() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method == http.MethodHead ||
			!strings.Contains(strings.ToLower(ctx.GetHeader("Accept-Encoding")), "gzip") {
			ctx.Next()
			return
		}

		ctx.Header("Content-Encoding", "gzip")
		ctx.Header("Vary", "Accept-Encoding")

		gw := gzip.NewWriter(ctx.Writer)
		ctx.Writer = &gzipWriter{ResponseWriter: ctx.Writer, gw: gw}

		ctx.Next()

		if err := gw.Close(); err != nil {
			_ = ctx.Error(errors.ErrGzipCompressionFailed)
		}
	}
}

// RateLimit keeps a token bucket per client IP.
func RateLimit(r rate.Limit, burst int) gin.HandlerFunc {
	var mu sync.Mutex
	visitors := make(map[string]*rate.Limiter)

	getVisitor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		limiter, exists := visitors[ip]
		if !exists {
			limiter = rate.NewLimiter(r, burst)
			visitors[ip] = limiter
		}
		return limiter
	}

	return func(ctx *gin.Context) {
		if !getVisitor(ctx.ClientIP()).Allow() {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"success": false, "error": errors.ErrTooManyRequests.Error()})
			return
		}
		ctx.Next()
	}
}
