package server_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ndinv/sql-inventory/internal/config"
	"github.com/ndinv/sql-inventory/internal/server"
)

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(ctx context.Context) error {
	return p.err
}

var _ = Describe("Server", func() {
	var cfg *config.Configuration

	BeforeEach(func() {
		cfg = config.NewConfigurationWithDefaults()
		cfg.Server.ServerMode = "prod"
	})

	newHandler := func(p server.Pinger, metrics http.Handler) http.Handler {
		GinkgoHelper()
		s, err := server.NewServer(cfg, p, metrics, func(router *gin.RouterGroup) {
			router.GET("/ping", func(c *gin.Context) {
				c.String(http.StatusOK, "pong")
			})
		})
		Expect(err).NotTo(HaveOccurred())
		return s.Handler()
	}

	get := func(h http.Handler, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	// Given a reachable database
	// When /healthz is requested
	// Then the server should report ok
	It("should report healthy when the database answers", func() {
		rec := get(newHandler(stubPinger{}, nil), "/healthz")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring(`"ok"`))
	})

	It("should report unavailable when the ping fails", func() {
		rec := get(newHandler(stubPinger{err: errors.New("connection refused")}, nil), "/healthz")

		Expect(rec.Code).To(Equal(http.StatusServiceUnavailable))
		Expect(rec.Body.String()).To(ContainSubstring("connection refused"))
	})

	It("should mount handlers under /api/v1", func() {
		rec := get(newHandler(stubPinger{}, nil), "/api/v1/ping")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(Equal("pong"))
	})

	It("should serve metrics when given a handler", func() {
		metrics := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("nd_inventory_hosts 3\n"))
		})

		rec := get(newHandler(stubPinger{}, metrics), "/metrics")

		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(rec.Body.String()).To(ContainSubstring("nd_inventory_hosts 3"))
	})

	It("should answer unknown routes with a JSON 404", func() {
		h := newHandler(stubPinger{}, nil)

		Expect(get(h, "/metrics").Code).To(Equal(http.StatusNotFound))
		rec := get(h, "/nope")
		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(rec.Body.String()).To(ContainSubstring("not found"))
	})
})
