package middleware_test

import (
	"net/http"
	"net/http/httptest"

	"todoapp/internal/middleware"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var _ = Describe("RequestID and Logging", func() {
	var (
		router   *gin.Engine
		logs     *observer.ObservedLogs
		seenCtx  any
		seenGin  string
		recorder *httptest.ResponseRecorder
	)

	BeforeEach(func() {
		core, observed := observer.New(zap.InfoLevel)
		logs = observed
		router = gin.New()
		router.Use(middleware.RequestID(), middleware.Logging(zap.New(core).Sugar()))
		router.GET("/ok", func(c *gin.Context) {
			seenCtx = c.Request.Context().Value(middleware.RequestIDKey)
			seenGin = middleware.RequestIDFrom(c)
			c.String(http.StatusOK, "ok")
		})
		router.GET("/boom", func(c *gin.Context) {
			c.String(http.StatusInternalServerError, "boom")
		})
		recorder = httptest.NewRecorder()
	})

	It("generates an id when none is sent", func() {
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/ok", nil))
		id := recorder.Header().Get(middleware.RequestIDHeader)
		Expect(id).NotTo(BeEmpty())
		Expect(seenCtx).To(Equal(id))
		Expect(seenGin).To(Equal(id))
	})

	It("keeps an incoming id", func() {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		req.Header.Set(middleware.RequestIDHeader, "abc-123")
		router.ServeHTTP(recorder, req)
		Expect(recorder.Header().Get(middleware.RequestIDHeader)).To(Equal("abc-123"))
		Expect(logs.FilterField(zap.String("request_id", "abc-123")).Len()).To(Equal(1))
	})

	It("logs server errors at error level", func() {
		router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/boom", nil))
		Expect(logs.FilterMessage("request failed").Len()).To(Equal(1))
	})
})
