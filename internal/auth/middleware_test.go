package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"todoapp/internal/auth"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/zap"
)

type fakeSessions struct {
	byID  map[string]string
	err   error
	calls int
}

func (f *fakeSessions) Username(_ context.Context, id string) (string, bool, error) {
	f.calls++
	if f.err != nil {
		return "", false, f.err
	}
	name, ok := f.byID[id]
	return name, ok, nil
}

var _ = Describe("Gate", func() {
	var (
		sessions *fakeSessions
		router   *gin.Engine
		reached  bool
		seenGin  string
		seenCtx  string
	)

	handler := func(c *gin.Context) {
		reached = true
		seenGin = auth.UsernameFromContext(c)
		seenCtx, _ = auth.UsernameFrom(c.Request.Context())
		c.String(http.StatusOK, "ok")
	}

	serve := func(path, cookie string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if cookie != "" {
			req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: cookie})
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		reached, seenGin, seenCtx = false, "", ""
		sessions = &fakeSessions{byID: map[string]string{"s1": "alice"}}
		router = gin.New()
		router.Use(auth.Gate(sessions, zap.NewNop().Sugar(), auth.DefaultSkip...))
		router.GET("/", handler)
		router.GET("/login", handler)
		router.GET("/static/app.css", handler)
		router.GET("/favicon.ico", handler)
		router.GET("/loginx", handler)
	})

	It("redirects requests without a cookie to /login", func() {
		w := serve("/", "")
		Expect(w.Code).To(Equal(http.StatusSeeOther))
		Expect(w.Header().Get("Location")).To(Equal("/login"))
		Expect(reached).To(BeFalse())
	})

	It("redirects unknown sessions", func() {
		w := serve("/", "stale")
		Expect(w.Code).To(Equal(http.StatusSeeOther))
		Expect(reached).To(BeFalse())
	})

	It("attaches the identity for live sessions", func() {
		w := serve("/", "s1")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(seenGin).To(Equal("alice"))
		Expect(seenCtx).To(Equal("alice"))
	})

	DescribeTable("skips allow-listed paths without touching the session store",
		func(path string) {
			w := serve(path, "")
			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(sessions.calls).To(BeZero())
		},
		Entry("login", "/login"),
		Entry("static", "/static/app.css"),
		Entry("favicon", "/favicon.ico"),
	)

	It("anchors skip patterns to the whole path", func() {
		w := serve("/loginx", "")
		Expect(w.Code).To(Equal(http.StatusSeeOther))
	})

	It("gates unmatched paths too", func() {
		w := serve("/nowhere", "")
		Expect(w.Code).To(Equal(http.StatusSeeOther))
	})

	It("answers 500 when the session store fails", func() {
		sessions.err = errors.New("redis down")
		w := serve("/", "s1")
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		Expect(reached).To(BeFalse())
	})
})
