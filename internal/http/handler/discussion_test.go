package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"supportbot.app/hub/internal/http/handler"
	"supportbot.app/hub/internal/model"
	"supportbot.app/hub/internal/service"
)

var _ = Describe("DiscussionHandler", func() {
	var (
		router *gin.Engine
		svc    *mockDiscussionService
	)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/discussions", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	validBody := `{"thread_id":"t1","repository":"cli","actor_id":"u1"}`

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		router = gin.New()
		svc = &mockDiscussionService{}
		router.POST("/discussions", handler.NewDiscussionHandler(svc).Create)
	})

	It("returns 201 with the created discussion", func() {
		svc.createFn = func(ctx context.Context, params service.CreateDiscussionParams) (*model.Discussion, error) {
			Expect(params).To(Equal(service.CreateDiscussionParams{ThreadID: "t1", Repository: "cli", ActorID: "u1"}))
			return &model.Discussion{Project: "acme/cli", IID: 12, Title: "Login fails", URL: "https://gitlab.com/acme/cli/-/issues/12"}, nil
		}

		w := post(validBody)

		Expect(w.Code).To(Equal(http.StatusCreated))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["url"]).To(Equal("https://gitlab.com/acme/cli/-/issues/12"))
		Expect(resp["iid"]).To(BeNumerically("==", 12))
	})

	It("returns 400 when a field is missing", func() {
		Expect(post(`{"thread_id":"t1"}`).Code).To(Equal(http.StatusBadRequest))
	})

	DescribeTable("maps service errors to status codes",
		func(err error, status int) {
			svc.createFn = func(ctx context.Context, params service.CreateDiscussionParams) (*model.Discussion, error) {
				return nil, err
			}
			Expect(post(validBody).Code).To(Equal(status))
		},
		Entry("not an admin", service.ErrNotAdmin, http.StatusForbidden),
		Entry("unknown repository", fmt.Errorf("%w: %q", service.ErrUnknownRepository, "web"), http.StatusNotFound),
		Entry("missing thread", service.ErrThreadNotFound, http.StatusNotFound),
		Entry("not a thread", service.ErrNotThread, http.StatusUnprocessableEntity),
		Entry("no code host", service.ErrTrackerUnavailable, http.StatusServiceUnavailable),
		Entry("code host failure", fmt.Errorf("%w: 500", service.ErrUpstream), http.StatusBadGateway),
		Entry("anything else", errors.New("boom"), http.StatusInternalServerError),
	)
})
