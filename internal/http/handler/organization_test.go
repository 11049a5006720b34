package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"taskplane.app/api-server/internal/http/handler"
	"taskplane.app/api-server/internal/model"
)

var _ = Describe("OrganizationHandler", func() {
	var (
		router *gin.Engine
		svc    *mockOrganizationService
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		handler.SetDevelopmentMode(false)
		svc = &mockOrganizationService{}
		h := handler.NewOrganizationHandler(svc)

		router = gin.New()
		router.Use(asUser(&model.User{ID: 1, Role: model.RolePlatformAdmin, OrganizationID: 100}))
		router.POST("/api/organizations", h.Create)
		router.GET("/api/organizations", h.List)
		router.DELETE("/api/organizations/:id", h.Delete)
	})

	It("returns 201 when an organization is created", func() {
		svc.createFn = func(_ context.Context, _ *model.User, name string, _ *string) (*model.Organization, error) {
			return &model.Organization{ID: 5, Name: name, Slug: "acme"}, nil
		}

		body, _ := json.Marshal(gin.H{"name": "Acme"})
		w := doRequest(router, http.MethodPost, "/api/organizations", body)

		Expect(w.Code).To(Equal(http.StatusCreated))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		data := resp["data"].(map[string]any)
		Expect(data["slug"]).To(Equal("acme"))
	})

	It("returns 400 on an unparseable body", func() {
		w := doRequest(router, http.MethodPost, "/api/organizations", []byte(`{`))
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("hides internal error details outside development mode", func() {
		svc.listFn = func(_ context.Context, _ *model.User) ([]model.Organization, error) {
			return nil, errors.New("pq: connection refused")
		}

		w := doRequest(router, http.MethodGet, "/api/organizations", nil)

		Expect(w.Code).To(Equal(http.StatusInternalServerError))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["message"]).To(Equal("internal server error"))
	})

	It("confirms deletion with a message", func() {
		svc.deleteFn = func(_ context.Context, _ *model.User, orgID int64) error {
			Expect(orgID).To(Equal(int64(5)))
			return nil
		}

		w := doRequest(router, http.MethodDelete, "/api/organizations/5", nil)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["status"]).To(Equal("success"))
	})
})
