package handler_test

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"taskplane.app/api-server/internal/apperr"
	"taskplane.app/api-server/internal/http/handler"
	"taskplane.app/api-server/internal/model"
	"taskplane.app/api-server/internal/service"
)

var _ = Describe("TaskHandler", func() {
	var (
		router *gin.Engine
		svc    *mockTaskService
		caller *model.User
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		caller = &model.User{ID: 3, Role: model.RoleOrganizationMember, OrganizationID: 200}
		svc = &mockTaskService{}
		h := handler.NewTaskHandler(svc)

		router = gin.New()
		router.Use(asUser(caller))
		router.POST("/api/tasks", h.Create)
		router.GET("/api/tasks/:id", h.Get)
		router.POST("/api/tasks/:id/assign", h.Assign)
		router.POST("/api/tasks/:id/unassign", h.Unassign)
	})

	It("returns 201 with string ids on creation", func() {
		svc.createFn = func(_ context.Context, c *model.User, params service.CreateTaskParams) (*model.Task, error) {
			Expect(c).To(Equal(caller))
			Expect(params.ProjectID).To(Equal(int64(10)))
			return &model.Task{
				ID: 20, Title: params.Title,
				Status: model.TaskStatusPending, Priority: model.TaskPriorityMedium,
				ProjectID: 10, OrganizationID: 200, CreatedBy: c.ID,
				Assignees: []model.Assignee{},
			}, nil
		}

		body, _ := json.Marshal(gin.H{"title": "Fix login", "projectId": "10"})
		w := doRequest(router, http.MethodPost, "/api/tasks", body)

		Expect(w.Code).To(Equal(http.StatusCreated))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		data := resp["data"].(map[string]any)
		Expect(data["id"]).To(Equal("20"))
		Expect(data["projectId"]).To(Equal("10"))
		Expect(data["dueDate"]).To(BeNil())
	})

	It("accepts a numeric projectId as well", func() {
		svc.createFn = func(_ context.Context, _ *model.User, params service.CreateTaskParams) (*model.Task, error) {
			Expect(params.ProjectID).To(Equal(int64(10)))
			return &model.Task{ID: 20, ProjectID: 10, OrganizationID: 200}, nil
		}

		body, _ := json.Marshal(gin.H{"title": "Fix login", "projectId": 10})
		w := doRequest(router, http.MethodPost, "/api/tasks", body)

		Expect(w.Code).To(Equal(http.StatusCreated))
	})

	It("treats a malformed id as not found", func() {
		w := doRequest(router, http.MethodGet, "/api/tasks/not-a-number", nil)
		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("maps forbidden errors to 403", func() {
		svc.getFn = func(_ context.Context, _ *model.User, _ int64) (*model.Task, error) {
			return nil, apperr.Forbidden("access denied")
		}

		w := doRequest(router, http.MethodGet, "/api/tasks/20", nil)

		Expect(w.Code).To(Equal(http.StatusForbidden))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp["status"]).To(Equal("error"))
		Expect(resp["message"]).To(Equal("access denied"))
	})

	It("assigns a user and returns the refreshed task", func() {
		svc.assignFn = func(_ context.Context, _ *model.User, taskID, userID int64) (*model.Task, error) {
			Expect(taskID).To(Equal(int64(20)))
			Expect(userID).To(Equal(int64(4)))
			return &model.Task{
				ID: 20, OrganizationID: 200,
				Assignees: []model.Assignee{{ID: 4, Email: "bob@acme.test", Name: "Bob"}},
			}, nil
		}

		body, _ := json.Marshal(gin.H{"userId": "4"})
		w := doRequest(router, http.MethodPost, "/api/tasks/20/assign", body)

		Expect(w.Code).To(Equal(http.StatusOK))
		var resp map[string]any
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		data := resp["data"].(map[string]any)
		assignees := data["assignees"].([]any)
		Expect(assignees).To(HaveLen(1))
	})

	It("maps double unassignment to 400", func() {
		svc.unassignFn = func(_ context.Context, _ *model.User, _, _ int64) (*model.Task, error) {
			return nil, apperr.BadRequest("user is not assigned to this task")
		}

		body, _ := json.Marshal(gin.H{"userId": "4"})
		w := doRequest(router, http.MethodPost, "/api/tasks/20/unassign", body)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})
})
