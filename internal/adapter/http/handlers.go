package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	appusecase "loan-origination-backend/internal/usecase/application"
)

type Handler struct {
	apps *appusecase.Usecase
}

func NewHandler(apps *appusecase.Usecase) *Handler { return &Handler{apps: apps} }

// RegisterRoutes wires every endpoint onto the Echo instance. Mutating routes
// go through the idempotency middleware; pass nil to skip it (tests).
func (h *Handler) RegisterRoutes(e *echo.Echo, idemp echo.MiddlewareFunc) {
	e.GET("/health", h.Health)
	e.GET("/calculator/schedule", h.ComputeSchedule)

	g := e.Group("/applications")
	if idemp != nil {
		g.Use(idemp)
	}
	g.POST("", h.CreateApplication)
	g.GET("", h.ListApplications)
	g.GET("/:number", h.GetApplication)
	g.PATCH("/:number", h.UpdateRequestedTerms)
	g.DELETE("/:number", h.SoftDeleteApplication)
	g.POST("/:number/restore", h.RestoreApplication)

	g.POST("/:number/submit", h.SubmitApplication)
	g.POST("/:number/review", h.StartReview)
	g.POST("/:number/approve", h.ApproveApplication)
	g.POST("/:number/reject", h.RejectApplication)
	g.POST("/:number/cancel", h.CancelApplication)
	g.POST("/:number/disburse", h.DisburseApplication)
	g.POST("/:number/request-info", h.RequestAdditionalInfo)

	g.PUT("/:number/assign", h.AssignApplication)
	g.POST("/bulk-assign", h.BulkAssign)
	g.PUT("/:number/priority", h.UpdatePriority)

	g.GET("/:number/auto-approval", h.CheckAutoApproval)
	g.POST("/:number/auto-approval", h.ProcessAutoApproval)
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}
