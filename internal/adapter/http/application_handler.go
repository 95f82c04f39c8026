package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "loan-origination-backend/internal/domain/application"
	"loan-origination-backend/internal/domain/customer"
	"loan-origination-backend/internal/domain/product"
	appusecase "loan-origination-backend/internal/usecase/application"
	"loan-origination-backend/pkg/finance"
)

// ---- request payloads ----

type createApplicationRequest struct {
	CustomerID          string   `json:"customer_id" validate:"required,hex32"`
	ProductID           uint64   `json:"product_id" validate:"required"`
	LoanType            string   `json:"loan_type" validate:"required"`
	RequestedAmount     float64  `json:"requested_amount" validate:"required,gte=1000,dec2"`
	RequestedTermMonths int      `json:"requested_term_months" validate:"required,gte=1,lte=360"`
	Purpose             string   `json:"purpose"`
	DeclaredIncome      *float64 `json:"declared_income" validate:"omitempty,gte=0,dec2"`
	DebtToIncomeRatio   *float64 `json:"debt_to_income_ratio" validate:"omitempty,gte=0,lte=1"`
	SaveAsDraft         bool     `json:"save_as_draft"`
	AutoSubmit          bool     `json:"auto_submit"`
}

type approveApplicationRequest struct {
	Amount     float64 `json:"approved_amount" validate:"required,gt=0,dec2"`
	TermMonths int     `json:"approved_term_months" validate:"required,gte=1,lte=360"`
	Rate       float64 `json:"approved_rate" validate:"gte=0,lte=1,dec4"`
	Reason     string  `json:"reason"`
}

type reasonRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type requestInfoRequest struct {
	Info string `json:"info" validate:"required"`
}

type assignRequest struct {
	Assignee string `json:"assignee" validate:"required"`
}

type bulkAssignRequest struct {
	Numbers  []string `json:"application_numbers" validate:"required,min=1"`
	Assignee string   `json:"assignee" validate:"required"`
}

type priorityRequest struct {
	Priority int `json:"priority" validate:"required,gte=1,lte=5"`
}

type updateTermsRequest struct {
	RequestedAmount     float64 `json:"requested_amount" validate:"required,gte=1000,dec2"`
	RequestedTermMonths int     `json:"requested_term_months" validate:"required,gte=1,lte=360"`
	Purpose             string  `json:"purpose"`
}

// ---- handlers ----

func (h *Handler) CreateApplication(c echo.Context) error {
	var req createApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.apps.Create(c.Request().Context(), appusecase.CreateInput{
		CustomerID:          req.CustomerID,
		ProductID:           req.ProductID,
		LoanType:            domain.LoanType(strings.ToUpper(req.LoanType)),
		RequestedAmount:     decimal.NewFromFloat(req.RequestedAmount),
		RequestedTermMonths: req.RequestedTermMonths,
		Purpose:             req.Purpose,
		DeclaredIncome:      nullDecimalFromPtr(req.DeclaredIncome),
		DebtToIncomeRatio:   nullDecimalFromPtr(req.DebtToIncomeRatio),
		SaveAsDraft:         req.SaveAsDraft,
		AutoSubmit:          req.AutoSubmit,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *Handler) GetApplication(c echo.Context) error {
	dto, err := h.apps.Get(c.Request().Context(), c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) ListApplications(c echo.Context) error {
	f := domain.Filter{
		CustomerID: c.QueryParam("customer_id"),
		AssignedTo: c.QueryParam("assigned_to"),
	}
	if s := c.QueryParam("status"); s != "" {
		f.Status = domain.Status(strings.ToUpper(s))
	}
	if t := c.QueryParam("loan_type"); t != "" {
		f.LoanType = domain.LoanType(strings.ToUpper(t))
	}
	dtos, err := h.apps.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"applications": dtos, "count": len(dtos)})
}

func (h *Handler) SubmitApplication(c echo.Context) error {
	dto, err := h.apps.Submit(c.Request().Context(), c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) StartReview(c echo.Context) error {
	dto, err := h.apps.StartReview(c.Request().Context(), c.Param("number"), operatorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) ApproveApplication(c echo.Context) error {
	var req approveApplicationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.apps.Approve(c.Request().Context(), appusecase.ApproveInput{
		Number:     c.Param("number"),
		Amount:     decimal.NewFromFloat(req.Amount),
		TermMonths: req.TermMonths,
		Rate:       decimal.NewFromFloat(req.Rate),
		Reason:     req.Reason,
		ApprovedBy: operatorID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) RejectApplication(c echo.Context) error {
	var req reasonRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.apps.Reject(c.Request().Context(), c.Param("number"), req.Reason, operatorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) CancelApplication(c echo.Context) error {
	var req reasonRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.apps.Cancel(c.Request().Context(), c.Param("number"), req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) DisburseApplication(c echo.Context) error {
	dto, err := h.apps.Disburse(c.Request().Context(), c.Param("number"), operatorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) RequestAdditionalInfo(c echo.Context) error {
	var req requestInfoRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.apps.RequestAdditionalInfo(c.Request().Context(), c.Param("number"), req.Info)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) AssignApplication(c echo.Context) error {
	var req assignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.apps.Assign(c.Request().Context(), c.Param("number"), req.Assignee)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) BulkAssign(c echo.Context) error {
	var req bulkAssignRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	assigned, failed, err := h.apps.BulkAssign(c.Request().Context(), req.Numbers, req.Assignee)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"assigned": assigned, "failed": failed})
}

func (h *Handler) UpdatePriority(c echo.Context) error {
	var req priorityRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.apps.UpdatePriority(c.Request().Context(), c.Param("number"), req.Priority)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) UpdateRequestedTerms(c echo.Context) error {
	var req updateTermsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "malformed request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}
	dto, err := h.apps.UpdateRequestedTerms(c.Request().Context(), appusecase.UpdateRequestedTermsInput{
		Number:              c.Param("number"),
		RequestedAmount:     decimal.NewFromFloat(req.RequestedAmount),
		RequestedTermMonths: req.RequestedTermMonths,
		Purpose:             req.Purpose,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) CheckAutoApproval(c echo.Context) error {
	eligible, err := h.apps.CheckAutoApprovalEligibility(c.Request().Context(), c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"eligible": eligible})
}

func (h *Handler) ProcessAutoApproval(c echo.Context) error {
	res, err := h.apps.ProcessAutoApproval(c.Request().Context(), c.Param("number"), operatorID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, res)
}

func (h *Handler) SoftDeleteApplication(c echo.Context) error {
	if err := h.apps.SoftDelete(c.Request().Context(), c.Param("number"), operatorID(c)); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) RestoreApplication(c echo.Context) error {
	dto, err := h.apps.Restore(c.Request().Context(), c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *Handler) ComputeSchedule(c echo.Context) error {
	principal, err := decimal.NewFromString(c.QueryParam("principal"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid principal"})
	}
	termMonths, err := strconv.Atoi(c.QueryParam("term_months"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid term_months"})
	}
	rate, err := decimal.NewFromString(c.QueryParam("annual_rate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid annual_rate"})
	}
	schedule, err := h.apps.ComputeSchedule(c.Request().Context(), principal, termMonths, rate)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"schedule": schedule})
}

// ---- error mapping ----

// writeError maps domain sentinels onto HTTP statuses: unknown input is 400,
// missing rows 404, state and version conflicts 409, business rejections 422.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, product.ErrNotFound),
		errors.Is(err, customer.ErrNotFound):
		return c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidArgument),
		errors.Is(err, finance.ErrInvalidArgument):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrNotEditable),
		errors.Is(err, domain.ErrConcurrencyConflict):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, product.ErrOutOfBounds),
		errors.Is(err, customer.ErrNotEligible):
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}
