package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	domain "loan-origination-backend/internal/domain/application"
	"loan-origination-backend/internal/domain/customer"
	"loan-origination-backend/internal/domain/product"
	"loan-origination-backend/internal/domain/risk"
	"loan-origination-backend/internal/domain/uow"
	"loan-origination-backend/internal/testutil/applicationmock"
	"loan-origination-backend/internal/testutil/customermock"
	"loan-origination-backend/internal/testutil/notifiermock"
	"loan-origination-backend/internal/testutil/productmock"
	"loan-origination-backend/internal/testutil/uowmock"
	appusecase "loan-origination-backend/internal/usecase/application"
)

const (
	testCustomerID = "cccccccccccccccccccccccccccccccc"
	testOperatorID = "dddddddddddddddddddddddddddddddd"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	apps := map[string]*domain.Application{}
	prod := &product.Product{
		ID:                  1,
		Code:                "PL-STD",
		MinAmount:           decimal.NewFromInt(1000),
		MaxAmount:           decimal.NewFromInt(1000000),
		MinTermMonths:       6,
		MaxTermMonths:       60,
		DefaultInterestRate: decimal.RequireFromString("0.18"),
	}
	cust := &customer.Customer{CustomerID: testCustomerID, IsKycComplete: true, IsActive: true}

	appRepo := &applicationmock.Repo{
		CreateFn: func(ctx context.Context, a *domain.Application) error {
			a.ID = uint64(len(apps) + 1)
			cp := *a
			apps[a.ApplicationNumber] = &cp
			return nil
		},
		GetByNumberFn: func(ctx context.Context, number string) (*domain.Application, error) {
			a, ok := apps[number]
			if !ok || a.IsDeleted {
				return nil, domain.ErrNotFound
			}
			cp := *a
			return &cp, nil
		},
		GetAnyByNumberFn: func(ctx context.Context, number string) (*domain.Application, error) {
			a, ok := apps[number]
			if !ok {
				return nil, domain.ErrNotFound
			}
			cp := *a
			return &cp, nil
		},
		ListFn: func(ctx context.Context, f domain.Filter) ([]domain.Application, error) {
			var out []domain.Application
			for _, a := range apps {
				if !a.IsDeleted {
					out = append(out, *a)
				}
			}
			return out, nil
		},
		SaveFn: func(ctx context.Context, a *domain.Application) error {
			a.Version++
			cp := *a
			apps[a.ApplicationNumber] = &cp
			return nil
		},
	}
	r := uow.Repos{
		Applications: appRepo,
		Products: &productmock.Repo{
			GetByIDFn: func(ctx context.Context, id uint64) (*product.Product, error) {
				if id != prod.ID {
					return nil, product.ErrNotFound
				}
				return prod, nil
			},
		},
		Customers: &customermock.Repo{
			GetByCustomerIDFn: func(ctx context.Context, id string) (*customer.Customer, error) {
				if id != cust.CustomerID {
					return nil, customer.ErrNotFound
				}
				return cust, nil
			},
		},
	}
	uc := appusecase.NewUsecase(uowmock.Passthrough(r), risk.StubBureau{}, &notifiermock.Notifier{})

	e := echo.New()
	e.HideBanner = true
	e.Validator = NewValidator()
	NewHandler(uc).RegisterRoutes(e, nil)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.Header.Set("Ax-Operator-Id", testOperatorID)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeDTO(t *testing.T, rec *httptest.ResponseRecorder) appusecase.ApplicationDTO {
	t.Helper()
	var dto appusecase.ApplicationDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatalf("decode: %v; raw=%s", err, rec.Body.String())
	}
	return dto
}

const createBody = `{"customer_id":"cccccccccccccccccccccccccccccccc","product_id":1,"loan_type":"PERSONAL","requested_amount":500000,"requested_term_months":24,"purpose":"working capital"}`

func createDraft(t *testing.T, e *echo.Echo) appusecase.ApplicationDTO {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/applications", createBody)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create => %d, body: %s", rec.Code, rec.Body.String())
	}
	return decodeDTO(t, rec)
}

func TestHealth(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var body struct {
		Status string `json:"status"`
		Time   string `json:"time"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Status != "ok" {
		t.Fatalf(`status = %q, want "ok"`, body.Status)
	}
	if _, err := time.Parse(time.RFC3339Nano, body.Time); err != nil {
		t.Fatalf("time not RFC3339Nano: %v", err)
	}
}

func TestCreateApplication(t *testing.T) {
	e := newTestServer(t)
	dto := createDraft(t, e)

	if dto.Status != "DRAFT" {
		t.Fatalf("status = %s", dto.Status)
	}
	if !strings.HasPrefix(dto.ApplicationNumber, "LA-") {
		t.Fatalf("number = %s", dto.ApplicationNumber)
	}
}

func TestCreateApplication_ValidationErrors(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/applications",
		`{"customer_id":"nope","product_id":1,"loan_type":"PERSONAL","requested_amount":500000,"requested_term_months":24}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad customer id => %d", rec.Code)
	}
	var er ErrorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &er); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !containsFieldMsg(er.Details, "CustomerID", "32-char lowercase hex") {
		t.Fatalf("details = %+v", er.Details)
	}

	rec = do(t, e, http.MethodPost, "/applications",
		`{"customer_id":"cccccccccccccccccccccccccccccccc","product_id":1,"loan_type":"PERSONAL","requested_amount":500000.001,"requested_term_months":24}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("3dp amount => %d", rec.Code)
	}
}

func TestCreateApplication_OutOfBounds(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, http.MethodPost, "/applications",
		`{"customer_id":"cccccccccccccccccccccccccccccccc","product_id":1,"loan_type":"PERSONAL","requested_amount":2000000,"requested_term_months":24}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("out of bounds => %d, want 422", rec.Code)
	}
}

func TestGetApplication_NotFound(t *testing.T) {
	e := newTestServer(t)
	rec := do(t, e, http.MethodGet, "/applications/LA-00000000-MISSING000", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("unknown number => %d, want 404", rec.Code)
	}
}

func TestWorkflow_SubmitApproveDisburse(t *testing.T) {
	e := newTestServer(t)
	dto := createDraft(t, e)
	base := "/applications/" + dto.ApplicationNumber

	rec := do(t, e, http.MethodPost, base+"/submit", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("submit => %d, body: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodPost, base+"/approve",
		`{"approved_amount":500000,"approved_term_months":24,"approved_rate":0.18,"reason":"ok"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("approve => %d, body: %s", rec.Code, rec.Body.String())
	}
	approved := decodeDTO(t, rec)
	if approved.ApprovedBy != testOperatorID {
		t.Fatalf("approved by = %s", approved.ApprovedBy)
	}

	rec = do(t, e, http.MethodPost, base+"/disburse", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("disburse => %d, body: %s", rec.Code, rec.Body.String())
	}
	final := decodeDTO(t, rec)
	if final.Status != "DISBURSED" {
		t.Fatalf("status = %s", final.Status)
	}
}

func TestRejectFromDraft_Conflict(t *testing.T) {
	e := newTestServer(t)
	dto := createDraft(t, e)

	rec := do(t, e, http.MethodPost, "/applications/"+dto.ApplicationNumber+"/reject", `{"reason":"incomplete"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("reject draft => %d, want 409", rec.Code)
	}
}

func TestUpdatePriority_Validation(t *testing.T) {
	e := newTestServer(t)
	dto := createDraft(t, e)
	base := "/applications/" + dto.ApplicationNumber + "/priority"

	for _, body := range []string{`{"priority":0}`, `{"priority":6}`} {
		rec := do(t, e, http.MethodPut, base, body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("priority %s => %d, want 400", body, rec.Code)
		}
	}
	rec := do(t, e, http.MethodPut, base, `{"priority":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("priority 2 => %d, body: %s", rec.Code, rec.Body.String())
	}
}

func TestBulkAssign_MixedResults(t *testing.T) {
	e := newTestServer(t)
	a := createDraft(t, e)
	b := createDraft(t, e)

	rec := do(t, e, http.MethodPost, "/applications/bulk-assign",
		`{"application_numbers":["`+a.ApplicationNumber+`","LA-00000000-MISSING000","`+b.ApplicationNumber+`"],"assignee":"officer-3"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("bulk assign => %d, body: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Assigned []appusecase.ApplicationDTO `json:"assigned"`
		Failed   []string                    `json:"failed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Assigned) != 2 || len(out.Failed) != 1 {
		t.Fatalf("assigned=%d failed=%v", len(out.Assigned), out.Failed)
	}
}

func TestComputeSchedule(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/calculator/schedule?principal=1000000&term_months=12&annual_rate=0.12", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("schedule => %d, body: %s", rec.Code, rec.Body.String())
	}
	var out struct {
		Schedule []struct {
			Month   int    `json:"month"`
			Payment string `json:"payment"`
		} `json:"schedule"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out.Schedule) != 12 {
		t.Fatalf("installments = %d, want 12", len(out.Schedule))
	}

	rec = do(t, e, http.MethodGet, "/calculator/schedule?principal=abc&term_months=12&annual_rate=0.12", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("bad principal => %d, want 400", rec.Code)
	}
	rec = do(t, e, http.MethodGet, "/calculator/schedule?principal=-5&term_months=12&annual_rate=0.12", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("negative principal => %d, want 400", rec.Code)
	}
}

func TestSoftDeleteAndRestore(t *testing.T) {
	e := newTestServer(t)
	dto := createDraft(t, e)
	base := "/applications/" + dto.ApplicationNumber

	rec := do(t, e, http.MethodDelete, base, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete => %d", rec.Code)
	}
	rec = do(t, e, http.MethodGet, base, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("get deleted => %d, want 404", rec.Code)
	}
	rec = do(t, e, http.MethodPost, base+"/restore", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("restore => %d", rec.Code)
	}
	rec = do(t, e, http.MethodGet, base, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get restored => %d", rec.Code)
	}
}
