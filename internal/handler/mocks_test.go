package handler

import (
	"context"
	"net/http"

	"canteen/internal/model"
	"canteen/internal/report"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
)

// MockIssuanceService is a mock implementation of IssuanceService.
type MockIssuanceService struct {
	mock.Mock
}

func (m *MockIssuanceService) Issue(ctx context.Context, actor model.Actor, employeeID int64, item string) (*model.Issuance, error) {
	args := m.Called(ctx, actor, employeeID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Issuance), args.Error(1)
}

func (m *MockIssuanceService) AvailableItems(ctx context.Context, employeeID int64) ([]model.MenuItem, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockIssuanceService) Preview(ctx context.Context, employeeID int64, item string) (*model.Bill, error) {
	args := m.Called(ctx, employeeID, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Bill), args.Error(1)
}

// MockRedemptionService is a mock implementation of RedemptionService.
type MockRedemptionService struct {
	mock.Mock
}

func (m *MockRedemptionService) Redeem(ctx context.Context, actor model.Actor, token string) (*model.CouponSummary, error) {
	args := m.Called(ctx, actor, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CouponSummary), args.Error(1)
}

func (m *MockRedemptionService) Lookup(ctx context.Context, token string) (*model.CouponSummary, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CouponSummary), args.Error(1)
}

// MockReportService is a mock implementation of ReportService.
type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) DailyTotals(ctx context.Context, start, end model.Date) ([]model.DailyTotal, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.DailyTotal), args.Error(1)
}

func (m *MockReportService) WeeklyTotals(ctx context.Context, start, end model.Date) ([]model.WeeklyTotal, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WeeklyTotal), args.Error(1)
}

func (m *MockReportService) Overview(ctx context.Context, start, end model.Date) (*model.Overview, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Overview), args.Error(1)
}

func (m *MockReportService) ExportPeriod(ctx context.Context, start, end model.Date) (*report.Table, error) {
	args := m.Called(ctx, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*report.Table), args.Error(1)
}

// MockAccountService is a mock implementation of AccountService.
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) Login(ctx context.Context, username, password string) (*model.LoginResponse, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.LoginResponse), args.Error(1)
}

func (m *MockAccountService) List(ctx context.Context) ([]model.Credential, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Credential), args.Error(1)
}

func (m *MockAccountService) Create(ctx context.Context, req model.CredentialRequest) (*model.Credential, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Credential), args.Error(1)
}

func (m *MockAccountService) Update(ctx context.Context, username string, update model.CredentialUpdate) (*model.Credential, error) {
	args := m.Called(ctx, username, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Credential), args.Error(1)
}

func (m *MockAccountService) Delete(ctx context.Context, username string) error {
	args := m.Called(ctx, username)
	return args.Error(0)
}

func (m *MockAccountService) EnsureBootstrapAdmin(ctx context.Context, username, password, displayName string) error {
	args := m.Called(ctx, username, password, displayName)
	return args.Error(0)
}

// MockDirectoryService is a mock implementation of DirectoryService.
type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Employee), args.Error(1)
}

func (m *MockDirectoryService) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockDirectoryService) UpsertEmployee(ctx context.Context, req model.EmployeeRequest) (*model.Employee, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Employee), args.Error(1)
}

func (m *MockDirectoryService) DeleteEmployee(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockDirectoryService) ListMenu(ctx context.Context) ([]model.MenuItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MenuItem), args.Error(1)
}

func (m *MockDirectoryService) UpsertMenuItem(ctx context.Context, req model.MenuItemRequest) (*model.MenuItem, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MenuItem), args.Error(1)
}

func (m *MockDirectoryService) DeleteMenuItem(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockDirectoryService) ImportRoster(ctx context.Context, path string) (int, error) {
	args := m.Called(ctx, path)
	return args.Int(0), args.Error(1)
}

// withURLParams attaches chi route parameters to a request built outside a router.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
