package service

import (
	"context"
	"time"

	"canteen/internal/model"
	"canteen/internal/report"
)

// IssuanceService creates coupons for employees.
type IssuanceService interface {
	// Issue creates a coupon for one menu item and delivers its OTP. A delivery
	// failure is reported on the returned Issuance, never as an error.
	Issue(ctx context.Context, actor model.Actor, employeeID int64, itemName string) (*model.Issuance, error)

	// AvailableItems lists the menu items the employee has not yet ordered today.
	AvailableItems(ctx context.Context, employeeID int64) ([]model.MenuItem, error)

	// Preview prices a selection without persisting anything.
	Preview(ctx context.Context, employeeID int64, itemName string) (*model.Bill, error)
}

// RedemptionService consumes coupons.
type RedemptionService interface {
	// Redeem marks the coupon identified by a code or OTP as used. When the coupon
	// was already used it returns the summary together with model.ErrAlreadyRedeemed.
	Redeem(ctx context.Context, actor model.Actor, token string) (*model.CouponSummary, error)

	// Lookup returns the coupon summary for a code or OTP without changing it.
	Lookup(ctx context.Context, token string) (*model.CouponSummary, error)
}

// ReportService aggregates the ledger.
type ReportService interface {
	DailyTotals(ctx context.Context, start, end model.Date) ([]model.DailyTotal, error)
	WeeklyTotals(ctx context.Context, start, end model.Date) ([]model.WeeklyTotal, error)
	Overview(ctx context.Context, start, end model.Date) (*model.Overview, error)

	// ExportPeriod renders every coupon in the period without OTPs, followed by a total row.
	ExportPeriod(ctx context.Context, start, end model.Date) (*report.Table, error)
}

// AccountService manages dashboard credentials and sessions.
type AccountService interface {
	Login(ctx context.Context, username, password string) (*model.LoginResponse, error)
	List(ctx context.Context) ([]model.Credential, error)
	Create(ctx context.Context, req model.CredentialRequest) (*model.Credential, error)
	Update(ctx context.Context, username string, update model.CredentialUpdate) (*model.Credential, error)
	Delete(ctx context.Context, username string) error

	// EnsureBootstrapAdmin creates the first admin when no credentials exist.
	EnsureBootstrapAdmin(ctx context.Context, username, password, displayName string) error
}

// DirectoryService manages employees and the menu.
type DirectoryService interface {
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*model.Employee, error)
	UpsertEmployee(ctx context.Context, req model.EmployeeRequest) (*model.Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error

	ListMenu(ctx context.Context) ([]model.MenuItem, error)
	UpsertMenuItem(ctx context.Context, req model.MenuItemRequest) (*model.MenuItem, error)
	DeleteMenuItem(ctx context.Context, name string) error

	// ImportRoster loads a roster file and upserts every employee in it.
	ImportRoster(ctx context.Context, path string) (int, error)
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(username string, role model.Role) (string, time.Time, error)
}
