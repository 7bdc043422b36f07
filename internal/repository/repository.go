package repository

import (
	"context"

	"canteen/internal/model"

	"github.com/google/uuid"
)

// CouponRepository is the ledger: the single owner of persisted coupons.
// Coupons are never deleted and only the redeemed flag is ever updated.
type CouponRepository interface {
	// Append persists a new coupon. It returns model.ErrDuplicateCode when the code or
	// OTP is already stored and model.ErrDuplicateOrder when the employee already holds
	// a coupon for the same item on the same day.
	Append(ctx context.Context, coupon *model.Coupon) error

	// FindByCodeOrOTP returns the coupon whose OTP or code equals token, preferring an
	// OTP match. It returns nil when nothing matches.
	FindByCodeOrOTP(ctx context.Context, token string) (*model.Coupon, error)

	// FindForEmployeeItemDate returns the coupon an employee holds for an item on a day, or nil.
	FindForEmployeeItemDate(ctx context.Context, employeeID int64, item string, date model.Date) (*model.Coupon, error)

	// ItemsOrderedOn lists the menu items an employee already has coupons for on a day.
	ItemsOrderedOn(ctx context.Context, employeeID int64, date model.Date) ([]string, error)

	// MarkRedeemed flips the redeemed flag in a single conditional update.
	// It returns model.ErrAlreadyRedeemed or model.ErrCouponNotFound when nothing changed.
	MarkRedeemed(ctx context.Context, id uuid.UUID) error

	// ListForPeriod returns coupons issued between start and end inclusive,
	// ordered by issue date then time.
	ListForPeriod(ctx context.Context, start, end model.Date) ([]model.Coupon, error)

	// DailyCounts returns generated and redeemed counts for days in the period that have coupons.
	DailyCounts(ctx context.Context, start, end model.Date) ([]model.DailyTotal, error)
}

// EmployeeRepository defines data access for the employee directory.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
	Count(ctx context.Context) (int, error)
	Upsert(ctx context.Context, employee *model.Employee) error

	// UpsertMany writes every employee in one transaction; either all rows land or none.
	UpsertMany(ctx context.Context, employees []model.Employee) error

	// Delete removes an employee. It returns model.ErrEmployeeInUse when coupons
	// reference the employee and model.ErrEmployeeNotFound when no row exists.
	Delete(ctx context.Context, id int64) error
}

// MenuRepository defines data access for the active menu.
type MenuRepository interface {
	GetByName(ctx context.Context, name string) (*model.MenuItem, error)
	List(ctx context.Context) ([]model.MenuItem, error)
	Upsert(ctx context.Context, item *model.MenuItem) error
	Delete(ctx context.Context, name string) error
}

// CredentialRepository defines data access for dashboard logins.
type CredentialRepository interface {
	GetByUsername(ctx context.Context, username string) (*model.Credential, error)
	List(ctx context.Context) ([]model.Credential, error)
	Count(ctx context.Context) (int, error)

	// Create returns model.ErrUserExists when the username is taken.
	Create(ctx context.Context, credential *model.Credential) error

	// Update overwrites the mutable fields of an existing credential.
	// Update and Delete return model.ErrLastAdmin instead of leaving no admin.
	Update(ctx context.Context, credential *model.Credential) error

	Delete(ctx context.Context, username string) error
}
