package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TimeLayout is the wire and report format of the issuance time of day.
const TimeLayout = "15:04:05"

// Coupon is one ledger record granting a single redemption of one menu item.
type Coupon struct {
	ID           uuid.UUID       `json:"id"`
	Code         string          `json:"code"`
	OTP          string          `json:"-"`
	IssuedDate   Date            `json:"issuedDate"`
	IssuedTime   string          `json:"issuedTime"`
	EmployeeID   int64           `json:"employeeCode"`
	EmployeeName string          `json:"employeeName"`
	ItemName     string          `json:"item"`
	NetPrice     decimal.Decimal `json:"amount"`
	IssuedBy     string          `json:"issuedBy"`
	Redeemed     bool            `json:"redeemed"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// Summary returns what an operator sees when handling the coupon.
func (c *Coupon) Summary() *CouponSummary {
	return &CouponSummary{
		Code:         c.Code,
		EmployeeID:   c.EmployeeID,
		EmployeeName: c.EmployeeName,
		Item:         c.ItemName,
		Amount:       c.NetPrice,
		IssuedDate:   c.IssuedDate,
		Redeemed:     c.Redeemed,
	}
}

// CouponSummary is the operator-facing view of a coupon.
type CouponSummary struct {
	Code         string          `json:"code"`
	EmployeeID   int64           `json:"employeeCode"`
	EmployeeName string          `json:"employee"`
	Item         string          `json:"item"`
	Amount       decimal.Decimal `json:"amount"`
	IssuedDate   Date            `json:"issuedDate"`
	Redeemed     bool            `json:"redeemed"`
}

// Bill is the priced selection shown before a coupon is issued.
type Bill struct {
	EmployeeID   int64           `json:"employeeCode"`
	EmployeeName string          `json:"employeeName"`
	Item         string          `json:"item"`
	Price        decimal.Decimal `json:"price"`
	Discount     decimal.Decimal `json:"discount"`
	NetPrice     decimal.Decimal `json:"total"`
}

// Issuance is the outcome of issuing a coupon. A failed notification does not
// undo the coupon; it is reported through Notified and NotifyError.
type Issuance struct {
	Coupon      *Coupon `json:"coupon"`
	Notified    bool    `json:"notified"`
	NotifyError string  `json:"notifyError,omitempty"`
}

// IssueRequest is the payload for issuing a coupon.
type IssueRequest struct {
	EmployeeID int64  `json:"employeeCode"`
	Item       string `json:"item"`
}

// RedeemRequest is the payload for redeeming a coupon by code or OTP.
type RedeemRequest struct {
	Token string `json:"token"`
}
