package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is a canteen customer identified by their numeric employee code.
type Employee struct {
	ID        int64     `json:"employeeCode"`
	Name      string    `json:"name"`
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// MenuItem is a dish on the active menu.
type MenuItem struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// NetPrice returns the price an employee pays for the item today.
func (m MenuItem) NetPrice() decimal.Decimal {
	return NetPrice(m.Price, m.Discount)
}

// EmployeeRequest is the payload for creating or editing an employee.
type EmployeeRequest struct {
	ID     int64  `json:"employeeCode"`
	Name   string `json:"name"`
	Mobile string `json:"mobile"`
}

// MenuItemRequest is the payload for creating or editing a menu item.
type MenuItemRequest struct {
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Discount decimal.Decimal `json:"discount"`
}

// RosterImportRequest names a roster file to import.
type RosterImportRequest struct {
	Path string `json:"path"`
}

// RosterImportResponse reports the outcome of a roster import.
type RosterImportResponse struct {
	Imported int `json:"imported"`
}
