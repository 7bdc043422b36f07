package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	// Coupon is set when a redemption is refused but the coupon is still shown to the operator.
	Coupon *CouponSummary `json:"coupon,omitempty"`
}

// ErrorKind groups domain errors by how callers should react to them.
type ErrorKind string

const (
	KindInvalid      ErrorKind = "invalid"
	KindNotFound     ErrorKind = "not_found"
	KindConflict     ErrorKind = "conflict"
	KindExhausted    ErrorKind = "exhausted"
	KindUnauthorised ErrorKind = "unauthorised"
	KindForbidden    ErrorKind = "forbidden"
)

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON          = "INVALID_JSON"
	ErrCodeMissingField         = "MISSING_FIELD"
	ErrCodeInvalidPeriod        = "INVALID_PERIOD"
	ErrCodeInvalidEmployee      = "INVALID_EMPLOYEE"
	ErrCodeInvalidMenuItem      = "INVALID_MENU_ITEM"
	ErrCodeInvalidCredential    = "INVALID_CREDENTIAL"
	ErrCodeInvalidRoster        = "INVALID_ROSTER"
	ErrCodeEmployeeNotFound     = "EMPLOYEE_NOT_FOUND"
	ErrCodeItemNotFound         = "ITEM_NOT_FOUND"
	ErrCodeInvalidToken         = "INVALID_TOKEN"
	ErrCodeCouponNotFound       = "COUPON_NOT_FOUND"
	ErrCodeUserNotFound         = "USER_NOT_FOUND"
	ErrCodeDuplicateOrder       = "DUPLICATE_ORDER"
	ErrCodeDuplicateCode        = "DUPLICATE_CODE"
	ErrCodeAlreadyRedeemed      = "ALREADY_REDEEMED"
	ErrCodeEmployeeInUse        = "EMPLOYEE_IN_USE"
	ErrCodeUserExists           = "USER_EXISTS"
	ErrCodeLastAdmin            = "LAST_ADMIN"
	ErrCodeGenerationExhausted  = "GENERATION_EXHAUSTED"
	ErrCodeInvalidLogin         = "INVALID_LOGIN"
	ErrCodeUnauthorised         = "UNAUTHORIZED"
	ErrCodeForbidden            = "FORBIDDEN"
	ErrCodeInternalError        = "INTERNAL_ERROR"
	ErrCodeNotificationDegraded = "NOTIFICATION_FAILED"
)

// DomainError is a business rule failure that callers can match with errors.Is.
type DomainError struct {
	Code    string
	Message string
	Kind    ErrorKind
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError with the same code, so errors built with a
// specific message still match their sentinel.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Kind:    kind,
	}
}

// Ledger and workflow errors
var (
	ErrEmployeeNotFound    = NewDomainError(KindNotFound, ErrCodeEmployeeNotFound, "Employee not found")
	ErrItemNotFound        = NewDomainError(KindNotFound, ErrCodeItemNotFound, "Menu item not found")
	ErrInvalidToken        = NewDomainError(KindNotFound, ErrCodeInvalidToken, "Invalid code or OTP")
	ErrCouponNotFound      = NewDomainError(KindNotFound, ErrCodeCouponNotFound, "Coupon not found")
	ErrDuplicateOrder      = NewDomainError(KindConflict, ErrCodeDuplicateOrder, "Employee already ordered this item today")
	ErrDuplicateCode       = NewDomainError(KindConflict, ErrCodeDuplicateCode, "Coupon code or OTP already in use")
	ErrAlreadyRedeemed     = NewDomainError(KindConflict, ErrCodeAlreadyRedeemed, "Coupon has already been redeemed")
	ErrGenerationExhausted = NewDomainError(KindExhausted, ErrCodeGenerationExhausted, "Could not generate a unique coupon code")
	ErrInvalidPeriod       = NewDomainError(KindInvalid, ErrCodeInvalidPeriod, "Report period is invalid")
)

// Directory and account errors
var (
	ErrInvalidEmployee   = NewDomainError(KindInvalid, ErrCodeInvalidEmployee, "Employee code must be positive and name is required")
	ErrInvalidMenuItem   = NewDomainError(KindInvalid, ErrCodeInvalidMenuItem, "Menu item needs a name and non-negative price and discount")
	ErrInvalidCredential = NewDomainError(KindInvalid, ErrCodeInvalidCredential, "Username, password and a known role are required")
	ErrInvalidRoster     = NewDomainError(KindInvalid, ErrCodeInvalidRoster, "Roster file could not be imported")
	ErrEmployeeInUse     = NewDomainError(KindConflict, ErrCodeEmployeeInUse, "Employee has coupons and cannot be deleted")
	ErrUserNotFound      = NewDomainError(KindNotFound, ErrCodeUserNotFound, "User not found")
	ErrUserExists        = NewDomainError(KindConflict, ErrCodeUserExists, "User already exists")
	ErrLastAdmin         = NewDomainError(KindConflict, ErrCodeLastAdmin, "At least one admin must remain")
	ErrInvalidLogin      = NewDomainError(KindUnauthorised, ErrCodeInvalidLogin, "Username/password is incorrect")
)
