package repo

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound       = errors.New("product not found")
	ErrBillNotFound          = errors.New("bill not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrRequestNotFound       = errors.New("access request not found")
	ErrDuplicatedValueUnique = errors.New("duplicated value for unique field")
	ErrDuplicateBill         = errors.New("bill number already exists")
	ErrInvalidQuantityChange = errors.New("quantity change would make stock negative")
	ErrInsufficientStock     = errors.New("insufficient stock")
)

const queryTimeout = 3 * time.Second
