package errors

import (
	"fmt"
)

var (
	ErrNotFound            = fmt.Errorf("not found")
	ErrInvalidInput        = fmt.Errorf("invalid input")
	ErrConstraintViolation = fmt.Errorf("constraint violation")
)
