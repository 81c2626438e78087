package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	CorrelationID string `json:"correlationId,omitempty"`
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON       = "INVALID_JSON"
	ErrCodeValidation        = "VALIDATION_ERROR"
	ErrCodeDishNotFound      = "DISH_NOT_FOUND"
	ErrCodeCategoryNotFound  = "CATEGORY_NOT_FOUND"
	ErrCodeDishUnavailable   = "DISH_UNAVAILABLE"
	ErrCodeInvalidQuantity   = "INVALID_QUANTITY"
	ErrCodeInvalidSlug       = "INVALID_SLUG"
	ErrCodeEmptyCart         = "EMPTY_CART"
	ErrCodeUnsupportedLocale = "UNSUPPORTED_LOCALE"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrDishNotFound      = NewDomainError(ErrCodeDishNotFound, "Dish not found")
	ErrCategoryNotFound  = NewDomainError(ErrCodeCategoryNotFound, "Category not found")
	ErrDishUnavailable   = NewDomainError(ErrCodeDishUnavailable, "Dish is not available for ordering")
	ErrInvalidQuantity   = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be a whole number no greater than 1000")
	ErrInvalidSlug       = NewDomainError(ErrCodeInvalidSlug, "Malformed slug URL")
	ErrEmptyCart         = NewDomainError(ErrCodeEmptyCart, "Cart must contain at least one dish")
	ErrUnsupportedLocale = NewDomainError(ErrCodeUnsupportedLocale, "Locale is not supported")
)
