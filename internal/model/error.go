package model

import "errors"

// Standard error codes carried in failed responses.
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeRewardNotFound     = "REWARD_NOT_FOUND"
	ErrCodeAddOnNotFound      = "ADD_ON_NOT_FOUND"
	ErrCodeInsufficientPoints = "INSUFFICIENT_POINTS"
	ErrCodeInvalidQuantity    = "INVALID_QUANTITY"
	ErrCodeEmptyPurchase      = "EMPTY_PURCHASE"
	ErrCodeMissingAddOn       = "MISSING_ADD_ON"
	ErrCodeEndpointNotFound   = "ENDPOINT_NOT_FOUND"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// Kind classifies a domain error for the transport layer.
type Kind int

const (
	// KindInvalid is a malformed request.
	KindInvalid Kind = iota
	// KindNotFound means a referenced catalog entry does not exist.
	KindNotFound
	// KindPreconditionFailed means the request is well formed but cannot be honoured.
	KindPreconditionFailed
)

// DomainError is a business-rule failure reported back to the caller.
type DomainError struct {
	Code    string
	Kind    Kind
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error.
func NewDomainError(code string, kind Kind, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Kind:    kind,
		Message: message,
	}
}

// AsDomainError unwraps err into a DomainError if it carries one.
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// Common domain errors
var (
	ErrRewardNotFound     = NewDomainError(ErrCodeRewardNotFound, KindNotFound, "Reward not found")
	ErrAddOnNotFound      = NewDomainError(ErrCodeAddOnNotFound, KindNotFound, "Add-on not found")
	ErrInsufficientPoints = NewDomainError(ErrCodeInsufficientPoints, KindPreconditionFailed, "Insufficient points")
	ErrInvalidQuantity    = NewDomainError(ErrCodeInvalidQuantity, KindInvalid, "Quantity must be greater than zero")
	ErrEmptyPurchase      = NewDomainError(ErrCodeEmptyPurchase, KindInvalid, "Purchase must contain at least one item")
	ErrMissingAddOn       = NewDomainError(ErrCodeMissingAddOn, KindInvalid, "Every item must reference an add-on")
	ErrInvalidJSON        = NewDomainError(ErrCodeInvalidJSON, KindInvalid, "Invalid request body")
	ErrEndpointNotFound   = NewDomainError(ErrCodeEndpointNotFound, KindNotFound, "Endpoint not found")
)
