package domain

import "errors"

var (
	ErrZoneNotFound      = errors.New("zone not found")
	ErrGateNotFound      = errors.New("gate not found")
	ErrPersonnelNotFound = errors.New("personnel not found")
	ErrInvalidAlertType  = errors.New("invalid alert type")
	ErrInvalidGateStatus = errors.New("invalid gate status")
	ErrAlreadyDispatched = errors.New("unit already dispatched")
	ErrMessageRequired   = errors.New("message required")
)
