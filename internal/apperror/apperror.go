// Package apperror classifies the failures a form session can run into. Every
// error carries a user-facing message that handlers turn into a notification.
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindCollaboratorUnavailable
	KindLookupFailure
	KindPersistenceFailure
	KindSuperseded
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindCollaboratorUnavailable:
		return "collaborator_unavailable"
	case KindLookupFailure:
		return "lookup_failure"
	case KindPersistenceFailure:
		return "persistence_failure"
	case KindSuperseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// HTTPStatus is the status code a handler answers with for the kind.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindCollaboratorUnavailable:
		return http.StatusServiceUnavailable
	case KindLookupFailure:
		return http.StatusNotFound
	case KindPersistenceFailure:
		return http.StatusBadGateway
	case KindSuperseded:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type Error struct {
	Kind    Kind
	Title   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind and message, so wrapped sentinels
// still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func New(kind Kind, message string) *Error {
	title := "Error"
	if kind == KindValidation {
		title = "Missing information"
	}
	return &Error{Kind: kind, Title: title, Message: message}
}

// Wrap returns a copy of sentinel carrying cause.
func Wrap(sentinel *Error, cause error) *Error {
	e := *sentinel
	e.Err = cause
	return &e
}

func Validation(message string) *Error {
	return New(KindValidation, message)
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Message returns the user-facing text of err, or a generic one.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Something went wrong. Please try again."
}

var (
	ErrDialogClosed         = Validation("Open the location dialog first")
	ErrInvalidTarget        = Validation("Choose either a pickup or a delivery location")
	ErrEmptyQuery           = Validation("Please enter an address to search")
	ErrInvalidCoordinates   = Validation("Selected coordinates are out of range")
	ErrSelectLocationFirst  = Validation("Please select a location first")
	ErrNothingToConfirm     = Validation("There is no location awaiting confirmation")
	ErrAwaitingConfirmation = Validation("Accept or cancel the pending confirmation first")

	ErrMapsLoading            = New(KindCollaboratorUnavailable, "Maps are still loading. Please try again in a moment.")
	ErrGeolocationUnsupported = New(KindCollaboratorUnavailable, "Geolocation is not supported by your browser")

	ErrLocationNotFound     = New(KindLookupFailure, "Location not found. Please try a different address.")
	ErrReverseGeocodeFailed = New(KindLookupFailure, "Failed to get address for selected location")
	ErrLocationUnavailable  = New(KindLookupFailure, "Unable to retrieve your location")

	ErrShipmentFailed      = New(KindPersistenceFailure, "Failed to schedule shipment. Please try again.")
	ErrShipmentNotFound    = New(KindLookupFailure, "No shipment found for that tracking ID")
	ErrTrackingUnavailable = New(KindPersistenceFailure, "Unable to load tracking information. Please try again.")
	ErrTrackingIDRequired  = Validation("Please enter a tracking ID")
	ErrNotSubmitted        = Validation("Submit the shipment before confirming it")
	ErrSubmitInProgress    = Validation("Your shipment is already being scheduled")
	ErrDraftLocked         = Validation("Cancel the confirmation to edit the shipment")

	ErrSuperseded = New(KindSuperseded, "A newer lookup replaced this one")
)
