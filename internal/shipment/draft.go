package shipment

import (
	"strconv"
	"strings"
	"time"

	"drone-delivery-api/internal/apperror"
	"drone-delivery-api/internal/models"
)

const DateLayout = "2006-01-02"

var (
	ErrMissingPickup      = apperror.Validation("Please select a pickup location")
	ErrMissingDelivery    = apperror.Validation("Please select a delivery location")
	ErrMissingDescription = apperror.Validation("Please describe your package")
	ErrMissingWeight      = apperror.Validation("Please enter the package weight")
	ErrInvalidWeight      = apperror.Validation("Package weight must be a positive number")
	ErrMissingDate        = apperror.Validation("Please choose a preferred date")
	ErrInvalidDate        = apperror.Validation("Preferred date must use the YYYY-MM-DD format")
)

// Draft is the transient state of the shipment form.
type Draft struct {
	Pickup             models.Location `json:"pickup"`
	Delivery           models.Location `json:"delivery"`
	PackageDescription string          `json:"package_description"`
	Weight             string          `json:"weight"`
	Date               string          `json:"date"`
}

// Validate returns the first missing or malformed field, checked in form order.
func (d Draft) Validate() *apperror.Error {
	if !d.Pickup.Resolved() {
		return ErrMissingPickup
	}
	if !d.Delivery.Resolved() {
		return ErrMissingDelivery
	}
	if strings.TrimSpace(d.PackageDescription) == "" {
		return ErrMissingDescription
	}

	weight := strings.TrimSpace(d.Weight)
	if weight == "" {
		return ErrMissingWeight
	}
	if w, err := strconv.ParseFloat(weight, 64); err != nil || w <= 0 {
		return ErrInvalidWeight
	}

	date := strings.TrimSpace(d.Date)
	if date == "" {
		return ErrMissingDate
	}
	if _, err := time.Parse(DateLayout, date); err != nil {
		return ErrInvalidDate
	}

	return nil
}

// Record builds the row handed to the persistence collaborator.
func (d Draft) Record(trackingID string) models.ShipmentRecord {
	return models.ShipmentRecord{
		TrackingID:        trackingID,
		Status:            models.StatusProcessing,
		EstimatedDelivery: strings.TrimSpace(d.Date),
		CurrentLocation:   d.Pickup.Address,
		Destination:       d.Delivery.Address,
	}
}

func (d Draft) clone() Draft {
	c := d
	c.Pickup = cloneLocation(d.Pickup)
	c.Delivery = cloneLocation(d.Delivery)
	return c
}

func cloneLocation(l models.Location) models.Location {
	if l.Coordinates != nil {
		coords := *l.Coordinates
		l.Coordinates = &coords
	}
	return l
}
