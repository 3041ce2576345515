package models

import "time"

const StatusProcessing = "processing"

// ShipmentRecord is the row handed to the persistence collaborator.
type ShipmentRecord struct {
	TrackingID        string     `json:"tracking_id"`
	Status            string     `json:"status"`
	EstimatedDelivery string     `json:"estimated_delivery"`
	CurrentLocation   string     `json:"current_location"`
	Destination       string     `json:"destination"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
}
