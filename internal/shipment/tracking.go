package shipment

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"regexp"
)

const trackingPrefix = "DRN-"

var (
	trackingPattern = regexp.MustCompile(`^DRN-\d{9}$`)
	trackingSpace   = big.NewInt(1_000_000_000)
)

// NewTrackingID returns a random id shaped like DRN-123456789.
func NewTrackingID() (string, error) {
	n, err := rand.Int(rand.Reader, trackingSpace)
	if err != nil {
		return "", fmt.Errorf("shipment: generate tracking id: %w", err)
	}
	return fmt.Sprintf("%s%09d", trackingPrefix, n.Int64()), nil
}

func ValidTrackingID(id string) bool {
	return trackingPattern.MatchString(id)
}
