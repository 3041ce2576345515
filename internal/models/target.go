package models

import "fmt"

// Target tells which Location slot the open map dialog is editing.
type Target int

const (
	TargetNone Target = iota
	TargetPickup
	TargetDelivery
)

func (t Target) String() string {
	switch t {
	case TargetPickup:
		return "pickup"
	case TargetDelivery:
		return "delivery"
	default:
		return "none"
	}
}

func ParseTarget(s string) (Target, error) {
	switch s {
	case "pickup":
		return TargetPickup, nil
	case "delivery":
		return TargetDelivery, nil
	default:
		return TargetNone, fmt.Errorf("unknown selection target %q", s)
	}
}

func (t Target) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Target) UnmarshalText(text []byte) error {
	if string(text) == "none" {
		*t = TargetNone
		return nil
	}
	parsed, err := ParseTarget(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
