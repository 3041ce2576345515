package shipment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"drone-delivery-api/internal/apperror"
	"drone-delivery-api/internal/models"

	"github.com/rs/zerolog"
)

// TrackingPath is where a confirmed shipment sends the user.
const TrackingPath = "/track"

type Phase int

const (
	PhaseEditing Phase = iota
	PhaseConfirming
)

func (p Phase) String() string {
	if p == PhaseConfirming {
		return "confirming"
	}
	return "editing"
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "editing":
		*p = PhaseEditing
	case "confirming":
		*p = PhaseConfirming
	default:
		return fmt.Errorf("shipment: unknown phase %q", text)
	}
	return nil
}

// ErrNotFound is returned by a Store when no shipment has the tracking id.
var ErrNotFound = errors.New("shipment: not found")

// Inserter persists a shipment record and returns its tracking id.
type Inserter interface {
	InsertShipment(ctx context.Context, record models.ShipmentRecord) (string, error)
}

type Store interface {
	Inserter
	GetShipment(ctx context.Context, trackingID string) (*models.ShipmentRecord, error)
}

// Confirmation is the outcome of a successful ConfirmShipment.
type Confirmation struct {
	TrackingID string `json:"tracking_id"`
	Redirect   string `json:"redirect"`
}

type Option func(*Form)

func WithNotifier(n apperror.Notifier) Option {
	return func(f *Form) { f.notifier = n }
}

// WithObserver reports every ConfirmShipment outcome.
func WithObserver(o func(outcome string)) Option {
	return func(f *Form) { f.observe = o }
}

func WithTrackingIDs(gen func() (string, error)) Option {
	return func(f *Form) { f.newTrackingID = gen }
}

// Form owns one shipment draft for the lifetime of a form session.
type Form struct {
	store         Inserter
	notifier      apperror.Notifier
	observe       func(outcome string)
	newTrackingID func() (string, error)

	mu       sync.Mutex
	draft    Draft
	phase    Phase
	inFlight bool
}

func NewForm(store Inserter, opts ...Option) *Form {
	f := &Form{store: store, newTrackingID: NewTrackingID}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Draft returns a copy of the current draft.
func (f *Form) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.draft.clone()
}

func (f *Form) Phase() Phase {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.phase
}

// Editable reports whether the draft may change right now.
func (f *Form) Editable() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseEditing {
		return f.fail(apperror.ErrDraftLocked)
	}
	return nil
}

// SetLocation stores an accepted selection. It is refused, with a
// notification, while the draft is locked for confirmation.
func (f *Form) SetLocation(target models.Target, loc models.Location) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseEditing {
		return f.fail(apperror.ErrDraftLocked)
	}

	switch target {
	case models.TargetPickup:
		f.draft.Pickup = cloneLocation(loc)
	case models.TargetDelivery:
		f.draft.Delivery = cloneLocation(loc)
	default:
		return f.fail(apperror.ErrInvalidTarget)
	}
	return nil
}

// SetAddress records typed address text. The slot's coordinates are dropped
// since they no longer describe the text.
func (f *Form) SetAddress(target models.Target, address string) error {
	return f.edit(func(d *Draft) error {
		var slot *models.Location
		switch target {
		case models.TargetPickup:
			slot = &d.Pickup
		case models.TargetDelivery:
			slot = &d.Delivery
		default:
			return apperror.ErrInvalidTarget
		}

		if slot.Address != address {
			slot.Address = address
			slot.Coordinates = nil
		}
		return nil
	})
}

func (f *Form) SetPackageDescription(s string) error {
	return f.edit(func(d *Draft) error {
		d.PackageDescription = s
		return nil
	})
}

func (f *Form) SetWeight(s string) error {
	return f.edit(func(d *Draft) error {
		d.Weight = strings.TrimSpace(s)
		return nil
	})
}

func (f *Form) SetDate(s string) error {
	return f.edit(func(d *Draft) error {
		d.Date = strings.TrimSpace(s)
		return nil
	})
}

// Submit validates the draft and opens the confirmation view. A failed check
// notifies about the first missing field and changes nothing.
func (f *Form) Submit() (Draft, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase == PhaseConfirming {
		return f.draft.clone(), nil
	}
	if err := f.draft.Validate(); err != nil {
		return Draft{}, f.fail(err)
	}
	f.phase = PhaseConfirming

	return f.draft.clone(), nil
}

// CancelSubmit leaves the confirmation view and unlocks the draft.
func (f *Form) CancelSubmit() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.inFlight {
		return f.fail(apperror.ErrSubmitInProgress)
	}
	f.phase = PhaseEditing

	return nil
}

// ConfirmShipment persists the submitted draft under a fresh tracking id. On
// failure the draft stays as it was so the user can retry; on success it is
// cleared.
func (f *Form) ConfirmShipment(ctx context.Context) (Confirmation, error) {
	f.mu.Lock()
	if f.phase != PhaseConfirming {
		f.mu.Unlock()
		return Confirmation{}, f.fail(apperror.ErrNotSubmitted)
	}
	if f.inFlight {
		f.mu.Unlock()
		return Confirmation{}, f.fail(apperror.ErrSubmitInProgress)
	}
	f.inFlight = true
	draft := f.draft.clone()
	f.mu.Unlock()

	trackingID, err := f.persist(ctx, draft)

	f.mu.Lock()
	f.inFlight = false
	if err != nil {
		f.mu.Unlock()
		f.record("failed")
		zerolog.Ctx(ctx).Warn().Err(err).Msg("shipment insert failed")
		return Confirmation{}, f.fail(apperror.Wrap(apperror.ErrShipmentFailed, err))
	}
	f.draft = Draft{}
	f.phase = PhaseEditing
	f.mu.Unlock()

	f.record("confirmed")
	zerolog.Ctx(ctx).Info().Str("tracking_id", trackingID).Msg("shipment scheduled")
	if f.notifier != nil {
		f.notifier.Notify(apperror.Info("Shipment scheduled", "Your tracking ID is "+trackingID))
	}

	return Confirmation{TrackingID: trackingID, Redirect: TrackingPath}, nil
}

func (f *Form) persist(ctx context.Context, draft Draft) (string, error) {
	trackingID, err := f.newTrackingID()
	if err != nil {
		return "", err
	}

	stored, err := f.store.InsertShipment(ctx, draft.Record(trackingID))
	if err != nil {
		return "", err
	}
	if stored == "" {
		stored = trackingID
	}
	return stored, nil
}

func (f *Form) edit(apply func(d *Draft) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.phase != PhaseEditing {
		return f.fail(apperror.ErrDraftLocked)
	}

	next := f.draft
	if err := apply(&next); err != nil {
		var appErr *apperror.Error
		if errors.As(err, &appErr) {
			return f.fail(appErr)
		}
		return err
	}
	f.draft = next

	return nil
}

func (f *Form) record(outcome string) {
	if f.observe != nil {
		f.observe(outcome)
	}
}

func (f *Form) fail(err *apperror.Error) error {
	if f.notifier != nil {
		f.notifier.Notify(apperror.NotificationFor(err))
	}
	return err
}
