// Package flow implements the location selection dialog: it resolves an address
// and coordinate pair for the pickup or delivery slot of a shipment draft by text
// search, pin selection or device geolocation, followed by a confirmation step.
//
// A Flow instance is reused for both slots; the target is chosen on Open. Every
// lookup takes a sequence token and a response is applied only if its token is
// still the latest, so a slow lookup cannot overwrite a newer selection.
package flow

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"drone-delivery-api/internal/apperror"
	"drone-delivery-api/internal/geocode"
	"drone-delivery-api/internal/models"

	"github.com/rs/zerolog"
)

type State int

const (
	StateClosed State = iota
	StateOpen
	StateSearching
	StatePinSelecting
	StateGeolocating
	StateResolved
	StateConfirming
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateSearching:
		return "searching"
	case StatePinSelecting:
		return "pin_selecting"
	case StateGeolocating:
		return "geolocating"
	case StateResolved:
		return "resolved"
	case StateConfirming:
		return "confirming"
	default:
		return "closed"
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for st := StateClosed; st <= StateConfirming; st++ {
		if st.String() == string(text) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("flow: unknown state %q", text)
}

// Readiness reports whether the geocoding collaborator has finished loading.
type Readiness interface {
	Ready() bool
}

// Sink receives the accepted selection for a target. A sink that refuses the
// write reports it to the user itself.
type Sink interface {
	SetLocation(target models.Target, loc models.Location) error
}

// Observer is told the outcome of every lookup, e.g. for metrics.
type Observer func(method, outcome string)

const (
	MethodSearch  = "search"
	MethodPin     = "pin"
	MethodCurrent = "current_location"
)

// Selection is what the dialog shows for final acknowledgement.
type Selection struct {
	Target      models.Target      `json:"target"`
	Address     string             `json:"address"`
	Coordinates models.Coordinates `json:"coordinates"`
}

// Snapshot is a read-only copy of the dialog state.
type Snapshot struct {
	State       State               `json:"state"`
	Target      models.Target       `json:"target"`
	Address     string              `json:"address"`
	Coordinates *models.Coordinates `json:"coordinates"`
}

type Option func(*Flow)

func WithNotifier(n apperror.Notifier) Option {
	return func(f *Flow) { f.notifier = n }
}

func WithObserver(o Observer) Option {
	return func(f *Flow) { f.observe = o }
}

type Flow struct {
	geocoder  geocode.Geocoder
	readiness Readiness
	sink      Sink
	notifier  apperror.Notifier
	observe   Observer

	mu      sync.Mutex
	state   State
	target  models.Target
	address string
	coords  *models.Coordinates
	seq     uint64
}

func New(geocoder geocode.Geocoder, readiness Readiness, sink Sink, opts ...Option) *Flow {
	f := &Flow{
		geocoder:  geocoder,
		readiness: readiness,
		sink:      sink,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Open starts a selection for target and drops any transient coordinates.
func (f *Flow) Open(target models.Target) error {
	if target != models.TargetPickup && target != models.TargetDelivery {
		return f.fail(apperror.ErrInvalidTarget)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.state = StateOpen
	f.target = target
	f.address = ""
	f.coords = nil
	f.seq++

	return nil
}

// SearchByText geocodes query and resolves the first match. On no match the
// dialog stays in the searching state and the previous pick is dropped, so
// there is nothing left to confirm.
func (f *Flow) SearchByText(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)

	f.mu.Lock()
	if err := f.checkEditableLocked(); err != nil {
		f.mu.Unlock()
		return f.fail(err)
	}
	if query == "" {
		f.mu.Unlock()
		return f.fail(apperror.ErrEmptyQuery)
	}
	if !f.ready() {
		f.mu.Unlock()
		f.record(MethodSearch, "unavailable")
		return f.fail(apperror.ErrMapsLoading)
	}
	f.state = StateSearching
	token := f.nextTokenLocked()
	f.mu.Unlock()

	match, err := f.geocoder.Geocode(ctx, query)

	f.mu.Lock()
	if token != f.seq {
		f.mu.Unlock()
		f.record(MethodSearch, "superseded")
		return apperror.ErrSuperseded
	}
	if err != nil {
		f.address = ""
		f.coords = nil
		f.mu.Unlock()
		f.record(MethodSearch, "not_found")
		if !errors.Is(err, geocode.ErrNotFound) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("query", query).Msg("geocode failed")
		}
		return f.fail(apperror.Wrap(apperror.ErrLocationNotFound, err))
	}
	f.resolveLocked(match.FormattedAddress, match.Coordinates)
	f.mu.Unlock()

	f.record(MethodSearch, "resolved")
	return nil
}

// SelectPin takes coordinates from map interaction and reverse geocodes them.
// If that fails the coordinates are kept, so the user can retry or confirm
// without an address.
func (f *Flow) SelectPin(ctx context.Context, coords models.Coordinates) error {
	if err := coords.Validate(); err != nil {
		return f.fail(apperror.Wrap(apperror.ErrInvalidCoordinates, err))
	}

	f.mu.Lock()
	if err := f.checkEditableLocked(); err != nil {
		f.mu.Unlock()
		return f.fail(err)
	}
	token := f.beginPinLocked(coords)
	f.mu.Unlock()

	return f.reverse(ctx, MethodPin, token, coords)
}

// UseCurrentLocation asks geo for the device position and continues as
// SelectPin. A nil geo means geolocation is not supported.
func (f *Flow) UseCurrentLocation(ctx context.Context, geo Geolocator) error {
	f.mu.Lock()
	if err := f.checkEditableLocked(); err != nil {
		f.mu.Unlock()
		return f.fail(err)
	}
	if geo == nil {
		f.mu.Unlock()
		f.record(MethodCurrent, "unsupported")
		return f.fail(apperror.ErrGeolocationUnsupported)
	}
	prev := f.state
	f.state = StateGeolocating
	token := f.nextTokenLocked()
	f.mu.Unlock()

	pos, err := geo.CurrentPosition(ctx)
	if err == nil {
		err = pos.Validate()
	}

	f.mu.Lock()
	if token != f.seq {
		f.mu.Unlock()
		f.record(MethodCurrent, "superseded")
		return apperror.ErrSuperseded
	}
	if err != nil {
		f.state = prev
		f.mu.Unlock()
		f.record(MethodCurrent, "unavailable")
		zerolog.Ctx(ctx).Debug().Err(err).Msg("geolocation failed")
		return f.fail(apperror.Wrap(apperror.ErrLocationUnavailable, err))
	}
	token = f.beginPinLocked(pos)
	f.mu.Unlock()

	return f.reverse(ctx, MethodCurrent, token, pos)
}

// Confirm moves a resolved selection to the confirmation step. Without
// coordinates it only notifies. A pin whose reverse lookup failed is confirmed
// with its coordinate label as the address.
func (f *Flow) Confirm() (Selection, error) {
	f.mu.Lock()

	switch f.state {
	case StateClosed:
		f.mu.Unlock()
		return Selection{}, f.fail(apperror.ErrDialogClosed)
	case StateConfirming:
		sel := f.selectionLocked()
		f.mu.Unlock()
		return sel, nil
	}

	if f.coords == nil {
		f.mu.Unlock()
		return Selection{}, f.fail(apperror.ErrSelectLocationFirst)
	}
	if f.address == "" {
		f.address = f.coords.Label()
	}
	f.state = StateConfirming
	// in-flight lookups must not move the dialog out of confirmation
	f.seq++
	sel := f.selectionLocked()
	f.mu.Unlock()

	return sel, nil
}

// AcceptConfirmation commits the selection into the sink for the active target
// and closes the dialog. If the sink refuses it the dialog stays in
// confirmation.
func (f *Flow) AcceptConfirmation() (Selection, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateConfirming {
		return Selection{}, f.fail(apperror.ErrNothingToConfirm)
	}

	sel := f.selectionLocked()
	if f.sink != nil {
		coords := sel.Coordinates
		if err := f.sink.SetLocation(sel.Target, models.Location{Address: sel.Address, Coordinates: &coords}); err != nil {
			return Selection{}, err
		}
	}
	f.resetLocked()

	return sel, nil
}

// CancelConfirmation returns to the resolved selection without committing.
func (f *Flow) CancelConfirmation() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state != StateConfirming {
		return f.fail(apperror.ErrNothingToConfirm)
	}
	f.state = StateResolved

	return nil
}

// Close dismisses the dialog without committing anything.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.resetLocked()
}

func (f *Flow) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	snap := Snapshot{State: f.state, Target: f.target, Address: f.address}
	if f.coords != nil {
		c := *f.coords
		snap.Coordinates = &c
	}
	return snap
}

func (f *Flow) reverse(ctx context.Context, method string, token uint64, coords models.Coordinates) error {
	if !f.ready() {
		f.record(method, "unavailable")
		return f.fail(apperror.ErrMapsLoading)
	}

	addr, err := f.geocoder.ReverseGeocode(ctx, coords)

	f.mu.Lock()
	if token != f.seq {
		f.mu.Unlock()
		f.record(method, "superseded")
		return apperror.ErrSuperseded
	}
	if err != nil {
		f.mu.Unlock()
		f.record(method, "unresolved")
		if !errors.Is(err, geocode.ErrNotFound) {
			zerolog.Ctx(ctx).Warn().Err(err).Str("coordinates", coords.Label()).Msg("reverse geocode failed")
		}
		return f.fail(apperror.Wrap(apperror.ErrReverseGeocodeFailed, err))
	}
	f.resolveLocked(addr, coords)
	f.mu.Unlock()

	f.record(method, "resolved")
	return nil
}

func (f *Flow) checkEditableLocked() *apperror.Error {
	switch f.state {
	case StateClosed:
		return apperror.ErrDialogClosed
	case StateConfirming:
		return apperror.ErrAwaitingConfirmation
	}
	return nil
}

func (f *Flow) beginPinLocked(coords models.Coordinates) uint64 {
	f.state = StatePinSelecting
	f.address = ""
	f.coords = &coords
	return f.nextTokenLocked()
}

func (f *Flow) resolveLocked(address string, coords models.Coordinates) {
	f.state = StateResolved
	f.address = address
	f.coords = &coords
}

func (f *Flow) resetLocked() {
	f.state = StateClosed
	f.target = models.TargetNone
	f.address = ""
	f.coords = nil
	f.seq++
}

func (f *Flow) selectionLocked() Selection {
	sel := Selection{Target: f.target, Address: f.address}
	if f.coords != nil {
		sel.Coordinates = *f.coords
	}
	return sel
}

func (f *Flow) nextTokenLocked() uint64 {
	f.seq++
	return f.seq
}

func (f *Flow) ready() bool {
	return f.readiness != nil && f.readiness.Ready()
}

func (f *Flow) record(method, outcome string) {
	if f.observe != nil {
		f.observe(method, outcome)
	}
}

// fail notifies the user about err and returns it. Notifiers must not call
// back into the flow.
func (f *Flow) fail(err *apperror.Error) error {
	if f.notifier != nil {
		f.notifier.Notify(apperror.NotificationFor(err))
	}
	return err
}
