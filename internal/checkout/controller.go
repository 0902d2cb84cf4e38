package checkout

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
)

// State enumerates the donation flow states. Modelling the flow as a single
// enumeration rules out impossible combinations such as a secret being held
// while a request is still in flight.
type State int

const (
	// StateSelecting: an amount is being chosen, no intent exists yet.
	StateSelecting State = iota
	// StateRequesting: the intent request is in flight.
	StateRequesting
	// StateReady: a client secret is held and the payment form can be mounted.
	StateReady
	// StateSubmitting: payment confirmation is in flight.
	StateSubmitting
	// StateSucceeded: the provider confirmed the payment.
	StateSucceeded
)

func (s State) String() string {
	switch s {
	case StateSelecting:
		return "selecting"
	case StateRequesting:
		return "requesting"
	case StateReady:
		return "ready"
	case StateSubmitting:
		return "submitting"
	case StateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

var (
	// ErrBusy is returned when an operation is attempted while a network
	// call is already in flight. It guards against duplicate provider calls
	// from rapid double-clicks.
	ErrBusy = errors.New("checkout: operation already in progress")
	// ErrCompleted is returned when confirmation is attempted after the
	// payment already succeeded.
	ErrCompleted = errors.New("checkout: payment already completed")
	// ErrNoIntent is returned when confirmation is attempted without a
	// held client secret.
	ErrNoIntent = errors.New("checkout: no payment intent requested")
)

// genericFailureMessage is shown for confirmation failures outside the
// card/validation class.
const genericFailureMessage = "An unexpected error occurred. Please try again."

// CardError marks a confirmation failure the donor can correct, such as a
// declined card or incomplete details. Its message is shown verbatim.
type CardError struct {
	Msg string
}

func (e *CardError) Error() string { return e.Msg }

// IntentClient requests a payment intent from the donation service and
// returns its client secret.
type IntentClient interface {
	CreateIntent(ctx context.Context, amount float64, currency string) (string, error)
}

// Confirmer completes a payment intent scoped to a client secret.
type Confirmer interface {
	Confirm(ctx context.Context, clientSecret string) error
}

// Config assembles a Controller's collaborators and amount catalog.
type Config struct {
	Client     IntentClient
	Confirmer  Confirmer
	Currency   string
	Presets    []int64
	OnComplete func()
}

// Controller orchestrates the donation flow: amount selection, intent
// request, and payment confirmation. All methods are safe for concurrent
// use; the mutex exists to serialise state transitions, not to protect
// shared data.
type Controller struct {
	mu         sync.Mutex
	client     IntentClient
	confirmer  Confirmer
	currency   string
	presets    []int64
	onComplete func()

	state        State
	preset       int64
	custom       string
	clientSecret string
	amount       int64
	lastErr      string
}

// New builds a Controller in the selecting state. The first preset, when
// present, is the initial selection.
func New(cfg Config) *Controller {
	c := &Controller{
		client:     cfg.Client,
		confirmer:  cfg.Confirmer,
		currency:   strings.ToLower(strings.TrimSpace(cfg.Currency)),
		presets:    cfg.Presets,
		onComplete: cfg.OnComplete,
		state:      StateSelecting,
	}
	if c.currency == "" {
		c.currency = "usd"
	}
	if len(c.presets) > 0 {
		c.preset = c.presets[0]
	}
	return c
}

// State reports the current flow state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ClientSecret returns the held secret, empty outside ready/submitting/succeeded.
func (c *Controller) ClientSecret() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clientSecret
}

// LastError returns the most recent user-facing error message.
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// SelectPreset sets the effective amount to a fixed catalog value and clears
// any custom text entry, making the preset authoritative.
func (c *Controller) SelectPreset(value int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preset = value
	c.custom = ""
}

// SetCustomAmount strips non-digit characters from the text and makes the
// custom value authoritative. Clearing the text reverts authority to the
// last selected preset.
func (c *Controller) SetCustomAmount(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.custom = digitsOnly(text)
}

// EffectiveAmount returns the parsed custom value when custom text is
// non-empty, otherwise the selected preset, in major currency units.
func (c *Controller) EffectiveAmount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.effectiveAmountLocked()
}

func (c *Controller) effectiveAmountLocked() int64 {
	if c.custom != "" {
		parsed, err := strconv.ParseInt(c.custom, 10, 64)
		if err == nil {
			return parsed
		}
	}
	return c.preset
}

// RequestIntent asks the donation service for a payment intent covering the
// effective amount. It is a guarded no-op while a request or confirmation is
// already in flight, so rapid double-clicks produce exactly one outbound
// call. On success the controller holds the returned secret and becomes
// ready; on failure the error is surfaced and the flow returns to selecting.
func (c *Controller) RequestIntent(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateRequesting, StateSubmitting:
		c.mu.Unlock()
		return ErrBusy
	case StateSucceeded:
		c.mu.Unlock()
		return ErrCompleted
	}
	if c.client == nil {
		c.mu.Unlock()
		return errors.New("checkout: intent client not configured")
	}
	amount := c.effectiveAmountLocked()
	if amount < 1 {
		amount = 1
	}
	c.state = StateRequesting
	c.lastErr = ""
	currency := c.currency
	client := c.client
	c.mu.Unlock()

	secret, err := client.CreateIntent(ctx, float64(amount), currency)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateSelecting
		c.clientSecret = ""
		c.amount = 0
		c.lastErr = err.Error()
		return err
	}
	c.state = StateReady
	c.clientSecret = secret
	c.amount = amount
	return nil
}

// ConfirmPayment delegates to the provider's confirmation call scoped to the
// held secret. Card/validation errors keep the flow ready with the same
// secret and surface the provider message verbatim; other errors keep the
// flow ready behind a generic message. Success transitions to succeeded
// exactly once and fires the completion callback; further confirmations are
// refused.
func (c *Controller) ConfirmPayment(ctx context.Context) error {
	c.mu.Lock()
	switch c.state {
	case StateRequesting, StateSubmitting:
		c.mu.Unlock()
		return ErrBusy
	case StateSucceeded:
		c.mu.Unlock()
		return ErrCompleted
	case StateSelecting:
		c.mu.Unlock()
		return ErrNoIntent
	}
	if c.confirmer == nil {
		c.mu.Unlock()
		return errors.New("checkout: confirmer not configured")
	}
	c.state = StateSubmitting
	c.lastErr = ""
	secret := c.clientSecret
	confirmer := c.confirmer
	c.mu.Unlock()

	err := confirmer.Confirm(ctx, secret)

	c.mu.Lock()
	if err != nil {
		c.state = StateReady
		var cardErr *CardError
		if errors.As(err, &cardErr) {
			c.lastErr = cardErr.Msg
		} else {
			c.lastErr = genericFailureMessage
		}
		c.mu.Unlock()
		return err
	}
	c.state = StateSucceeded
	done := c.onComplete
	c.mu.Unlock()

	// Run the callback outside the lock so it may read controller state.
	if done != nil {
		done()
	}
	return nil
}

// Reset starts a new donation: the held secret and locked amount are fully
// cleared so a stale secret can never be reused for a different amount.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = StateSelecting
	c.clientSecret = ""
	c.amount = 0
	c.custom = ""
	c.lastErr = ""
	if len(c.presets) > 0 {
		c.preset = c.presets[0]
	} else {
		c.preset = 0
	}
}

func digitsOnly(text string) string {
	var b strings.Builder
	for _, r := range text {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
