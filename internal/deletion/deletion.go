// Package deletion implements a generic single-target delete confirmation.
// The same controller backs every entity kind with a confirm dialog
// (check-ins today, food visits and activities tomorrow), parameterized by a
// Deleter and an optional type-the-name-to-confirm policy.
package deletion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/eykoh/wayfarer/internal/domain"
)

// Deleter removes one record by ID. The API client satisfies it.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// DeleterFunc adapts a plain function to the Deleter interface.
type DeleterFunc func(ctx context.Context, id string) error

// Delete calls f.
func (f DeleterFunc) Delete(ctx context.Context, id string) error { return f(ctx, id) }

// Target identifies the record armed for deletion. Name is only consulted by
// the type-the-name policy and for display.
type Target struct {
	ID   string
	Name string
}

// Controller arms at most one deletion target at a time and runs the
// confirmed delete. Arming a new target replaces the previous one; there is
// no queue. While a confirmed delete is in flight, Confirm and Cancel are
// both refused, so the dialog's buttons can simply mirror InFlight.
type Controller struct {
	deleter Deleter
	// requireName, when set, makes Confirm demand that the typed text match
	// the armed target's name, ignoring case and surrounding whitespace,
	// before dispatching.
	requireName bool
	// onDeleted, when set, receives the ID of every successfully deleted
	// record so the owning collection can drop its cached copy.
	onDeleted func(id string)

	mu       sync.Mutex
	target   *Target
	typed    string
	inFlight bool
	lastErr  error
}

// Option configures a Controller.
type Option func(*Controller)

// WithNameConfirmation requires the user to type the target's name before
// Confirm will dispatch.
func WithNameConfirmation() Option {
	return func(c *Controller) { c.requireName = true }
}

// WithDeletedCallback registers a callback invoked with each successfully
// deleted ID.
func WithDeletedCallback(fn func(id string)) Option {
	return func(c *Controller) { c.onDeleted = fn }
}

// NewController constructs a Controller dispatching through deleter.
func NewController(deleter Deleter, opts ...Option) *Controller {
	c := &Controller{deleter: deleter}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Request arms t for deletion, atomically replacing any previously armed
// target. Typed confirmation text and any recorded error are reset.
func (c *Controller) Request(t Target) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = &t
	c.typed = ""
	c.lastErr = nil
}

// Cancel disarms the pending target without side effects. It is refused
// while a confirmed delete is in flight; callers should disable the cancel
// affordance during that window.
func (c *Controller) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inFlight {
		return fmt.Errorf("deletion.Controller.Cancel: %w: delete in progress", domain.ErrValidation)
	}
	c.target = nil
	c.typed = ""
	c.lastErr = nil
	return nil
}

// TypeName records the user's typed confirmation text.
func (c *Controller) TypeName(s string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.typed = s
}

// Confirm dispatches the armed deletion. With no target armed it is a no-op.
// It is not re-entrant: a Confirm while one is in flight is refused.
//
// On success the target is disarmed and the deleted ID is reported to the
// callback. On failure the target stays armed with the error recorded, so
// the user can retry or cancel.
func (c *Controller) Confirm(ctx context.Context) error {
	c.mu.Lock()
	if c.target == nil {
		c.mu.Unlock()
		return nil
	}
	if c.inFlight {
		c.mu.Unlock()
		return fmt.Errorf("deletion.Controller.Confirm: %w: delete already in progress", domain.ErrValidation)
	}
	if c.requireName && !strings.EqualFold(strings.TrimSpace(c.typed), c.target.Name) {
		c.mu.Unlock()
		return fmt.Errorf("deletion.Controller.Confirm: %w: typed name does not match", domain.ErrValidation)
	}
	target := *c.target
	c.inFlight = true
	c.mu.Unlock()

	err := c.deleter.Delete(ctx, target.ID)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false
	if err != nil {
		c.lastErr = err
		return fmt.Errorf("deletion.Controller.Confirm: %w", classify(err))
	}

	// Disarm only if the armed target is still the one we deleted; a
	// replacement requested mid-flight stays armed.
	if c.target != nil && c.target.ID == target.ID {
		c.target = nil
		c.typed = ""
	}
	c.lastErr = nil
	if c.onDeleted != nil {
		c.onDeleted(target.ID)
	}
	return nil
}

// Pending returns the armed target, if any.
func (c *Controller) Pending() (Target, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.target == nil {
		return Target{}, false
	}
	return *c.target, true
}

// InFlight reports whether a confirmed delete is outstanding.
func (c *Controller) InFlight() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFlight
}

// Err returns the failure recorded by the last Confirm, if it failed.
func (c *Controller) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// classify maps collaborator failures onto the domain sentinels, passing
// already-classified errors through.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnavailable),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrPermissionDenied):
		return err
	default:
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
}
