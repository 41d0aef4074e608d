package workflow

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"hrms-portal/internal/form"
)

type Status int

const (
	StatusIdle Status = iota
	StatusEditing
	StatusSubmitting
)

func (s Status) String() string {
	switch s {
	case StatusEditing:
		return "editing"
	case StatusSubmitting:
		return "submitting"
	default:
		return "idle"
	}
}

type Option func(*options)

type options struct {
	notifier  Notifier
	confirmer Confirmer
	log       *slog.Logger
}

func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

func WithConfirmer(c Confirmer) Option {
	return func(o *options) { o.confirmer = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.log = l }
}

// Controller runs the create/edit/list/delete workflow of one entity page.
// All methods are safe for concurrent use. Backend calls are made without
// holding the lock, and at most one submit is outstanding at a time.
type Controller[T any] struct {
	def       Definition[T]
	msgs      Messages[T]
	backend   Backend[T]
	notifier  Notifier
	confirmer Confirmer
	log       *slog.Logger

	mu         sync.Mutex
	state      *form.State
	status     Status
	editID     string
	attachment *Attachment
	records    []T
}

func New[T any](def Definition[T], backend Backend[T], opts ...Option) (*Controller[T], error) {
	if err := def.validate(); err != nil {
		return nil, err
	}
	o := options{
		notifier:  NotifierFunc(func(Notification) {}),
		confirmer: AutoConfirm,
		log:       slog.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Controller[T]{
		def:       def,
		msgs:      def.messages(),
		backend:   backend,
		notifier:  o.notifier,
		confirmer: o.confirmer,
		log:       o.log.With("component", "workflow", "entity", def.Name),
		state:     def.Schema.New(form.ModeCreate),
	}, nil
}

// Initialize builds a fresh form in the given mode and loads the list.
// A failed load is reported through the notifier and returned.
func (c *Controller[T]) Initialize(ctx context.Context, mode form.Mode) error {
	c.mu.Lock()
	if c.status == StatusSubmitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}
	c.state = c.def.Schema.New(mode)
	c.status = StatusIdle
	c.editID = ""
	c.attachment = nil
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// ValidateField assigns value to name and reports whether it now passes.
func (c *Controller[T]) ValidateField(name, value string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Set(name, value)
}

// Type feeds one keystroke through the field's filter.
func (c *Controller[T]) Type(name string, r rune) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Type(name, r)
}

// Filter reports whether a keystroke would be accepted without applying it.
func (c *Controller[T]) Filter(name string, r rune) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Accepts(name, r)
}

func (c *Controller[T]) Field(name string) (form.FieldState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Field(name)
}

func (c *Controller[T]) Values() form.Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Values()
}

func (c *Controller[T]) Valid() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Valid()
}

func (c *Controller[T]) Mode() form.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Mode()
}

func (c *Controller[T]) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// EditingID returns the identifier of the record being edited, if any.
func (c *Controller[T]) EditingID() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editID, c.editID != ""
}

// Records returns a copy of the cached list.
func (c *Controller[T]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.records)
}

func (c *Controller[T]) Attach(a Attachment) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attachment = &a
}

func (c *Controller[T]) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.attachment = nil
}

func (c *Controller[T]) HasAttachment() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.attachment != nil
}

// Edit switches the form to edit mode for record. Only fields known to the
// schema are copied.
func (c *Controller[T]) Edit(record T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusSubmitting {
		return ErrSubmitInFlight
	}
	c.state.Reset()
	c.state.SetMode(form.ModeEdit)
	c.state.Patch(c.def.Decode(record))
	c.editID = c.def.ID(record)
	c.attachment = nil
	c.status = StatusEditing
	return nil
}

// Reset restores defaults and clears the edit context and the attachment.
// It is refused while a submit is in flight.
func (c *Controller[T]) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == StatusSubmitting {
		return ErrSubmitInFlight
	}
	c.resetLocked()
	return nil
}

func (c *Controller[T]) resetLocked() {
	c.state.SetMode(form.ModeCreate)
	c.state.Reset()
	c.editID = ""
	c.attachment = nil
	c.status = StatusIdle
}

// Submit validates the form and sends it to the backend as a create or, when
// an edit is in progress, an update.
func (c *Controller[T]) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.status == StatusSubmitting {
		c.mu.Unlock()
		c.log.Warn("submit ignored, another submit is in flight")
		return ErrSubmitInFlight
	}

	valid := c.state.Touch()
	missing := ""
	if c.def.Attachment != "" && c.editID == "" && c.attachment == nil {
		missing = c.def.Attachment
	}
	if !valid || missing != "" {
		verr := &ValidationError{Fields: c.state.Invalid(), MissingAttachment: missing}
		c.mu.Unlock()
		c.log.Debug("submit blocked", "error", verr)
		c.notify(SeverityWarn, "Incomplete", c.msgs.Incomplete)
		return verr
	}

	payload, err := c.def.Encode(c.state.Values())
	if err != nil {
		c.mu.Unlock()
		c.log.Debug("encode failed", "error", err)
		c.notify(SeverityWarn, "Incomplete", c.msgs.Incomplete)
		return &ValidationError{Fields: map[string][]string{"": {err.Error()}}}
	}

	prior := c.status
	id := c.editID
	var attachments []Attachment
	if c.attachment != nil {
		attachments = []Attachment{*c.attachment}
	}
	c.status = StatusSubmitting
	c.mu.Unlock()

	if c.def.ConfirmSubmit {
		decision := c.confirmer.Confirm(ctx, c.msgs.ConfirmSave)
		if !decision.Confirmed {
			c.restore(prior)
			c.notify(SeverityInfo, "Cancelled", "No changes were saved.")
			return ErrDeclined
		}
	}

	var (
		result  T
		summary string
		detail  string
	)
	if id == "" {
		result, err = c.backend.Create(ctx, payload, attachments)
	} else {
		result, err = c.backend.Update(ctx, id, payload)
	}
	if err != nil {
		c.restore(prior)
		fallback := c.msgs.CreateFailed
		if id != "" {
			fallback = c.msgs.UpdateFailed
		}
		c.log.Warn("submit failed", "id", id, "error", err)
		c.notify(SeverityError, "Error", Describe(err, fallback))
		return err
	}

	c.mu.Lock()
	if id == "" {
		c.records = append(c.records, result)
		summary, detail = "Created", c.msgs.Created(result)
	} else {
		c.replaceLocked(id, result)
		summary, detail = "Updated", c.msgs.Updated(result)
	}
	c.resetLocked()
	c.mu.Unlock()

	c.log.Debug("submit succeeded", "id", c.def.ID(result))
	c.notify(SeveritySuccess, summary, detail)

	// A failed refresh is already reported and keeps the patched cache.
	_ = c.Refresh(ctx)
	return nil
}

// Delete asks for confirmation, then removes the record with id.
func (c *Controller[T]) Delete(ctx context.Context, id string) error {
	decision := c.confirmer.Confirm(ctx, c.msgs.ConfirmDrop)
	if !decision.Confirmed {
		c.notify(SeverityInfo, "Cancelled", "Nothing was deleted.")
		return ErrDeclined
	}

	if err := c.backend.Delete(ctx, id); err != nil {
		c.log.Warn("delete failed", "id", id, "error", err)
		c.notify(SeverityError, "Error", Describe(err, c.msgs.DeleteFailed))
		return err
	}

	c.mu.Lock()
	c.records = slices.DeleteFunc(c.records, func(r T) bool { return c.def.ID(r) == id })
	if c.editID == id && c.status != StatusSubmitting {
		c.resetLocked()
	}
	c.mu.Unlock()

	c.notify(SeveritySuccess, "Deleted", c.msgs.Deleted)
	return nil
}

// Refresh replaces the cached list with a full fetch. On failure the cache
// is left untouched.
func (c *Controller[T]) Refresh(ctx context.Context) error {
	records, err := c.backend.List(ctx)
	if err != nil {
		c.log.Warn("list failed", "error", err)
		c.notify(SeverityError, "Error", Describe(err, c.msgs.LoadFailed))
		return err
	}

	c.mu.Lock()
	c.records = records
	c.mu.Unlock()
	return nil
}

func (c *Controller[T]) restore(prior Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = prior
}

func (c *Controller[T]) replaceLocked(id string, record T) {
	for i, r := range c.records {
		if c.def.ID(r) == id {
			c.records[i] = record
			return
		}
	}
	c.records = append(c.records, record)
}

func (c *Controller[T]) notify(sev Severity, summary, detail string) {
	c.notifier.Notify(Notification{Severity: sev, Summary: summary, Detail: detail})
}
