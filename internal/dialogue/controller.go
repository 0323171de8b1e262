// Package dialogue runs the scripted intake call: a fixed state machine that
// speaks prompts, listens with bounded retries, classifies answers and saves
// the collected record once the call reaches a terminal state.
package dialogue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"travel-intake-agent/internal/catalog"
	"travel-intake-agent/internal/domain"
	"travel-intake-agent/internal/intent"
)

// Completer generates a free-form reply to a caller question.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Store appends a finished lead.
type Store interface {
	Append(ctx context.Context, lead domain.Lead) error
}

// Config tunes a Controller. Zero values fall back to defaults, except Retry
// whose zero value means a single listen attempt.
type Config struct {
	Classifier    *intent.Classifier
	Catalog       *catalog.Catalog
	Retry         RetryPolicy
	Timing        ListenTiming
	NegativeLimit int
	Completer     Completer // optional
	Logger        *slog.Logger
}

// Controller drives one conversation at a time.
type Controller struct {
	listener   Listener
	speaker    Speaker
	store      Store
	classifier *intent.Classifier
	catalog    *catalog.Catalog
	retry      RetryPolicy
	timing     ListenTiming
	limit      int
	completer  Completer
	log        *slog.Logger

	handlers map[State]func(context.Context, *Session) Signal
}

// Session is the per-call context threaded through every state.
type Session struct {
	ID        string
	Record    *domain.Record
	Negatives int

	budget    int
	hasBudget bool
	offered   []domain.Deal
	visited   []State
	lead      *domain.Lead
	persisted bool
}

// Outcome summarizes a finished conversation.
type Outcome struct {
	SessionID string
	Lead      domain.Lead
	Final     State
	Visited   []State
	Negatives int
	Persisted bool
	Continue  bool
}

var (
	newSessionID = func() string { return uuid.NewString() }
	now          = time.Now
)

func NewController(l Listener, sp Speaker, st Store, cfg Config) (*Controller, error) {
	if l == nil {
		return nil, errors.New("dialogue: listener must not be nil")
	}
	if sp == nil {
		return nil, errors.New("dialogue: speaker must not be nil")
	}
	if st == nil {
		return nil, errors.New("dialogue: store must not be nil")
	}
	if cfg.Classifier == nil {
		cfg.Classifier = intent.NewClassifier(intent.Config{})
	}
	if cfg.Catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("dialogue: load default catalog: %w", err)
		}
		cfg.Catalog = c
	}
	if cfg.NegativeLimit <= 0 {
		cfg.NegativeLimit = DefaultNegativeLimit
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	c := &Controller{
		listener:   l,
		speaker:    sp,
		store:      st,
		classifier: cfg.Classifier,
		catalog:    cfg.Catalog,
		retry:      cfg.Retry.normalized(),
		timing:     cfg.Timing.normalized(),
		limit:      cfg.NegativeLimit,
		completer:  cfg.Completer,
		log:        cfg.Logger,
	}
	c.handlers = map[State]func(context.Context, *Session) Signal{
		StateIntroduction:          c.introduction,
		StateTravelInquiry:         c.travelInquiry,
		StateDestinationSuggestion: c.destinationSuggestion,
		StateDetailCollection:      c.detailCollection,
		StatePresentOffer:          c.presentOffer,
		StateAlternativeOffer:      c.alternativeOffer,
		StateBookingDetails:        c.bookingDetails,
		StateClosing:               c.closing,
		StateContactFallback:       c.contactFallback,
	}
	return c, nil
}

// NewSession starts an empty per-call context.
func NewSession(id string) *Session {
	if strings.TrimSpace(id) == "" {
		id = newSessionID()
	}
	return &Session{ID: id, Record: domain.NewRecord()}
}

// Run executes one full conversation with a fresh session.
func (c *Controller) Run(ctx context.Context) Outcome {
	return c.RunSession(ctx, NewSession(""))
}

// RunSession executes one full conversation using s, which must be fresh.
func (c *Controller) RunSession(ctx context.Context, s *Session) Outcome {
	state := StateIntroduction
	last := state
	c.log.Info("conversation started", "session", s.ID)
	for state != StateEnd {
		s.visited = append(s.visited, state)
		last = state
		signal := c.handlers[state](ctx, s)
		next := c.advance(s, state, signal)
		c.log.Debug("dialogue transition", "session", s.ID, "from", state, "signal", signal, "to", next, "negatives", s.Negatives)
		state = next
	}

	out := Outcome{
		SessionID: s.ID,
		Final:     last,
		Visited:   append([]State(nil), s.visited...),
		Negatives: s.Negatives,
		Persisted: s.persisted,
		Continue:  false,
	}
	if s.lead != nil {
		out.Lead = *s.lead
	}
	c.log.Info("conversation finished", "session", s.ID, "final", last, "fields", s.Record.Len(), "persisted", s.persisted)
	return out
}

func (c *Controller) advance(s *Session, from State, signal Signal) State {
	if signal == SignalNegative {
		s.Negatives++
	}
	return Next(from, signal, s.Negatives, c.limit)
}

// ask speaks the prompt and listens with the retry policy.
func (c *Controller) ask(ctx context.Context, prompt string) Response {
	c.speaker.Speak(ctx, prompt)
	return ListenWithRetry(ctx, c.listener, c.speaker, c.retry, c.timing)
}

// confirm asks a yes/no question.
func (c *Controller) confirm(ctx context.Context, prompt string) Signal {
	if c.classifier.IsAffirmative(c.ask(ctx, prompt).Text) {
		return SignalAffirmative
	}
	return SignalNegative
}

func (c *Controller) collect(ctx context.Context, s *Session, questions []question) {
	for _, q := range questions {
		s.Record.Set(q.field, c.ask(ctx, q.prompt).Value())
	}
}

// save hands the record to the store once; failures are logged only.
func (c *Controller) save(ctx context.Context, s *Session) {
	if s.lead != nil {
		return
	}
	lead := domain.NewLead(s.ID, s.Record, now())
	s.lead = &lead
	if err := c.store.Append(ctx, lead); err != nil {
		e := NewError(ErrorPersistence, "append_failed", err)
		c.log.Warn("failed to persist lead", "session", s.ID, "code", e.Code, "reason", e.Reason, "err", err)
		return
	}
	s.persisted = true
}
