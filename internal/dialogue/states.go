package dialogue

import (
	"context"
	"fmt"
	"strings"

	"travel-intake-agent/internal/catalog"
	"travel-intake-agent/internal/domain"
	"travel-intake-agent/internal/intent"
)

func (c *Controller) introduction(ctx context.Context, _ *Session) Signal {
	return c.confirm(ctx, promptIntroduction)
}

// travelInquiry stores a named destination; an empty or undecided answer
// sends the caller to budget-based suggestions without counting a refusal.
func (c *Controller) travelInquiry(ctx context.Context, s *Session) Signal {
	resp := c.ask(ctx, promptTravelInquiry)
	if resp.Empty() || c.classifier.Matches(resp.Text, intent.Undecided) {
		return SignalUndecided
	}
	c.storeDestination(s, resp)
	return SignalAffirmative
}

func (c *Controller) detailCollection(ctx context.Context, s *Session) Signal {
	c.collect(ctx, s, detailQuestions)
	return SignalNext
}

func (c *Controller) presentOffer(ctx context.Context, s *Session) Signal {
	deal := c.pickOffer(s)
	s.offered = append(s.offered, deal)
	return c.offer(ctx, s, fmt.Sprintf(promptOffer, catalog.Describe(deal)), deal)
}

func (c *Controller) alternativeOffer(ctx context.Context, s *Session) Signal {
	deal, ok := c.nextOffer(s)
	if !ok {
		c.speaker.Speak(ctx, promptNoAlternative)
		return SignalNext
	}
	s.offered = append(s.offered, deal)
	return c.offer(ctx, s, fmt.Sprintf(promptAlternative, catalog.Describe(deal)), deal)
}

func (c *Controller) offer(ctx context.Context, s *Session, prompt string, deal domain.Deal) Signal {
	if c.confirm(ctx, prompt) != SignalAffirmative {
		return SignalNegative
	}
	s.Record.Set(domain.FieldSelectedOffer, deal.Name)
	return SignalAffirmative
}

func (c *Controller) bookingDetails(ctx context.Context, s *Session) Signal {
	c.collect(ctx, s, bookingQuestions)
	return SignalNext
}

// closing asks the callback questions. They do not count as refusals since
// closing always ends the call.
func (c *Controller) closing(ctx context.Context, s *Session) Signal {
	if c.confirm(ctx, promptExpertCallback) == SignalAffirmative {
		s.Record.Set(domain.FieldRequiresCallback, "true")
	} else if c.confirm(ctx, promptBetterTime) == SignalAffirmative {
		s.Record.Set(domain.FieldCallbackRequested, "true")
	}
	if c.completer != nil {
		c.answerQuestion(ctx, s)
	}
	c.speaker.Speak(ctx, promptClosing)
	c.save(ctx, s)
	return SignalNext
}

func (c *Controller) contactFallback(ctx context.Context, s *Session) Signal {
	s.Record.Override(domain.FieldContactPreference, c.ask(ctx, promptContactFallback).Value())
	c.speaker.Speak(ctx, promptFallbackThankYou)
	c.save(ctx, s)
	return SignalNext
}

// answerQuestion speaks a generated reply to one free-form question. Any
// failure skips the reply.
func (c *Controller) answerQuestion(ctx context.Context, s *Session) {
	resp := c.ask(ctx, promptOtherQuestions)
	if resp.Empty() {
		return
	}
	reply, err := c.completer.Complete(ctx, completionPrompt(s, resp.Text))
	if err != nil {
		e := NewError(ErrorCompletion, "completion_failed", err)
		c.log.Warn("completion unavailable, skipping reply", "session", s.ID, "code", e.Code, "reason", e.Reason, "err", err)
		return
	}
	if reply = strings.TrimSpace(reply); reply == "" {
		e := NewError(ErrorCompletion, "completion_empty", nil)
		c.log.Warn("completion returned no text, skipping reply", "session", s.ID, "code", e.Code, "reason", e.Reason)
		return
	}
	c.speaker.Speak(ctx, reply)
}

func completionPrompt(s *Session, question string) string {
	var b strings.Builder
	b.WriteString(completionInstructions)
	if dest, ok := s.Record.Get(domain.FieldDestination); ok && dest != domain.Sentinel {
		b.WriteString(" The caller is planning a trip to ")
		b.WriteString(dest)
		b.WriteString(".")
	}
	b.WriteString("\n\nCaller: ")
	b.WriteString(question)
	return b.String()
}

// storeDestination records the catalog spelling of a recognised destination,
// the raw answer otherwise, or the sentinel when nothing was heard.
func (c *Controller) storeDestination(s *Session, resp Response) {
	value := resp.Value()
	if !resp.Empty() {
		if d, ok := c.catalog.Lookup(resp.Text); ok {
			value = d.Destination
		}
	}
	s.Record.Set(domain.FieldDestination, value)
}

// pickOffer prefers the deal for the chosen destination, then the first deal
// within budget, then the first deal in the catalog.
func (c *Controller) pickOffer(s *Session) domain.Deal {
	if dest, ok := s.Record.Get(domain.FieldDestination); ok && dest != domain.Sentinel {
		if d, ok := c.catalog.Lookup(dest); ok {
			return d
		}
	}
	if s.hasBudget {
		if deals := c.catalog.WithinBudget(s.budget); len(deals) > 0 {
			return deals[0]
		}
	}
	return c.catalog.Deals()[0]
}

// nextOffer returns the first deal not yet offered, preferring deals within
// the caller's budget.
func (c *Controller) nextOffer(s *Session) (domain.Deal, bool) {
	if s.hasBudget {
		if d, ok := firstUnoffered(c.catalog.WithinBudget(s.budget), s.offered); ok {
			return d, true
		}
	}
	return firstUnoffered(c.catalog.Deals(), s.offered)
}

func firstUnoffered(deals, offered []domain.Deal) (domain.Deal, bool) {
	for _, d := range deals {
		seen := false
		for _, o := range offered {
			if o.Name == d.Name {
				seen = true
				break
			}
		}
		if !seen {
			return d, true
		}
	}
	return domain.Deal{}, false
}
