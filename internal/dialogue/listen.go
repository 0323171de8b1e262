package dialogue

import (
	"context"
	"strings"
	"time"

	"travel-intake-agent/internal/domain"
)

const (
	DefaultReprompt    = "Sorry, I didn't catch that. Could you please repeat?"
	DefaultTimeout     = 10 * time.Second
	DefaultPhraseLimit = 20 * time.Second
)

// Listener captures one utterance. It reports false on timeout, silence or
// recognition failure; it never returns an error.
type Listener interface {
	Listen(ctx context.Context, timeout, phraseLimit time.Duration) (string, bool)
}

// Speaker renders text audibly.
type Speaker interface {
	Speak(ctx context.Context, text string)
}

// Response is one caller answer; the zero value means nothing usable was heard.
type Response struct {
	Text string
}

// Empty reports whether no usable answer was obtained.
func (r Response) Empty() bool {
	return strings.TrimSpace(r.Text) == ""
}

// Value returns the answer, or the sentinel when empty.
func (r Response) Value() string {
	if r.Empty() {
		return domain.Sentinel
	}
	return r.Text
}

// RetryPolicy bounds re-prompts after an empty listen. MaxRetries of zero
// means a single attempt.
type RetryPolicy struct {
	MaxRetries int
	Reprompt   string
}

// DefaultRetryPolicy allows one retry.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxRetries: 1, Reprompt: DefaultReprompt}
}

func (p RetryPolicy) normalized() RetryPolicy {
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if strings.TrimSpace(p.Reprompt) == "" {
		p.Reprompt = DefaultReprompt
	}
	return p
}

// ListenTiming is forwarded to the listener on every attempt.
type ListenTiming struct {
	Timeout     time.Duration // wait for speech to start
	PhraseLimit time.Duration // longest accepted utterance
}

func (t ListenTiming) normalized() ListenTiming {
	if t.Timeout <= 0 {
		t.Timeout = DefaultTimeout
	}
	if t.PhraseLimit <= 0 {
		t.PhraseLimit = DefaultPhraseLimit
	}
	return t
}

// ListenWithRetry listens up to 1+MaxRetries times, speaking the re-prompt
// before each retry. It returns an empty Response once attempts run out or
// ctx is done.
func ListenWithRetry(ctx context.Context, l Listener, sp Speaker, p RetryPolicy, t ListenTiming) Response {
	p, t = p.normalized(), t.normalized()
	for attempt := 0; attempt <= p.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			break
		}
		if attempt > 0 {
			sp.Speak(ctx, p.Reprompt)
		}
		text, ok := l.Listen(ctx, t.Timeout, t.PhraseLimit)
		if text = strings.TrimSpace(text); ok && text != "" {
			return Response{Text: text}
		}
	}
	return Response{}
}
