package speech

import (
	"context"
	"strings"
	"sync"
	"time"
)

const (
	SpeakerAgent  = "agent"
	SpeakerCaller = "caller"
)

// Turn is one line of a rehearsal transcript.
type Turn struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Script replays pre-recorded caller utterances and captures the resulting
// transcript. An empty utterance, or running out of them, is heard as silence.
type Script struct {
	mu         sync.Mutex
	utterances []string
	turns      []Turn
}

func NewScript(utterances []string) *Script {
	return &Script{utterances: append([]string(nil), utterances...)}
}

func (s *Script) Listen(ctx context.Context, _, _ time.Duration) (string, bool) {
	if ctx.Err() != nil {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.utterances) == 0 {
		return "", false
	}
	text := strings.TrimSpace(s.utterances[0])
	s.utterances = s.utterances[1:]
	if text == "" {
		return "", false
	}
	s.turns = append(s.turns, Turn{Speaker: SpeakerCaller, Text: text})
	return text, true
}

func (s *Script) Speak(_ context.Context, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, Turn{Speaker: SpeakerAgent, Text: text})
}

// Transcript returns a copy of every turn so far.
func (s *Script) Transcript() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Turn(nil), s.turns...)
}

// Remaining reports how many utterances were never consumed.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.utterances)
}
