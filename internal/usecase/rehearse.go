package usecase

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"travel-intake-agent/internal/dialogue"
	"travel-intake-agent/internal/speech"
)

const (
	defaultMaxUtterances   = 64
	defaultMaxUtteranceLen = 500
	maxSessionIDLen        = 128
)

// ControllerFactory builds a controller bound to one call's speech channel.
type ControllerFactory func(l dialogue.Listener, sp dialogue.Speaker) (*dialogue.Controller, error)

// RehearseService plays a whole scripted call through the dialogue controller.
type RehearseService struct {
	newController   ControllerFactory
	maxUtterances   int
	maxUtteranceLen int
}

type RehearseInput struct {
	Utterances []string
	SessionID  string
}

type RehearseOutput struct {
	SessionID  string
	FinalState dialogue.State
	Record     map[string]string
	Transcript []speech.Turn
	Negatives  int
	Persisted  bool
	Unused     int
}

func NewRehearseService(factory ControllerFactory, maxUtterances, maxUtteranceLen int) (*RehearseService, error) {
	if factory == nil {
		return nil, errors.New("usecase: controller factory must not be nil")
	}
	if maxUtterances <= 0 {
		maxUtterances = defaultMaxUtterances
	}
	if maxUtteranceLen <= 0 {
		maxUtteranceLen = defaultMaxUtteranceLen
	}
	return &RehearseService{
		newController:   factory,
		maxUtterances:   maxUtterances,
		maxUtteranceLen: maxUtteranceLen,
	}, nil
}

// Rehearse runs one conversation in which the caller says each utterance in
// turn. An empty utterance is heard as silence, as is running out of them.
func (s *RehearseService) Rehearse(ctx context.Context, in RehearseInput) (RehearseOutput, error) {
	if len(in.Utterances) > s.maxUtterances {
		return RehearseOutput{}, dialogue.NewError(dialogue.ErrorInvalidInput, "too_many_utterances", nil)
	}
	for _, u := range in.Utterances {
		if utf8.RuneCountInString(u) > s.maxUtteranceLen {
			return RehearseOutput{}, dialogue.NewError(dialogue.ErrorInvalidInput, "utterance_too_long", nil)
		}
	}
	sessionID := strings.TrimSpace(in.SessionID)
	if len(sessionID) > maxSessionIDLen {
		return RehearseOutput{}, dialogue.NewError(dialogue.ErrorInvalidInput, "session_id_too_long", nil)
	}
	if sessionID == "" {
		sessionID = newUUID()
	}

	script := speech.NewScript(in.Utterances)
	ctrl, err := s.newController(script, script)
	if err != nil {
		return RehearseOutput{}, dialogue.NewError(dialogue.ErrorInternal, "controller_init_error", err)
	}

	out := ctrl.RunSession(ctx, dialogue.NewSession(sessionID))
	return RehearseOutput{
		SessionID:  out.SessionID,
		FinalState: out.Final,
		Record:     out.Lead.Fields,
		Transcript: script.Transcript(),
		Negatives:  out.Negatives,
		Persisted:  out.Persisted,
		Unused:     script.Remaining(),
	}, nil
}

var newUUID = func() string {
	return uuid.NewString()
}
