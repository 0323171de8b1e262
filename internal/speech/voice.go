package speech

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

type Recorder interface {
	Capture(ctx context.Context, timeout, phraseLimit time.Duration) ([]byte, error)
}

type Transcriber interface {
	Transcribe(ctx context.Context, pcm []byte) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// AudioPlayer plays raw PCM at PlaybackSampleRate.
type AudioPlayer interface {
	Play(ctx context.Context, pcm []byte) error
}

// VoiceConfig holds the optional parts of a Voice.
type VoiceConfig struct {
	Echo   io.Writer // agent and caller lines are also printed here when set
	Pause  time.Duration
	Logger *slog.Logger
}

// Voice is a spoken channel: microphone capture plus transcription in, speech
// synthesis plus playback out. Collaborator failures are logged and heard as
// silence.
type Voice struct {
	rec    Recorder
	stt    Transcriber
	tts    Synthesizer
	player AudioPlayer
	echo   io.Writer
	pause  time.Duration
	log    *slog.Logger
}

func NewVoice(rec Recorder, stt Transcriber, tts Synthesizer, player AudioPlayer, cfg VoiceConfig) (*Voice, error) {
	if rec == nil {
		return nil, errors.New("speech: recorder must not be nil")
	}
	if stt == nil {
		return nil, errors.New("speech: transcriber must not be nil")
	}
	if tts == nil {
		return nil, errors.New("speech: synthesizer must not be nil")
	}
	if player == nil {
		return nil, errors.New("speech: player must not be nil")
	}
	if cfg.Echo == nil {
		cfg.Echo = io.Discard
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Voice{
		rec:    rec,
		stt:    stt,
		tts:    tts,
		player: player,
		echo:   cfg.Echo,
		pause:  cfg.Pause,
		log:    cfg.Logger,
	}, nil
}

func (v *Voice) Listen(ctx context.Context, timeout, phraseLimit time.Duration) (string, bool) {
	fmt.Fprintln(v.echo, "Listening...")
	clip, err := v.rec.Capture(ctx, timeout, phraseLimit)
	if err != nil {
		v.log.Warn("microphone capture failed", "err", err)
		return "", false
	}
	if len(clip) == 0 {
		return "", false
	}
	text, err := v.stt.Transcribe(ctx, clip)
	if err != nil {
		v.log.Warn("speech recognition failed", "err", err)
		return "", false
	}
	if text = strings.TrimSpace(text); text == "" {
		return "", false
	}
	fmt.Fprintf(v.echo, "You: %s\n", text)
	return text, true
}

func (v *Voice) Speak(ctx context.Context, text string) {
	fmt.Fprintf(v.echo, "Agent: %s\n", text)
	audio, err := v.tts.Synthesize(ctx, text)
	if err != nil {
		v.log.Warn("speech synthesis failed", "err", err)
		return
	}
	if err := v.player.Play(ctx, audio); err != nil {
		v.log.Warn("audio playback failed", "err", err)
		return
	}
	wait(ctx, v.pause)
}
