package speech

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeRecorder struct {
	clip        []byte
	err         error
	timeout     time.Duration
	phraseLimit time.Duration
}

func (f *fakeRecorder) Capture(_ context.Context, timeout, phraseLimit time.Duration) ([]byte, error) {
	f.timeout, f.phraseLimit = timeout, phraseLimit
	return f.clip, f.err
}

type fakeTranscriber struct {
	text  string
	err   error
	calls int
}

func (f *fakeTranscriber) Transcribe(context.Context, []byte) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeSynthesizer struct {
	audio []byte
	err   error
	texts []string
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, text string) ([]byte, error) {
	f.texts = append(f.texts, text)
	return f.audio, f.err
}

type fakePlayer struct {
	played [][]byte
	err    error
}

func (f *fakePlayer) Play(_ context.Context, pcm []byte) error {
	f.played = append(f.played, pcm)
	return f.err
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewVoice_Validates(t *testing.T) {
	rec, stt, tts, pl := &fakeRecorder{}, &fakeTranscriber{}, &fakeSynthesizer{}, &fakePlayer{}

	_, err := NewVoice(nil, stt, tts, pl, VoiceConfig{})
	require.Error(t, err)
	_, err = NewVoice(rec, nil, tts, pl, VoiceConfig{})
	require.Error(t, err)
	_, err = NewVoice(rec, stt, nil, pl, VoiceConfig{})
	require.Error(t, err)
	_, err = NewVoice(rec, stt, tts, nil, VoiceConfig{})
	require.Error(t, err)

	v, err := NewVoice(rec, stt, tts, pl, VoiceConfig{})
	require.NoError(t, err)
	require.NotNil(t, v.log)
}

func TestVoice_Listen(t *testing.T) {
	rec := &fakeRecorder{clip: []byte{1, 2}}
	stt := &fakeTranscriber{text: "  yes please "}
	var echo bytes.Buffer
	v, err := NewVoice(rec, stt, &fakeSynthesizer{}, &fakePlayer{}, VoiceConfig{Echo: &echo, Logger: quietLogger()})
	require.NoError(t, err)

	text, ok := v.Listen(context.Background(), 3*time.Second, 7*time.Second)
	require.True(t, ok)
	require.Equal(t, "yes please", text)
	require.Equal(t, 3*time.Second, rec.timeout)
	require.Equal(t, 7*time.Second, rec.phraseLimit)
	require.Contains(t, echo.String(), "You: yes please")
}

func TestVoice_ListenFailuresAreSilence(t *testing.T) {
	cases := []struct {
		name string
		rec  *fakeRecorder
		stt  *fakeTranscriber
	}{
		{"capture error", &fakeRecorder{err: errors.New("no device")}, &fakeTranscriber{text: "x"}},
		{"no speech", &fakeRecorder{}, &fakeTranscriber{text: "x"}},
		{"stt error", &fakeRecorder{clip: []byte{1}}, &fakeTranscriber{err: errors.New("503")}},
		{"blank transcript", &fakeRecorder{clip: []byte{1}}, &fakeTranscriber{text: "  "}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v, err := NewVoice(tc.rec, tc.stt, &fakeSynthesizer{}, &fakePlayer{}, VoiceConfig{Logger: quietLogger()})
			require.NoError(t, err)

			text, ok := v.Listen(context.Background(), time.Second, time.Second)
			require.False(t, ok)
			require.Empty(t, text)
		})
	}
}

func TestVoice_ListenSkipsTranscriptionWithoutSpeech(t *testing.T) {
	stt := &fakeTranscriber{text: "x"}
	v, err := NewVoice(&fakeRecorder{}, stt, &fakeSynthesizer{}, &fakePlayer{}, VoiceConfig{Logger: quietLogger()})
	require.NoError(t, err)

	v.Listen(context.Background(), time.Second, time.Second)
	require.Zero(t, stt.calls)
}

func TestVoice_Speak(t *testing.T) {
	tts := &fakeSynthesizer{audio: []byte{5, 6}}
	pl := &fakePlayer{}
	var echo bytes.Buffer
	v, err := NewVoice(&fakeRecorder{}, &fakeTranscriber{}, tts, pl, VoiceConfig{Echo: &echo, Logger: quietLogger()})
	require.NoError(t, err)

	v.Speak(context.Background(), "Welcome")
	require.Equal(t, []string{"Welcome"}, tts.texts)
	require.Equal(t, [][]byte{{5, 6}}, pl.played)
	require.Equal(t, "Agent: Welcome\n", echo.String())
}

func TestVoice_SpeakFailuresAreAbsorbed(t *testing.T) {
	pl := &fakePlayer{}
	v, err := NewVoice(&fakeRecorder{}, &fakeTranscriber{}, &fakeSynthesizer{err: errors.New("quota")}, pl, VoiceConfig{Logger: quietLogger()})
	require.NoError(t, err)

	v.Speak(context.Background(), "Welcome")
	require.Empty(t, pl.played)

	pl.err = errors.New("no audio device")
	v, err = NewVoice(&fakeRecorder{}, &fakeTranscriber{}, &fakeSynthesizer{audio: []byte{1}}, pl, VoiceConfig{Logger: quietLogger()})
	require.NoError(t, err)
	v.Speak(context.Background(), "Welcome")
	require.Len(t, pl.played, 1)
}

func TestVoice_ConcreteCollaborators(t *testing.T) {
	var (
		_ Recorder    = (*Microphone)(nil)
		_ Transcriber = (*Cartesia)(nil)
		_ Synthesizer = (*Cartesia)(nil)
		_ AudioPlayer = (*Player)(nil)
	)

	c, err := NewCartesia("key", "voice-1")
	require.NoError(t, err)
	v, err := NewVoice(&Microphone{}, c, c, &Player{}, VoiceConfig{Logger: quietLogger()})
	require.NoError(t, err)
	require.NotNil(t, v)
}
