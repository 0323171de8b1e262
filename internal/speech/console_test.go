package speech

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConsole_ListenReadsLines(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("  yes \n\nBali\n"), &out, 0)
	ctx := context.Background()

	text, ok := c.Listen(ctx, time.Second, time.Second)
	require.True(t, ok)
	require.Equal(t, "yes", text)

	_, ok = c.Listen(ctx, time.Second, time.Second)
	require.False(t, ok)

	text, ok = c.Listen(ctx, time.Second, time.Second)
	require.True(t, ok)
	require.Equal(t, "Bali", text)

	// input closed
	_, ok = c.Listen(ctx, time.Second, time.Second)
	require.False(t, ok)
}

func TestConsole_ListenTimesOut(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	var out bytes.Buffer
	c := NewConsole(r, &out, 0)

	start := time.Now()
	_, ok := c.Listen(context.Background(), 20*time.Millisecond, time.Second)
	require.False(t, ok)
	require.Less(t, time.Since(start), time.Second)
	require.Contains(t, out.String(), "(no response)")
}

func TestConsole_DropsLateLineAfterTimeout(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	var out bytes.Buffer
	c := NewConsole(r, &out, 0)
	ctx := context.Background()

	_, ok := c.Listen(ctx, 20*time.Millisecond, time.Second)
	require.False(t, ok)

	go func() { _, _ = w.Write([]byte("Bali\n")) }()
	require.Eventually(t, func() bool { return len(c.lines) == 1 }, time.Second, 5*time.Millisecond)

	_, ok = c.Listen(ctx, 20*time.Millisecond, time.Second)
	require.False(t, ok)
	require.Contains(t, out.String(), `(ignoring late answer "Bali")`)
	require.Zero(t, len(c.lines))
}

func TestConsole_ListenStopsOnCancel(t *testing.T) {
	r, w := io.Pipe()
	defer w.Close()
	c := NewConsole(r, io.Discard, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := c.Listen(ctx, time.Minute, time.Minute)
	require.False(t, ok)
}

func TestConsole_Speak(t *testing.T) {
	var out bytes.Buffer
	c := NewConsole(strings.NewReader(""), &out, time.Millisecond)

	c.Speak(context.Background(), "Hello there")
	require.Equal(t, "Agent: Hello there\n", out.String())
}

func TestScript_ReplaysAndRecords(t *testing.T) {
	s := NewScript([]string{"yes", "", " Bali "})
	ctx := context.Background()

	s.Speak(ctx, "Interested?")
	text, ok := s.Listen(ctx, 0, 0)
	require.True(t, ok)
	require.Equal(t, "yes", text)

	_, ok = s.Listen(ctx, 0, 0)
	require.False(t, ok)
	require.Equal(t, 1, s.Remaining())

	text, ok = s.Listen(ctx, 0, 0)
	require.True(t, ok)
	require.Equal(t, "Bali", text)

	_, ok = s.Listen(ctx, 0, 0)
	require.False(t, ok)

	require.Equal(t, []Turn{
		{Speaker: SpeakerAgent, Text: "Interested?"},
		{Speaker: SpeakerCaller, Text: "yes"},
		{Speaker: SpeakerCaller, Text: "Bali"},
	}, s.Transcript())
}

func TestScript_DoesNotAliasInput(t *testing.T) {
	in := []string{"yes"}
	s := NewScript(in)
	in[0] = "no"

	text, _ := s.Listen(context.Background(), 0, 0)
	require.Equal(t, "yes", text)
}
