package dialogue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"travel-intake-agent/internal/domain"
)

func TestResponse_Value(t *testing.T) {
	require.Equal(t, domain.Sentinel, Response{}.Value())
	require.Equal(t, domain.Sentinel, Response{Text: "  "}.Value())
	require.Equal(t, "Bali", Response{Text: "Bali"}.Value())
	require.True(t, Response{Text: "\n"}.Empty())
}

func TestListenWithRetry_FirstAttempt(t *testing.T) {
	l := &scriptedListener{script: []string{"yes"}}
	sp := &recordingSpeaker{}

	resp := ListenWithRetry(context.Background(), l, sp, DefaultRetryPolicy(), ListenTiming{})
	require.Equal(t, "yes", resp.Text)
	require.Equal(t, 1, l.calls)
	require.Empty(t, sp.lines)
}

func TestListenWithRetry_RepromptsThenSucceeds(t *testing.T) {
	l := &scriptedListener{script: []string{"", "  Bali "}}
	sp := &recordingSpeaker{}

	resp := ListenWithRetry(context.Background(), l, sp, RetryPolicy{MaxRetries: 1}, ListenTiming{})
	require.Equal(t, "Bali", resp.Text)
	require.Equal(t, 2, l.calls)
	require.Equal(t, []string{DefaultReprompt}, sp.lines)
}

func TestListenWithRetry_ExhaustionReturnsSentinel(t *testing.T) {
	for _, retries := range []int{0, 1, 3} {
		l := &scriptedListener{}
		sp := &recordingSpeaker{}

		resp := ListenWithRetry(context.Background(), l, sp, RetryPolicy{MaxRetries: retries, Reprompt: "again?"}, ListenTiming{})
		require.True(t, resp.Empty())
		require.Equal(t, domain.Sentinel, resp.Value())
		require.Equal(t, retries+1, l.calls, "retries=%d", retries)
		require.Len(t, sp.lines, retries)
	}
}

func TestListenWithRetry_NegativeBoundIsClamped(t *testing.T) {
	l := &scriptedListener{}
	resp := ListenWithRetry(context.Background(), l, &recordingSpeaker{}, RetryPolicy{MaxRetries: -1}, ListenTiming{})
	require.True(t, resp.Empty())
	require.Equal(t, 1, l.calls)
}

func TestListenWithRetry_WhitespaceCountsAsEmpty(t *testing.T) {
	l := &scriptedListener{script: []string{"   ", "ok"}}
	resp := ListenWithRetry(context.Background(), l, &recordingSpeaker{}, RetryPolicy{MaxRetries: 1}, ListenTiming{})
	require.Equal(t, "ok", resp.Text)
}

func TestListenWithRetry_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := &scriptedListener{script: []string{"yes"}}

	resp := ListenWithRetry(ctx, l, &recordingSpeaker{}, DefaultRetryPolicy(), ListenTiming{})
	require.True(t, resp.Empty())
	require.Zero(t, l.calls)
}

func TestListenWithRetry_ForwardsTiming(t *testing.T) {
	l := &scriptedListener{script: []string{"a", "b"}}
	ListenWithRetry(context.Background(), l, &recordingSpeaker{}, RetryPolicy{}, ListenTiming{})
	require.Equal(t, DefaultTimeout, l.timeout)
	require.Equal(t, DefaultPhraseLimit, l.phraseLimit)

	ListenWithRetry(context.Background(), l, &recordingSpeaker{}, RetryPolicy{}, ListenTiming{Timeout: time.Second, PhraseLimit: 5 * time.Second})
	require.Equal(t, time.Second, l.timeout)
	require.Equal(t, 5*time.Second, l.phraseLimit)
}
