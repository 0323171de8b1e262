// Package speech provides the listener and speaker collaborators used by the
// dialogue controller: a terminal console, a scripted rehearsal transcript
// and a microphone/speaker voice channel.
package speech

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Console reads caller answers as lines of text and prints agent lines.
type Console struct {
	lines chan string
	out   io.Writer
	pause time.Duration

	// stale is set after a timed-out listen; lines typed since then answer
	// the previous question and are dropped.
	stale bool
}

// NewConsole starts reading lines from in. Agent lines are written to out,
// followed by an optional pause.
func NewConsole(in io.Reader, out io.Writer, pause time.Duration) *Console {
	lines := make(chan string, 1)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return &Console{lines: lines, out: out, pause: pause}
}

// Listen waits up to timeout for one line. The phrase limit does not apply
// to typed input.
func (c *Console) Listen(ctx context.Context, timeout, _ time.Duration) (string, bool) {
	if c.stale {
		c.dropPending()
		c.stale = false
	}
	fmt.Fprint(c.out, "You: ")
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case line, ok := <-c.lines:
		if !ok {
			fmt.Fprintln(c.out)
			return "", false
		}
		line = strings.TrimSpace(line)
		return line, line != ""
	case <-timer.C:
		fmt.Fprintln(c.out, "(no response)")
		c.stale = true
		return "", false
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", false
	}
}

func (c *Console) dropPending() {
	for {
		select {
		case line, ok := <-c.lines:
			if !ok {
				return
			}
			if line = strings.TrimSpace(line); line != "" {
				fmt.Fprintf(c.out, "(ignoring late answer %q)\n", line)
			}
		default:
			return
		}
	}
}

func (c *Console) Speak(ctx context.Context, text string) {
	fmt.Fprintf(c.out, "Agent: %s\n", text)
	wait(ctx, c.pause)
}

func wait(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
