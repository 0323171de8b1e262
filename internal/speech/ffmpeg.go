package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"runtime"
	"strconv"
	"time"
)

const (
	frameDuration    = 20 * time.Millisecond
	bytesPerSample   = 2
	defaultThreshold = 500
	defaultHangover  = 800 * time.Millisecond
)

// Microphone captures one utterance from the default input device through
// ffmpeg, cutting it with a simple energy detector.
type Microphone struct {
	path      string
	goos      string
	threshold float64
	hangover  time.Duration
}

// NewMicrophone locates ffmpeg on PATH.
func NewMicrophone() (*Microphone, error) {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return nil, fmt.Errorf("speech: ffmpeg not found: %w", err)
	}
	return &Microphone{path: path, goos: runtime.GOOS, threshold: defaultThreshold, hangover: defaultHangover}, nil
}

// Capture waits up to timeout for speech to start and returns at most
// phraseLimit of it. A nil clip means no speech was detected.
func (m *Microphone) Capture(ctx context.Context, timeout, phraseLimit time.Duration) ([]byte, error) {
	args, err := captureArgs(m.goos)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout+phraseLimit+time.Second)
	defer cancel()

	cmd := exec.CommandContext(ctx, m.path, args...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("speech: open ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("speech: start ffmpeg: %w", err)
	}

	clip, segErr := segment(stdout, MicSampleRate, timeout, phraseLimit, m.threshold, m.hangover)
	cancel()
	_ = cmd.Wait()
	if segErr != nil {
		return nil, fmt.Errorf("speech: read microphone: %w", segErr)
	}
	return clip, nil
}

func captureArgs(goos string) ([]string, error) {
	var input []string
	switch goos {
	case "darwin":
		input = []string{"-f", "avfoundation", "-i", ":0"}
	case "linux":
		input = []string{"-f", "pulse", "-i", "default"}
	default:
		return nil, fmt.Errorf("speech: microphone capture is not supported on %s", goos)
	}
	args := []string{"-hide_banner", "-loglevel", "error", "-nostdin"}
	args = append(args, input...)
	return append(args, "-ac", "1", "-ar", strconv.Itoa(MicSampleRate), "-f", "s16le", "-"), nil
}

// segment reads 16-bit mono PCM and returns the first utterance. Time is
// measured in samples so the cut does not depend on read latency.
func segment(r io.Reader, sampleRate int, timeout, phraseLimit time.Duration, threshold float64, hangover time.Duration) ([]byte, error) {
	frameBytes := int(int64(sampleRate)*int64(frameDuration)/int64(time.Second)) * bytesPerSample
	frame := make([]byte, frameBytes)

	var (
		clip    bytes.Buffer
		waited  time.Duration
		spoken  time.Duration
		silence time.Duration
		started bool
	)
	for {
		if _, err := io.ReadFull(r, frame); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				break
			}
			return nil, err
		}
		loud := rms(frame) >= threshold
		if !started {
			if !loud {
				if waited += frameDuration; waited >= timeout {
					return nil, nil
				}
				continue
			}
			started = true
		}
		clip.Write(frame)
		spoken += frameDuration
		if loud {
			silence = 0
		} else if silence += frameDuration; silence >= hangover {
			break
		}
		if spoken >= phraseLimit {
			break
		}
	}
	if !started {
		return nil, nil
	}
	return clip.Bytes(), nil
}

func rms(frame []byte) float64 {
	n := len(frame) / bytesPerSample
	if n == 0 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		s := float64(int16(binary.LittleEndian.Uint16(frame[i*bytesPerSample:])))
		sum += s * s
	}
	return math.Sqrt(sum / float64(n))
}

// Player plays raw PCM through ffplay.
type Player struct {
	path string
}

// NewPlayer locates ffplay on PATH.
func NewPlayer() (*Player, error) {
	path, err := exec.LookPath("ffplay")
	if err != nil {
		return nil, fmt.Errorf("speech: ffplay not found: %w", err)
	}
	return &Player{path: path}, nil
}

// Play blocks until the clip has finished playing or ctx is done.
func (p *Player) Play(ctx context.Context, pcm []byte) error {
	if len(pcm) == 0 {
		return nil
	}
	cmd := exec.CommandContext(ctx, p.path, playbackArgs()...)
	cmd.Stdin = bytes.NewReader(pcm)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("speech: ffplay: %w: %s", err, bytes.TrimSpace(out))
	}
	return nil
}

func playbackArgs() []string {
	return []string{
		"-nodisp",
		"-autoexit",
		"-loglevel", "error",
		"-f", "s16le",
		"-ar", strconv.Itoa(PlaybackSampleRate),
		"-ac", "1",
		"-i", "pipe:0",
	}
}
