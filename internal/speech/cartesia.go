package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	cartesiaBaseURL = "https://api.cartesia.ai"
	cartesiaVersion = "2025-04-16"
	sttModel        = "ink-whisper"
	ttsModel        = "sonic-3"

	// MicSampleRate is the capture rate sent to transcription.
	MicSampleRate = 16000
	// PlaybackSampleRate is the rate of synthesized audio.
	PlaybackSampleRate = 24000
)

// StatusError captures a non-2xx response from the speech API.
type StatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("speech: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

// Cartesia transcribes and synthesizes raw 16-bit mono PCM over the Cartesia
// HTTP API.
type Cartesia struct {
	apiKey     string
	voiceID    string
	language   string
	baseURL    string
	httpClient *http.Client
}

type CartesiaOption func(*Cartesia)

func WithCartesiaBaseURL(baseURL string) CartesiaOption {
	return func(c *Cartesia) {
		c.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

func WithCartesiaHTTPClient(httpClient *http.Client) CartesiaOption {
	return func(c *Cartesia) {
		c.httpClient = httpClient
	}
}

func WithLanguage(language string) CartesiaOption {
	return func(c *Cartesia) {
		c.language = strings.TrimSpace(language)
	}
}

func NewCartesia(apiKey, voiceID string, opts ...CartesiaOption) (*Cartesia, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("speech: cartesia api key must not be empty")
	}
	voiceID = strings.TrimSpace(voiceID)
	if voiceID == "" {
		return nil, errors.New("speech: cartesia voice id must not be empty")
	}
	c := &Cartesia{
		apiKey:     apiKey,
		voiceID:    voiceID,
		language:   "en",
		baseURL:    cartesiaBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe returns the text spoken in a PCM clip sampled at MicSampleRate.
func (c *Cartesia) Transcribe(ctx context.Context, pcm []byte) (string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", "audio.raw")
	if err != nil {
		return "", fmt.Errorf("speech: create form file: %w", err)
	}
	if _, err := fw.Write(pcm); err != nil {
		return "", fmt.Errorf("speech: write audio: %w", err)
	}
	if err := mw.WriteField("model", sttModel); err != nil {
		return "", fmt.Errorf("speech: write model field: %w", err)
	}
	if c.language != "" {
		if err := mw.WriteField("language", c.language); err != nil {
			return "", fmt.Errorf("speech: write language field: %w", err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("speech: close multipart writer: %w", err)
	}

	q := url.Values{}
	q.Set("encoding", "pcm_s16le")
	q.Set("sample_rate", strconv.Itoa(MicSampleRate))
	endpoint := c.baseURL + "/stt?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", fmt.Errorf("speech: create stt request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	raw, err := c.do(req, endpoint)
	if err != nil {
		return "", fmt.Errorf("speech: stt request failed: %w", err)
	}
	var out transcriptionResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", fmt.Errorf("speech: decode stt response: %w", err)
	}
	return strings.TrimSpace(out.Text), nil
}

type ttsRequest struct {
	ModelID      string       `json:"model_id"`
	Transcript   string       `json:"transcript"`
	Voice        voiceSpec    `json:"voice"`
	OutputFormat outputFormat `json:"output_format"`
	Language     string       `json:"language,omitempty"`
}

type voiceSpec struct {
	Mode string `json:"mode"`
	ID   string `json:"id"`
}

type outputFormat struct {
	Container  string `json:"container"`
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sample_rate"`
}

// Synthesize returns raw PCM sampled at PlaybackSampleRate.
func (c *Cartesia) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := json.Marshal(ttsRequest{
		ModelID:    ttsModel,
		Transcript: text,
		Voice:      voiceSpec{Mode: "id", ID: c.voiceID},
		OutputFormat: outputFormat{
			Container:  "raw",
			Encoding:   "pcm_s16le",
			SampleRate: PlaybackSampleRate,
		},
		Language: c.language,
	})
	if err != nil {
		return nil, fmt.Errorf("speech: marshal tts request: %w", err)
	}

	endpoint := c.baseURL + "/tts/bytes"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("speech: create tts request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	audio, err := c.do(req, endpoint)
	if err != nil {
		return nil, fmt.Errorf("speech: tts request failed: %w", err)
	}
	return audio, nil
}

func (c *Cartesia) do(req *http.Request, endpoint string) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Cartesia-Version", cartesiaVersion)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &StatusError{StatusCode: res.StatusCode, URL: endpoint, Body: string(buf)}
	}
	buf, err := io.ReadAll(io.LimitReader(res.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return buf, nil
}
