package speech

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCartesia_Validates(t *testing.T) {
	_, err := NewCartesia(" ", "voice")
	require.Error(t, err)

	_, err = NewCartesia("key", "")
	require.Error(t, err)

	c, err := NewCartesia("key", "voice")
	require.NoError(t, err)
	require.Equal(t, cartesiaBaseURL, c.baseURL)
}

func TestCartesia_Transcribe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/stt", r.URL.Path)
		require.Equal(t, "pcm_s16le", r.URL.Query().Get("encoding"))
		require.Equal(t, "16000", r.URL.Query().Get("sample_rate"))
		require.Equal(t, "Bearer key", r.Header.Get("Authorization"))
		require.Equal(t, cartesiaVersion, r.Header.Get("Cartesia-Version"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		require.Equal(t, sttModel, r.FormValue("model"))
		require.Equal(t, "en", r.FormValue("language"))
		f, _, err := r.FormFile("file")
		require.NoError(t, err)
		audio, _ := io.ReadAll(f)
		require.Equal(t, []byte{1, 2, 3, 4}, audio)

		_ = json.NewEncoder(w).Encode(map[string]any{"text": " to Bali please "})
	}))
	defer srv.Close()

	c, err := NewCartesia("key", "voice", WithCartesiaBaseURL(srv.URL), WithCartesiaHTTPClient(srv.Client()))
	require.NoError(t, err)

	text, err := c.Transcribe(context.Background(), []byte{1, 2, 3, 4})
	require.NoError(t, err)
	require.Equal(t, "to Bali please", text)
}

func TestCartesia_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tts/bytes", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req ttsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, ttsModel, req.ModelID)
		require.Equal(t, "Hello", req.Transcript)
		require.Equal(t, voiceSpec{Mode: "id", ID: "voice-1"}, req.Voice)
		require.Equal(t, "raw", req.OutputFormat.Container)
		require.Equal(t, PlaybackSampleRate, req.OutputFormat.SampleRate)
		require.Equal(t, "es", req.Language)

		_, _ = w.Write([]byte{9, 8, 7})
	}))
	defer srv.Close()

	c, err := NewCartesia("key", "voice-1", WithCartesiaBaseURL(srv.URL+"/"), WithLanguage("es"))
	require.NoError(t, err)

	audio, err := c.Synthesize(context.Background(), "Hello")
	require.NoError(t, err)
	require.Equal(t, []byte{9, 8, 7}, audio)
}

func TestCartesia_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewCartesia("key", "voice", WithCartesiaBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Synthesize(context.Background(), "Hello")
	require.Error(t, err)
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusUnauthorized, se.StatusCode)
	require.Contains(t, se.Body, "bad key")

	_, err = c.Transcribe(context.Background(), []byte{0, 0})
	require.True(t, errors.As(err, &se))
}

func TestCartesia_TranscribeBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not-json"))
	}))
	defer srv.Close()

	c, err := NewCartesia("key", "voice", WithCartesiaBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.Transcribe(context.Background(), []byte{0, 0})
	require.ErrorContains(t, err, "decode stt response")
}
