package main

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	modeConsole = "console"
	modeVoice   = "voice"
	modeLambda  = "lambda"

	providerNone   = "none"
	providerOpenAI = "openai"
	providerGemini = "gemini"

	defaultVoiceID = "a0e99841-438c-4a64-b679-ae501e7d6091"
)

// settings is everything read from the environment. Nothing outside this
// package reads environment variables.
type settings struct {
	mode        string
	provider    string
	paramPrefix string

	openaiKey   string
	openaiModel string
	geminiKey   string
	geminiModel string

	cartesiaKey   string
	cartesiaVoice string

	catalogFile string
	leadsFile   string
	leadsCSV    string
	leadsTable  string

	threshold     int
	negativeLimit int
	retries       int
	listenTimeout time.Duration
	phraseLimit   time.Duration
	pause         time.Duration

	maxUtterances   int
	maxUtteranceLen int
}

func loadSettings() settings {
	s := settings{
		mode:        strings.ToLower(envString("AGENT_MODE", modeConsole)),
		provider:    strings.ToLower(envString("COMPLETION_PROVIDER", providerNone)),
		paramPrefix: os.Getenv("PARAM_PREFIX"),

		openaiKey:   os.Getenv("OPENAI_API_KEY"),
		openaiModel: os.Getenv("OPENAI_MODEL"),
		geminiKey:   os.Getenv("GEMINI_API_KEY"),
		geminiModel: os.Getenv("GEMINI_MODEL"),

		cartesiaVoice: envString("CARTESIA_VOICE_ID", defaultVoiceID),

		catalogFile: os.Getenv("CATALOG_FILE"),
		leadsFile:   os.Getenv("LEADS_FILE"),
		leadsCSV:    os.Getenv("LEADS_CSV"),
		leadsTable:  os.Getenv("LEADS_TABLE"),

		threshold:     envInt("FUZZY_THRESHOLD", 80),
		negativeLimit: envInt("NEGATIVE_LIMIT", 2),
		retries:       envInt("LISTEN_RETRIES", 1),
		listenTimeout: time.Duration(envInt("LISTEN_TIMEOUT_SECONDS", 10)) * time.Second,
		phraseLimit:   time.Duration(envInt("PHRASE_LIMIT_SECONDS", 20)) * time.Second,
		pause:         time.Duration(envInt("SPEECH_PAUSE_MS", 0)) * time.Millisecond,

		maxUtterances:   envInt("MAX_UTTERANCES", 64),
		maxUtteranceLen: envInt("MAX_UTTERANCE_LENGTH", 500),
	}
	// the Lambda filesystem is read-only, so only write a local file there when asked
	if s.leadsFile == "" && s.mode != modeLambda {
		s.leadsFile = "leads.jsonl"
	}
	if s.mode == modeVoice {
		s.cartesiaKey = mustEnv("CARTESIA_API_KEY")
	}
	return s
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func mustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		slog.Error("required environment variable is not set", "key", key)
		os.Exit(1)
	}
	return v
}

func envString(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring non-numeric environment variable", "key", key, "value", v)
		return def
	}
	return n
}
