package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"

	"travel-intake-agent/handler"
	"travel-intake-agent/internal/catalog"
	"travel-intake-agent/internal/dialogue"
	"travel-intake-agent/internal/integrations/gemini"
	"travel-intake-agent/internal/integrations/openai"
	"travel-intake-agent/internal/integrations/paramstore"
	"travel-intake-agent/internal/intent"
	"travel-intake-agent/internal/repository"
	"travel-intake-agent/internal/speech"
	"travel-intake-agent/internal/usecase"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()
	logger := newLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// ---- Configuration (read only here) ----
	s := loadSettings()

	// ---- AWS SDK config, loaded only when an AWS collaborator is configured ----
	awsConfig := sync.OnceValues(func() (aws.Config, error) {
		return config.LoadDefaultConfig(ctx)
	})

	// ---- Collaborators ----
	var params *paramstore.Client
	if s.paramPrefix != "" {
		cfg, err := awsConfig()
		if err != nil {
			fatal("failed to load AWS config", err)
		}
		params, err = paramstore.New(awsssm.NewFromConfig(cfg))
		if err != nil {
			fatal("failed to create SSM client", err)
		}
	}

	completer, err := newCompleter(ctx, s, params)
	if err != nil {
		fatal("failed to create completion client", err)
	}

	store, err := newStore(s, awsConfig)
	if err != nil {
		fatal("failed to create lead store", err)
	}

	cat, err := loadCatalog(s.catalogFile)
	if err != nil {
		fatal("failed to load deal catalog", err)
	}

	dcfg := dialogue.Config{
		Classifier:    intent.NewClassifier(intent.Config{Threshold: s.threshold}),
		Catalog:       cat,
		Retry:         dialogue.RetryPolicy{MaxRetries: s.retries, Reprompt: dialogue.DefaultReprompt},
		Timing:        dialogue.ListenTiming{Timeout: s.listenTimeout, PhraseLimit: s.phraseLimit},
		NegativeLimit: s.negativeLimit,
		Completer:     completer,
		Logger:        logger,
	}

	// ---- Mode ----
	switch s.mode {
	case modeLambda:
		svc, err := usecase.NewRehearseService(func(l dialogue.Listener, sp dialogue.Speaker) (*dialogue.Controller, error) {
			return dialogue.NewController(l, sp, store, dcfg)
		}, s.maxUtterances, s.maxUtteranceLen)
		if err != nil {
			fatal("failed to create rehearse service", err)
		}
		h, err := handler.NewHandler(svc)
		if err != nil {
			fatal("failed to create handler", err)
		}
		lambda.Start(h.Handle)

	case modeConsole:
		c := speech.NewConsole(os.Stdin, os.Stdout, s.pause)
		runCall(ctx, c, c, store, dcfg)

	case modeVoice:
		v, err := newVoice(s, logger)
		if err != nil {
			fatal("failed to set up voice channel", err)
		}
		runCall(ctx, v, v, store, dcfg)

	default:
		slog.Error("unknown AGENT_MODE", "mode", s.mode)
		os.Exit(1)
	}
}

func runCall(ctx context.Context, l dialogue.Listener, sp dialogue.Speaker, st dialogue.Store, cfg dialogue.Config) {
	ctrl, err := dialogue.NewController(l, sp, st, cfg)
	if err != nil {
		fatal("failed to create dialogue controller", err)
	}
	out := ctrl.Run(ctx)
	if !out.Persisted {
		slog.Warn("lead was not saved", "session", out.SessionID)
	}
}

func newCompleter(ctx context.Context, s settings, params *paramstore.Client) (dialogue.Completer, error) {
	switch s.provider {
	case providerNone, "":
		return nil, nil
	case providerOpenAI:
		opts := []openai.Option{openai.WithModel(s.openaiModel)}
		switch {
		case s.openaiKey != "":
			opts = append(opts, openai.WithAPIKey(s.openaiKey))
		case params != nil:
			opts = append(opts, openai.WithParamStore(params, s.paramPrefix))
		default:
			return nil, fmt.Errorf("OPENAI_API_KEY or PARAM_PREFIX is required for provider %q", s.provider)
		}
		return openai.NewClient(opts...)
	case providerGemini:
		key := s.geminiKey
		if key == "" && params != nil {
			tok, err := params.Token(ctx, paramstore.TokenName(s.paramPrefix, providerGemini))
			if err != nil {
				return nil, err
			}
			key = tok
		}
		if key == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY or PARAM_PREFIX is required for provider %q", s.provider)
		}
		return gemini.NewClient(ctx, key, s.geminiModel)
	default:
		return nil, fmt.Errorf("unknown COMPLETION_PROVIDER %q", s.provider)
	}
}

func newStore(s settings, awsConfig func() (aws.Config, error)) (*repository.Fanout, error) {
	var stores []repository.Appender
	if s.leadsFile != "" {
		st, err := repository.NewJSONL(s.leadsFile)
		if err != nil {
			return nil, err
		}
		stores = append(stores, st)
	}
	if s.leadsCSV != "" {
		st, err := repository.NewCSV(s.leadsCSV)
		if err != nil {
			return nil, err
		}
		stores = append(stores, st)
	}
	if s.leadsTable != "" {
		cfg, err := awsConfig()
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		st, err := repository.New(awsdynamodb.NewFromConfig(cfg), s.leadsTable)
		if err != nil {
			return nil, err
		}
		stores = append(stores, st)
	}
	return repository.NewFanout(stores...)
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

func newVoice(s settings, logger *slog.Logger) (*speech.Voice, error) {
	mic, err := speech.NewMicrophone()
	if err != nil {
		return nil, err
	}
	player, err := speech.NewPlayer()
	if err != nil {
		return nil, err
	}
	cartesia, err := speech.NewCartesia(s.cartesiaKey, s.cartesiaVoice)
	if err != nil {
		return nil, err
	}
	return speech.NewVoice(mic, cartesia, cartesia, player, speech.VoiceConfig{
		Echo:   os.Stdout,
		Pause:  s.pause,
		Logger: logger,
	})
}

func fatal(msg string, err error) {
	slog.Error(msg, "err", err)
	os.Exit(1)
}
