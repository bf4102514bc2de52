package main

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/US-AEON/Us-Backend/config"
	"github.com/US-AEON/Us-Backend/conversation"
	"github.com/US-AEON/Us-Backend/providers"
	"github.com/US-AEON/Us-Backend/session"
	"github.com/US-AEON/Us-Backend/statestore"
	"github.com/US-AEON/Us-Backend/stt"
	"github.com/US-AEON/Us-Backend/tts"
)

// app bundles the wired pipeline components for one command invocation.
type app struct {
	orchestrator *conversation.Orchestrator
	sessions     *session.Manager
	textgen      providers.Provider
	redis        *redis.Client
}

// buildApp loads configuration and wires the store, provider adapters and
// orchestrator.
func buildApp() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	a := &app{}

	var store statestore.Store
	switch cfg.Store.Backend {
	case config.StoreRedis:
		a.redis = redis.NewClient(&redis.Options{Addr: cfg.Store.RedisAddr})
		var opts []statestore.RedisOption
		if cfg.Store.KeyPrefix != "" {
			opts = append(opts, statestore.WithPrefix(cfg.Store.KeyPrefix))
		}
		store = statestore.NewRedisStore(a.redis, opts...)
	case config.StoreMemory:
		store = statestore.NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	var sttOpts []stt.GoogleOption
	if cfg.Google.STTModel != "" {
		sttOpts = append(sttOpts, stt.WithGoogleModel(cfg.Google.STTModel))
	}
	var ttsOpts []tts.GoogleOption
	if cfg.Google.RateLimit > 0 {
		sttOpts = append(sttOpts, stt.WithGoogleRateLimit(cfg.Google.RateLimit, 1))
		ttsOpts = append(ttsOpts, tts.WithGoogleRateLimit(cfg.Google.RateLimit, 1))
	}
	recognizer := stt.NewGoogle(cfg.Google.APIKey, sttOpts...)
	synth := tts.NewGoogle(cfg.Google.APIKey, ttsOpts...)

	var geminiOpts []providers.GeminiOption
	if cfg.Gemini.Model != "" {
		geminiOpts = append(geminiOpts, providers.WithGeminiModel(cfg.Gemini.Model))
	}
	a.textgen = providers.NewGemini(cfg.Gemini.APIKey, geminiOpts...)

	a.sessions = session.NewManager(store, a.textgen)
	a.orchestrator = conversation.NewOrchestrator(
		conversation.NewSelector(recognizer), synth, a.textgen, a.sessions,
	)
	return a, nil
}

// close releases provider and store connections.
func (a *app) close() {
	if a.textgen != nil {
		_ = a.textgen.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
