package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"faqbot/internal/config"
	"faqbot/internal/domain"
	"faqbot/internal/encoder/openai"
	"faqbot/internal/encoder/tfidf"
	"faqbot/internal/engine"
	"faqbot/internal/logger"
	"faqbot/internal/matcher"
	"faqbot/internal/profile"
	"faqbot/internal/session"
	"faqbot/internal/tui"
)

func main() {
	_ = godotenv.Load()

	var (
		cfgPath     string
		profilePath string
		faqPath     string
		name        string
		description string
		industry    string
		exportPath  string
	)
	flag.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/faqbot/config.yaml if not provided)")
	flag.StringVar(&profilePath, "profile", "", "Portable profile YAML to import")
	flag.StringVar(&faqPath, "faq", "", "Raw FAQ text file in Q: ... A: ... format")
	flag.StringVar(&name, "name", "", "Business name (with -faq)")
	flag.StringVar(&description, "description", "", "Business description (with -faq)")
	flag.StringVar(&industry, "industry", "", "Industry starter pack to merge (with -faq)")
	flag.StringVar(&exportPath, "export", "", "Write the trained profile as a portable YAML record and exit")
	flag.Parse()

	if profilePath == "" && faqPath == "" {
		fmt.Println("Usage: faqbot [-config=faqbot.yaml] -profile export.yaml")
		fmt.Println("       faqbot [-config=faqbot.yaml] -faq faqs.txt -name \"Acme\" [-description ...] [-industry retail]")
		os.Exit(1)
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer func() { _ = log.Sync() }()

	// Encoder backend is resolved once here; changing it requires retraining.
	var enc domain.Encoder
	switch cfg.Encoder.Type {
	case "tfidf", "":
		enc = tfidf.New(cfg.Encoder.MaxInputLen)
	case "openai":
		if cfg.Encoder.OpenAI == nil {
			log.Fatal("openai encoder config missing")
		}
		client, err := openai.NewClient(openai.Config{
			BaseURL:     cfg.Encoder.OpenAI.BaseURL,
			APIKeyEnv:   cfg.Encoder.OpenAI.APIKeyEnv,
			Model:       cfg.Encoder.OpenAI.Model,
			Timeout:     time.Duration(cfg.Encoder.OpenAI.TimeoutSecs) * time.Second,
			MaxInputLen: cfg.Encoder.MaxInputLen,
		})
		if err != nil {
			log.Fatal("openai encoder init failed", zap.Error(err))
		}
		enc = client
	default:
		log.Fatal("unknown encoder", zap.String("type", cfg.Encoder.Type))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var sessions session.Store
	switch cfg.Session.Store {
	case "memory", "":
		mem := session.NewMemoryStore(cfg.IdleTimeout())
		mem.StartSweeper(ctx, time.Minute)
		sessions = mem
	case "redis":
		if cfg.Session.Redis == nil {
			log.Fatal("redis session config missing")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Session.Redis.Addr,
			Password: cfg.Session.Redis.Password,
			DB:       cfg.Session.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal("redis unreachable", zap.Error(err))
		}
		sessions = session.NewRedisStore(client, cfg.IdleTimeout())
	default:
		log.Fatal("unknown session store", zap.String("store", cfg.Session.Store))
	}

	var prof *domain.BusinessProfile
	if profilePath != "" {
		prof, err = profile.ImportFile(profilePath)
		if err != nil {
			log.Fatal("profile import failed", zap.Error(err))
		}
	} else {
		raw, err := os.ReadFile(faqPath)
		if err != nil {
			log.Fatal("reading FAQ file failed", zap.Error(err))
		}
		pairs := profile.ParseFAQText(string(raw))
		if name == "" {
			log.Fatal("-name is required with -faq")
		}
		prof = profile.New(name, description, industry, pairs)
	}

	eng := engine.New(enc, sessions, engine.Config{
		Matcher: matcher.Config{
			AnswerThreshold:  cfg.Matcher.AnswerThreshold,
			MarginThreshold:  cfg.Matcher.MarginThreshold,
			ClarifyThreshold: cfg.Matcher.ClarifyThreshold,
			TopK:             cfg.Matcher.TopK,
		},
		Timeout:       cfg.MatcherTimeout(),
		MaxFollowUps:  cfg.Session.MaxFollowUps,
		Fallback:      cfg.Messages.Fallback,
		ClarifyPrompt: cfg.Messages.ClarifyPrompt,
	}, log)

	if err := eng.Train(prof); err != nil {
		log.Fatal("training failed", zap.Error(err))
	}

	if exportPath != "" {
		if err := profile.ExportFile(exportPath, eng.Profile()); err != nil {
			log.Fatal("export failed", zap.Error(err))
		}
		log.Info("profile exported", zap.String("path", exportPath))
		return
	}

	m := tui.New(eng)
	if _, err := tea.NewProgram(m).Run(); err != nil {
		log.Fatal("chat UI failed", zap.Error(err))
	}
}
