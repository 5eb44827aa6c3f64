package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/hbalint/jarvis/internal/assistant"
	"github.com/hbalint/jarvis/internal/config"
	"github.com/hbalint/jarvis/internal/history"
	"github.com/hbalint/jarvis/internal/httpapi"
	"github.com/hbalint/jarvis/internal/llm"
	"github.com/hbalint/jarvis/internal/search"
	"github.com/hbalint/jarvis/internal/tools"
	"github.com/hbalint/jarvis/pkg/log"
)

func main() {
	_ = godotenv.Load()
	log.InitLogger(log.ParseLevel(os.Getenv("LOG_LEVEL")))

	runtime := config.NewRuntimeFromEnv()
	cfgStore := config.NewStore(filepath.Join(runtime.DataDir, "config.yaml"))
	cfg := cfgStore.Load()

	store := openHistory(runtime, cfg)
	defer func() { _ = store.Close() }()

	orchestrator := assistant.New(
		cfgStore,
		store,
		buildModel(runtime, cfg),
		search.NewClient(runtime.SearchAPIKey, runtime.SearchAPIURL, runtime.SearchMaxRetries),
		tools.NewDefaultRegistry(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if runtime.ListenAddr != "" {
		if err := runServer(ctx, orchestrator, cfgStore, runtime.ListenAddr); err != nil {
			log.Fatal("server failed: %v", err)
		}
		return
	}
	runREPL(ctx, orchestrator, cfgStore)
}

// openHistory opens the sqlite transcript store, degrading to an
// in-memory store when the data directory is unusable
func openHistory(runtime config.Runtime, cfg config.Config) history.Store {
	store, err := history.NewSQLiteStore(filepath.Join(runtime.DataDir, "history.db"), cfg.HistoryCap)
	if err != nil {
		log.Warn("history db unavailable: %v, keeping history in memory", err)
		return history.NewMemoryStore(cfg.HistoryCap)
	}
	return store
}

// buildModel creates the LLM client, or nil for keyword fallback mode
func buildModel(runtime config.Runtime, cfg config.Config) assistant.ModelClient {
	client, err := llm.NewClient(&llm.Config{
		APIKey:      runtime.LLMAPIKey,
		APIURL:      runtime.LLMAPIURL,
		Model:       cfg.Model,
		MaxTokens:   cfg.MaxTokens,
		Temperature: cfg.Temperature,
		Timeout:     runtime.LLMTimeout,
	})
	if err != nil {
		log.Warn("model backend unavailable: %v, running in limited mode", err)
		return nil
	}
	return client
}

func runServer(ctx context.Context, orchestrator *assistant.Orchestrator, cfgStore *config.Store, addr string) error {
	server := httpapi.NewServer(orchestrator, cfgStore)

	// Pick up external config.yaml edits between requests.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 1m", func() { cfgStore.Load() }); err != nil {
		return fmt.Errorf("schedule config reload: %w", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("listening on %s", addr)
	if err := server.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func runREPL(ctx context.Context, orchestrator *assistant.Orchestrator, cfgStore *config.Store) {
	status := orchestrator.Status()
	fmt.Println("JARVIS ready.")
	fmt.Printf("  model: %v  web search: %v  tools: %v\n", status.Model, status.Search, status.Tools)
	fmt.Println("Type 'exit' to quit, 'clear' to reset chat, 'config' to locate the config file.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		case "clear":
			if err := orchestrator.ClearHistory(ctx); err != nil {
				log.Error("clear failed: %v", err)
				continue
			}
			fmt.Println("Chat history cleared.")
			continue
		case "config":
			fmt.Printf("Config file: %s\n", cfgStore.Path())
			continue
		}

		reply, err := orchestrator.HandleTurn(ctx, input, nil)
		if err != nil {
			// Cancelled; the partial turn is discarded.
			fmt.Println("\nGoodbye!")
			return
		}
		fmt.Printf("JARVIS: %s\n\n", reply)
	}
}
