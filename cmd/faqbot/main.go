package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"faqbot/internal/config"
	"faqbot/internal/corpus"
	"faqbot/internal/logging"
	"faqbot/internal/matcher"
	"faqbot/internal/service"
	"faqbot/internal/textnorm"
	"faqbot/internal/tui"
)

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so the deferred log close always happens.
func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("faqbot", flag.ContinueOnError)
	var cfgPath, dataPath, ask string
	fs.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/faqbot/config.yaml if not provided)")
	fs.StringVar(&dataPath, "data", "", "Path to a JSON question bank (overrides data.path)")
	fs.StringVar(&ask, "ask", "", "Answer a single question and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cfg *config.AppConfig
	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}

	logger, closer, err := logging.New(cfg.Log, "faqbot.log")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closer.Close()

	bank, err := corpus.Load(cfg.Data.Path)
	if err != nil {
		logger.Error("question bank load failed", "path", cfg.Data.Path, "error", err)
		return fmt.Errorf("failed to load question bank: %w", err)
	}
	logger.Info("question bank loaded", "entries", len(bank), "path", cfg.Data.Path, "mode", cfg.Matcher.Mode)

	m := matcher.New(textnorm.New(textnorm.English()))
	svc, err := service.NewFAQService(m, bank, cfg.Matcher.Mode, logger)
	if err != nil {
		logger.Error("faq service start failed", "error", err)
		return fmt.Errorf("failed to start faq service: %w", err)
	}

	if ask != "" {
		res := svc.Ask(ask)
		fmt.Fprintln(stdout, res.Answer)
		fmt.Fprintf(stdout, "(similarity %.3f)\n", res.Confidence)
		return nil
	}

	model := tui.NewChat(svc, tui.ChatOptions{
		Title:     cfg.UI.Title,
		Greeting:  cfg.UI.Greeting,
		ShowScore: cfg.UI.ShowScore,
		ShowAbout: cfg.UI.ShowAbout,
	})
	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
