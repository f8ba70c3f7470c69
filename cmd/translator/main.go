package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"faqbot/internal/config"
	"faqbot/internal/logging"
	"faqbot/internal/speech"
	"faqbot/internal/translate"
	"faqbot/internal/tui"
	apperrors "faqbot/pkg/errors"
)

func main() {
	_ = godotenv.Load()
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// run returns instead of exiting so the deferred log close always happens.
func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("translator", flag.ContinueOnError)
	var cfgPath, to, from, speakPath string
	var list bool
	fs.StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/faqbot/config.yaml if not provided)")
	fs.StringVar(&to, "to", "", "Target language name or code (default translator.default_target)")
	fs.StringVar(&from, "from", "auto", "Source language name or code")
	fs.StringVar(&speakPath, "speak", "", "Write spoken MP3 of the translation to this file")
	fs.BoolVar(&list, "list", false, "List supported languages and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if list {
		for _, l := range translate.SupportedLanguages() {
			fmt.Fprintf(stdout, "%-24s %s\n", l.Name, l.Code)
		}
		return nil
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

	logger, closer, err := logging.New(cfg.Log, "translator.log")
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closer.Close()
	logger = logger.With("component", "translator")

	if to == "" {
		to = cfg.Translator.DefaultTarget
	}
	target, err := translate.LookupLanguage(to)
	if err != nil {
		return fmt.Errorf("invalid target language: %w", err)
	}

	tr := translate.NewClient(translate.Config{
		BaseURL:    cfg.Translator.BaseURL,
		Timeout:    time.Duration(cfg.Translator.TimeoutSecs) * time.Second,
		MaxRetries: cfg.Translator.MaxRetries,
	})
	var sp *speech.Client
	if cfg.Speech.Enabled {
		sp = speech.NewClient(speech.Config{
			BaseURL: cfg.Speech.BaseURL,
			Timeout: time.Duration(cfg.Speech.TimeoutSecs) * time.Second,
		})
	}

	text := strings.TrimSpace(strings.Join(fs.Args(), " "))
	if text == "" {
		var port tui.SpeechPort
		if sp != nil {
			port = sp
		}
		model := tui.NewTranslator(tr, port, target, cfg.Speech.OutputDir)
		_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()
		return err
	}

	ctx := context.Background()
	res, err := tr.Translate(ctx, text, from, target.Code)
	if err != nil {
		logger.Error("translate failed", "error", err)
		if apperrors.IsCode(err, apperrors.CodeNetwork) {
			return errors.New(tui.NetworkErrorMessage)
		}
		return fmt.Errorf("translate failed: %w", err)
	}
	logger.Info("translated", "source", res.Source, "target", res.Target, "chars", len(text))
	fmt.Fprintln(stdout, res.Text)

	if speakPath == "" {
		return nil
	}
	if sp == nil {
		return errors.New("speech output is disabled in config")
	}
	audio, err := sp.Synthesize(ctx, res.Text, res.Target)
	if err != nil {
		logger.Error("speech failed", "error", err)
		return fmt.Errorf("speech failed: %w", err)
	}
	if err := os.WriteFile(speakPath, audio, 0o644); err != nil {
		return fmt.Errorf("write speech: %w", err)
	}
	logger.Info("speech saved", "path", speakPath, "bytes", len(audio))
	return nil
}
