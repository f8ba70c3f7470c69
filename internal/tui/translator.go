package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"faqbot/internal/translate"
	apperrors "faqbot/pkg/errors"
)

// Messages shown by the translator screen.
const (
	NetworkErrorMessage = "⚠️ Network Error: Please check your internet connection."
	EmptyTextMessage    = "Please enter some text to translate."
	maxSuggestions      = 5
	requestTimeout      = 30 * time.Second
)

// TranslatePort is the TUI-facing subset of the translation client.
type TranslatePort interface {
	Translate(ctx context.Context, text, source, target string) (translate.Result, error)
}

// SpeechPort is the TUI-facing subset of the speech client.
type SpeechPort interface {
	Supports(lang string) bool
	Synthesize(ctx context.Context, text, lang string) ([]byte, error)
}

type focusArea int

const (
	focusLanguage focusArea = iota
	focusText
)

type translatedMsg struct {
	result translate.Result
	err    error
}

type speechSavedMsg struct {
	path string
	err  error
}

// TranslatorModel is the Bubble Tea model for the translator screen.
type TranslatorModel struct {
	translator  TranslatePort
	speech      SpeechPort
	outputDir   string
	langInput   textinput.Model
	textInput   textinput.Model
	spinner     spinner.Model
	focus       focusArea
	suggestions []translate.Language
	choice      int
	target      translate.Language
	result      translate.Result
	status      string
	busy        bool
	ready       bool
	width       int
}

// NewTranslator creates the translator screen. speech may be nil when audio
// output is disabled.
func NewTranslator(tr TranslatePort, sp SpeechPort, target translate.Language, outputDir string) TranslatorModel {
	li := textinput.New()
	li.Prompt = "To: "
	li.Placeholder = target.Name
	li.CharLimit = 40

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Enter text to translate"
	ti.CharLimit = translate.MaxTextLength
	ti.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return TranslatorModel{
		translator: tr,
		speech:     sp,
		outputDir:  outputDir,
		langInput:  li,
		textInput:  ti,
		spinner:    spin,
		focus:      focusText,
		target:     target,
		status:     "Tab switches between language and text. Ctrl+S saves speech.",
	}
}

// Init initializes the model (text input cursor blink).
func (m TranslatorModel) Init() tea.Cmd { return textinput.Blink }

// Update handles key, window and async result events.
func (m TranslatorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		m.width = msg.Width
		return m, nil
	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case translatedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = describeError(msg.err)
			return m, nil
		}
		m.result = msg.result
		m.status = "Translation Complete!"
		return m, nil
	case speechSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.status = describeError(msg.err)
			return m, nil
		}
		m.status = "Saved speech to " + msg.path
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.switchFocus()
			return m, nil
		case tea.KeyCtrlS:
			return m.speak()
		}
		if m.focus == focusLanguage {
			return m.updateLanguage(msg)
		}
		if msg.Type == tea.KeyEnter {
			return m.submit()
		}
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *TranslatorModel) switchFocus() {
	if m.focus == focusText {
		m.focus = focusLanguage
		m.textInput.Blur()
		m.langInput.Focus()
		m.suggestions = topLanguages(m.langInput.Value())
		m.choice = 0
		return
	}
	m.focus = focusText
	m.langInput.Blur()
	m.textInput.Focus()
}

func (m TranslatorModel) updateLanguage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if len(m.suggestions) > 0 {
			m.choice = (m.choice - 1 + len(m.suggestions)) % len(m.suggestions)
		}
		return m, nil
	case tea.KeyDown:
		if len(m.suggestions) > 0 {
			m.choice = (m.choice + 1) % len(m.suggestions)
		}
		return m, nil
	case tea.KeyEnter:
		if len(m.suggestions) > 0 {
			m.target = m.suggestions[m.choice]
			m.langInput.SetValue("")
			m.langInput.Placeholder = m.target.Name
			m.status = "Translating to " + m.target.Name
		}
		m.switchFocus()
		return m, nil
	}
	var cmd tea.Cmd
	m.langInput, cmd = m.langInput.Update(msg)
	m.suggestions = topLanguages(m.langInput.Value())
	m.choice = 0
	return m, cmd
}

func (m TranslatorModel) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	text := strings.TrimSpace(m.textInput.Value())
	if text == "" {
		m.status = EmptyTextMessage
		return m, nil
	}
	m.busy = true
	m.status = "Translating..."
	return m, tea.Batch(m.spinner.Tick, m.translateCmd(text, m.target.Code))
}

func (m TranslatorModel) speak() (tea.Model, tea.Cmd) {
	switch {
	case m.busy:
		return m, nil
	case m.result.Text == "":
		m.status = "Translate something first."
		return m, nil
	case m.speech == nil:
		m.status = "Speech output is disabled."
		return m, nil
	case !m.speech.Supports(m.result.Target):
		m.status = fmt.Sprintf("Audio playback is not currently available for %s.", m.target.Name)
		return m, nil
	}
	m.busy = true
	m.status = "Generating speech..."
	return m, tea.Batch(m.spinner.Tick, m.speakCmd(m.result.Text, m.result.Target))
}

func (m TranslatorModel) translateCmd(text, target string) tea.Cmd {
	tr := m.translator
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := tr.Translate(ctx, text, "auto", target)
		return translatedMsg{result: res, err: err}
	}
}

func (m TranslatorModel) speakCmd(text, lang string) tea.Cmd {
	sp, dir := m.speech, m.outputDir
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		audio, err := sp.Synthesize(ctx, text, lang)
		if err != nil {
			return speechSavedMsg{err: err}
		}
		path, err := SaveSpeech(dir, lang, audio)
		return speechSavedMsg{path: path, err: err}
	}
}

// SaveSpeech writes audio to a timestamped MP3 file under dir.
func SaveSpeech(dir, lang string, audio []byte) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", apperrors.Wrap(apperrors.CodeSpeech, "create output dir", err)
	}
	name := fmt.Sprintf("translation-%s-%s.mp3", lang, time.Now().Format("20060102-150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		return "", apperrors.Wrap(apperrors.CodeSpeech, "write speech file", err)
	}
	return path, nil
}

// View renders the translator layout.
func (m TranslatorModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render("Language Translator") + "\n")
	b.WriteString(aboutStyle.Render("Translating to "+m.target.Name+" ("+m.target.Code+")") + "\n\n")

	b.WriteString(inputBoxStyle.Render(m.langInput.View()) + "\n")
	if m.focus == focusLanguage {
		for i, l := range m.suggestions {
			cursor := "  "
			if i == m.choice {
				cursor = "> "
			}
			b.WriteString(cursor + l.Name + "\n")
		}
	}
	b.WriteString(inputBoxStyle.Render(m.textInput.View()) + "\n")

	out := "Translated text will appear here."
	if m.result.Text != "" {
		out = fmt.Sprintf("[%s -> %s]\n%s", m.result.Source, m.result.Target, m.result.Text)
	}
	box := historyBoxStyle
	if m.width > 4 {
		box = box.Width(m.width - 2)
	}
	b.WriteString(box.Render(out) + "\n")

	status := m.status
	if m.busy {
		status = m.spinner.View() + " " + status
	}
	b.WriteString(statusStyle.Render(status))
	return b.String()
}

func topLanguages(pattern string) []translate.Language {
	langs := translate.SearchLanguages(pattern)
	if len(langs) > maxSuggestions {
		langs = langs[:maxSuggestions]
	}
	return langs
}

func describeError(err error) string {
	if apperrors.IsCode(err, apperrors.CodeNetwork) {
		return NetworkErrorMessage
	}
	return "An error occurred: " + err.Error()
}
