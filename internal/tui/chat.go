package tui

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"faqbot/internal/domain"
)

// AboutText explains the matching approach in the about panel.
const AboutText = "This chatbot uses TF-IDF and cosine similarity to find the best match " +
	"for your question from a predefined set of questions and answers."

// FAQPort is the TUI-facing subset of the FAQ service.
type FAQPort interface {
	Ask(question string) domain.MatchResult
}

// ChatOptions configures the chat screen.
type ChatOptions struct {
	Title     string
	Greeting  string
	ShowScore bool
	ShowAbout bool
}

type chatMessage struct {
	fromUser bool
	text     string
	// question is the user query an answer responds to.
	question string
	result   *domain.MatchResult
}

// ChatModel is the Bubble Tea model for the FAQ chat.
type ChatModel struct {
	service  FAQPort
	opts     ChatOptions
	input    textinput.Model
	viewport viewport.Model
	history  []chatMessage
	status   string
	ready    bool
}

// NewChat creates a chat model that opens with the greeting.
func NewChat(service FAQPort, opts ChatOptions) ChatModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask me anything about the university"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := ChatModel{service: service, opts: opts, input: ti, viewport: vp, status: "Enter to send, Esc to quit."}
	if opts.Greeting != "" {
		m.history = append(m.history, chatMessage{text: opts.Greeting})
	}
	return m
}

// Init initializes the model (text input cursor blink).
func (m ChatModel) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m ChatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, hh := historyBoxStyle.GetFrameSize()
		_, ih := inputBoxStyle.GetFrameSize()
		reserved := 2 + 1 + ih + 1 // header + spacer, status, input box
		if m.opts.ShowAbout {
			reserved += lipgloss.Height(m.renderAbout(msg.Width))
		}
		m.viewport.Width = max(20, msg.Width-2)
		m.viewport.Height = max(3, msg.Height-reserved-hh)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			q := strings.TrimSpace(m.input.Value())
			if q == "" {
				return m, nil
			}
			res := m.service.Ask(q)
			m.history = append(m.history,
				chatMessage{fromUser: true, text: q},
				chatMessage{text: res.Answer, question: q, result: &res},
			)
			if res.Resolved {
				m.status = fmt.Sprintf("Matched %q", res.Question)
			} else {
				m.status = "No confident match."
			}
			m.input.Reset()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the chat layout.
func (m ChatModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := m.opts.Title
	if title == "" {
		title = "FAQ Chatbot"
	}
	var b strings.Builder
	b.WriteString(headerStyle.Render(title) + "\n\n")
	if m.opts.ShowAbout {
		b.WriteString(m.renderAbout(m.viewport.Width+2) + "\n")
	}
	b.WriteString(historyBoxStyle.Render(m.viewport.View()) + "\n")
	b.WriteString(inputBoxStyle.Render(m.input.View()) + "\n")
	b.WriteString(statusStyle.Render(m.status))
	return b.String()
}

func (m *ChatModel) refresh() {
	m.viewport.SetContent(m.renderHistory())
	m.viewport.GotoBottom()
}

func (m ChatModel) renderAbout(width int) string {
	return aboutStyle.Width(max(20, width-2)).Render("How it works: " + AboutText)
}

func (m ChatModel) renderHistory() string {
	if len(m.history) == 0 {
		return "Ask a question to get started."
	}
	wrap := lipgloss.NewStyle().Width(max(10, m.viewport.Width-2))
	lines := make([]string, 0, len(m.history))
	for _, msg := range m.history {
		if msg.fromUser {
			lines = append(lines, wrap.Render(userStyle.Render("You: ")+msg.text))
			continue
		}
		body := msg.text
		if msg.result != nil && msg.result.Resolved {
			body = highlightBestSentence(body, msg.question)
		}
		line := botStyle.Render("Bot: ") + body
		if m.opts.ShowScore && msg.result != nil {
			line += scoreStyle.Render(fmt.Sprintf("  (similarity %.2f)", msg.result.Confidence))
		}
		lines = append(lines, wrap.Render(line))
	}
	return strings.Join(lines, "\n\n")
}

var (
	headerStyle     = lipgloss.NewStyle().Bold(true)
	historyBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	inputBoxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	aboutStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	statusStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	userStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	scoreStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	highlightStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	unicodeWordRe   = regexp.MustCompile(`\p{L}+(?:['’]\p{L}+)*`)
	sentenceRe      = regexp.MustCompile(`(?m)(?U)([^.!?]+[.!?])`)
)

// highlightBestSentence emphasizes the answer sentence sharing the most
// words with the query. Single-sentence answers are returned as is.
func highlightBestSentence(text, query string) string {
	if strings.TrimSpace(text) == "" {
		return text
	}
	sentences := sentenceRe.FindAllString(text, -1)
	if len(sentences) < 2 {
		return text
	}
	qTokens := toTokenSet(query)
	if len(qTokens) == 0 {
		return text
	}
	bestIdx := 0
	bestScore := 0
	for i, s := range sentences {
		score := tokenOverlapScore(qTokens, s)
		if score > bestScore {
			bestScore = score
			bestIdx = i
		}
	}
	if bestScore == 0 {
		return text
	}
	for i := range sentences {
		sent := strings.TrimSpace(sentences[i])
		if i == bestIdx {
			sentences[i] = highlightStyle.Render(sent)
		} else {
			sentences[i] = sent
		}
	}
	return strings.Join(sentences, " ")
}

func toTokenSet(s string) map[string]struct{} {
	tokens := unicodeWordRe.FindAllString(strings.ToLower(s), -1)
	m := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		m[t] = struct{}{}
	}
	return m
}

func tokenOverlapScore(queryTokens map[string]struct{}, sentence string) int {
	score := 0
	tokens := unicodeWordRe.FindAllString(strings.ToLower(sentence), -1)
	seen := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if _, ok := queryTokens[t]; ok {
			score++
		}
	}
	return score
}
