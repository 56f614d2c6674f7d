// Package tui renders the single-screen task list and routes user text
// through the intent classifier.
package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskmuse/insight"
	"taskmuse/intent"
	"taskmuse/task"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	listStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#04B575")).
			Padding(0, 1)

	busyInputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#FFB454")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F25D94"))

	insightStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#A550DF")).
			Padding(1, 2)

	doneStyle   = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("240"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// classifyDoneMsg carries one resolved classification request
type classifyDoneMsg struct {
	seq    uint64
	result intent.Result
}

// insightDoneMsg carries one resolved insight request
type insightDoneMsg struct {
	taskText string
	insight  insight.Insight
}

// Model is the bubbletea model for the task list screen
type Model struct {
	session    *task.Session
	classifier *intent.Classifier
	insights   *insight.Requester

	input       string
	cursor      int
	status      string
	busy        bool
	insightBusy bool

	showInsight bool
	insightFor  string
	insightData insight.Insight

	width  int
	height int
}

// NewModel creates the TUI model
func NewModel(session *task.Session, classifier *intent.Classifier, insights *insight.Requester) Model {
	return Model{
		session:    session,
		classifier: classifier,
		insights:   insights,
		status:     "Tell me what you need to do, or just say hi.",
	}
}

// Start runs the TUI until the user quits
func Start(session *task.Session, classifier *intent.Classifier, insights *insight.Requester) error {
	p := tea.NewProgram(NewModel(session, classifier, insights), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case classifyDoneMsg:
		m.busy = false
		if feedback, applied := m.session.ApplyClassification(msg.seq, msg.result); applied {
			m.status = feedback
		}
		m.clampCursor()
		return m, nil

	case insightDoneMsg:
		m.insightBusy = false
		m.showInsight = true
		m.insightFor = msg.taskText
		m.insightData = msg.insight
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The insight panel swallows every key until dismissed
	if m.showInsight {
		m.showInsight = false
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.input != "" {
			m.input = ""
			return m, nil
		}
		return m, tea.Quit

	case "enter":
		text := strings.TrimSpace(m.input)
		if text == "" || m.busy {
			return m, nil
		}
		m.input = ""
		m.busy = true
		m.status = "Thinking..."
		return m, m.classifyCmd(text)

	case "up", "ctrl+p":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down", "ctrl+n":
		if m.cursor < len(m.session.Tasks())-1 {
			m.cursor++
		}
		return m, nil

	case "ctrl+t":
		if t, ok := m.selectedTask(); ok {
			m.session.Toggle(t.ID)
		}
		return m, nil

	case "ctrl+d":
		if t, ok := m.selectedTask(); ok {
			m.session.Delete(t.ID)
			m.clampCursor()
		}
		return m, nil

	case "ctrl+g":
		if m.insightBusy {
			return m, nil
		}
		if t, ok := m.selectedTask(); ok {
			m.insightBusy = true
			m.status = fmt.Sprintf("Getting insight for %q...", t.Text)
			return m, m.insightCmd(t.Text)
		}
		return m, nil

	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil

	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		case tea.KeySpace:
			m.input += " "
		}
		return m, nil
	}
}

// classifyCmd issues one classification request. The sequence number is
// taken before the request leaves so stale responses can be fenced off.
func (m Model) classifyCmd(text string) tea.Cmd {
	seq := m.session.BeginRequest()
	total, _, _ := m.session.Counts()
	return func() tea.Msg {
		res, err := m.classifier.Classify(context.Background(), text, total)
		if err != nil {
			res = intent.FallbackResult()
		}
		return classifyDoneMsg{seq: seq, result: res}
	}
}

// insightCmd issues one insight request; it never fails
func (m Model) insightCmd(taskText string) tea.Cmd {
	tasks := m.session.Tasks()
	texts := make([]string, len(tasks))
	for i, t := range tasks {
		texts[i] = t.Text
	}
	return func() tea.Msg {
		ins := m.insights.Request(context.Background(), taskText, texts)
		return insightDoneMsg{taskText: taskText, insight: ins}
	}
}

func (m Model) selectedTask() (task.Task, bool) {
	tasks := m.session.Tasks()
	if m.cursor < 0 || m.cursor >= len(tasks) {
		return task.Task{}, false
	}
	return tasks[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(m.session.Tasks())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	title := titleStyle.Render("taskmuse")

	if m.showInsight {
		return lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			insightStyle.Render(m.renderInsight()),
			"",
			helpStyle.Render("Press any key to close"),
		)
	}

	list := listStyle.Render(m.renderList())

	prompt := "> " + m.input
	var inputLine string
	if m.busy {
		inputLine = busyInputStyle.Render(prompt + " (thinking...)")
	} else {
		inputLine = inputStyle.Render(prompt)
	}

	status := statusStyle.Render(m.status)
	help := helpStyle.Render("enter send • ctrl+t toggle • ctrl+d delete • ctrl+g insight • esc quit")

	return lipgloss.JoinVertical(lipgloss.Left, title, "", list, "", inputLine, status, help)
}

func (m Model) renderList() string {
	tasks := m.session.Tasks()
	if len(tasks) == 0 {
		return "Nothing to do yet. Type below to add tasks."
	}

	total, completed, _ := m.session.Counts()

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tasks (%d/%d done)\n\n", completed, total))
	for i, t := range tasks {
		marker := "[ ]"
		line := t.Text
		if t.Completed {
			marker = "[x]"
			line = doneStyle.Render(line)
		}
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		sb.WriteString(fmt.Sprintf("%s%s %s\n", prefix, marker, line))
	}
	return sb.String()
}

func (m Model) renderInsight() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Insight: %s\n\n", m.insightFor))
	sb.WriteString(fmt.Sprintf("Estimated time: %s\n", m.insightData.EstimatedTimeToComplete))
	sb.WriteString(fmt.Sprintf("Dependencies:   %s\n", m.insightData.PotentialDependencies))
	sb.WriteString(fmt.Sprintf("Notes:          %s\n", m.insightData.AdditionalNotes))
	if len(m.insightData.SubTasks) > 0 {
		sb.WriteString("\nSub-tasks:\n")
		for _, st := range m.insightData.SubTasks {
			sb.WriteString(fmt.Sprintf("  - %s\n", st))
		}
	}
	return sb.String()
}
