package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"policypulse/internal/domain"
	"policypulse/internal/similarity"
)

// Model is the Bubble Tea model for browsing analysed documents.
type Model struct {
	analyses []*domain.Analysis
	order    []int
	input    textinput.Model
	viewport viewport.Model
	status   string
	cursor   int
	ready    bool
}

// New creates a new TUI model over the given analyses.
func New(analyses []*domain.Analysis) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Type a phrase and press Enter to rank documents"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	order := make([]int, len(analyses))
	for i := range order {
		order[i] = i
	}
	return Model{
		analyses: analyses,
		order:    order,
		input:    ti,
		viewport: vp,
		status:   fmt.Sprintf("Analysed %d document(s). Up/Down to browse.", len(analyses)),
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrent())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			m.rank(q)
			m.viewport.SetContent(m.renderCurrent())
			return m, nil
		case "down":
			if len(m.order) > 0 {
				m.cursor = (m.cursor + 1) % len(m.order)
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		case "up":
			if len(m.order) > 0 {
				m.cursor = (m.cursor - 1 + len(m.order)) % len(m.order)
				m.viewport.SetContent(m.renderCurrent())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// rank reorders documents by summary similarity to q; an empty q restores
// ingestion order.
func (m *Model) rank(q string) {
	m.cursor = 0
	for i := range m.order {
		m.order[i] = i
	}
	if q == "" {
		m.status = "Showing documents in ingestion order."
		return
	}
	scores := make([]float64, len(m.analyses))
	for i, a := range m.analyses {
		scores[i] = similarity.Cosine(q, a.Summary)
	}
	sort.SliceStable(m.order, func(i, j int) bool { return scores[m.order[i]] > scores[m.order[j]] })
	m.status = fmt.Sprintf("Ranked by similarity to %q", q)
}

// View renders the TUI layout and current document.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Policy Pulse")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func (m Model) current() *domain.Analysis {
	if len(m.order) == 0 {
		return nil
	}
	return m.analyses[m.order[m.cursor]]
}

func (m Model) renderCurrent() string {
	a := m.current()
	if a == nil {
		return "No documents analysed."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Document %d/%d  %s\n\n", m.cursor+1, len(m.order), titleStyle.Render(a.Title))
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Category:"), categoryStyle(a.Category).Render(string(a.Category)))
	fmt.Fprintf(&b, "%s %d/100\n", labelStyle.Render("Impact:"), a.Impact)
	fmt.Fprintf(&b, "%s %s\n\n", labelStyle.Render("Keywords:"), strings.Join(a.Keywords, ", "))
	b.WriteString(a.Summary)
	if len(a.Similar) > 0 {
		b.WriteString("\n\n" + labelStyle.Render("Similar documents:"))
		for _, s := range a.Similar {
			fmt.Fprintf(&b, "\n  %s  %.2f%%", s.Title, s.Percent)
		}
	}
	return b.String()
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	labelStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func categoryStyle(c domain.Category) lipgloss.Style {
	color := "7"
	switch c {
	case domain.CategoryDevelopment:
		color = "12"
	case domain.CategoryWelfare:
		color = "10"
	case domain.CategoryRegulatory:
		color = "11"
	case domain.CategoryRisk:
		color = "9"
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
