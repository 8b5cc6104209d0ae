// Package tui renders the statistics dashboard as a full-screen terminal
// view. The view re-fetches the summary on a fixed interval while it is
// open; the tick chain ends with the program, so nothing keeps firing
// authenticated requests after the user leaves the dashboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dmitrijs2005/vacstats/internal/client/models"
)

const topDestinationsShown = 10

// summaryFetcher is the slice of the stats service the dashboard needs.
type summaryFetcher interface {
	Summary(ctx context.Context) (*models.SummaryStats, error)
}

// ---------- messages ----------

type summaryMsg struct {
	stats *models.SummaryStats
	err   error
}

type refreshTickMsg time.Time

// ---------- styles ----------

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2).
			Margin(0, 1, 0, 0)

	cardValueStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			MarginTop(1)

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("82"))
)

// Model is the dashboard's bubbletea model.
type Model struct {
	stats    summaryFetcher
	interval time.Duration

	spinner     spinner.Model
	summary     *models.SummaryStats
	errText     string
	fetching    bool
	lastUpdated time.Time
	width       int
}

func NewModel(stats summaryFetcher, interval time.Duration) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	return Model{
		stats:    stats,
		interval: interval,
		spinner:  sp,
		fetching: true,
	}
}

// Run opens the dashboard and blocks until the user closes it.
func Run(stats summaryFetcher, interval time.Duration) error {
	p := tea.NewProgram(NewModel(stats, interval), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m Model) fetchCmd() tea.Cmd {
	stats := m.stats
	return func() tea.Msg {
		s, err := stats.Summary(context.Background())
		return summaryMsg{stats: s, err: err}
	}
}

func (m Model) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return refreshTickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.fetchCmd(), m.scheduleTick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "r":
			if !m.fetching {
				m.fetching = true
				return m, tea.Batch(m.spinner.Tick, m.fetchCmd())
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width

	case refreshTickMsg:
		cmds := []tea.Cmd{m.scheduleTick()}
		if !m.fetching {
			m.fetching = true
			cmds = append(cmds, m.spinner.Tick, m.fetchCmd())
		}
		return m, tea.Batch(cmds...)

	case summaryMsg:
		m.fetching = false
		if msg.err != nil {
			// keep the last good snapshot: stale data beats a blank screen
			m.errText = msg.err.Error()
			return m, nil
		}
		m.summary = msg.stats
		m.errText = ""
		m.lastUpdated = time.Now()
		return m, nil

	case spinner.TickMsg:
		if m.fetching {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Vacation Statistics Dashboard"))
	b.WriteString("\n")
	if !m.lastUpdated.IsZero() {
		b.WriteString(subtleStyle.Render("Last updated: " + m.lastUpdated.Format("15:04:05")))
		b.WriteString("\n")
	}

	if m.fetching {
		b.WriteString(m.spinner.View() + subtleStyle.Render(" refreshing..."))
		b.WriteString("\n")
	}

	if m.errText != "" {
		b.WriteString(errStyle.Render(m.errText))
		b.WriteString("\n")
		b.WriteString(subtleStyle.Render("press r to retry"))
		b.WriteString("\n")
	}

	if m.summary != nil {
		b.WriteString(m.renderCards())
		b.WriteString(m.renderStatusSplit())
		b.WriteString(m.renderTopDestinations())
	}

	b.WriteString("\n")
	b.WriteString(subtleStyle.Render("r refresh · q quit"))
	return b.String()
}

func (m Model) renderCards() string {
	s := m.summary

	top := s.TopDestinationsByLikes(1)
	popular := "N/A"
	popularLikes := 0
	if len(top) > 0 {
		popular = top[0].Destination
		popularLikes = top[0].Likes
	}

	cards := []string{
		card("Total Users", fmt.Sprintf("%d", s.TotalUsers), "registered users"),
		card("Total Likes", fmt.Sprintf("%d", s.TotalLikes), "vacation likes"),
		card("Total Vacations", fmt.Sprintf("%d", s.VacationStats.Total()), "all vacations"),
		card("Most Popular", popular, fmt.Sprintf("%d likes", popularLikes)),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...) + "\n"
}

func card(title, value, label string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		subtleStyle.Render(title),
		cardValueStyle.Render(value),
		subtleStyle.Render(label),
	)
	return cardStyle.Render(body)
}

func (m Model) renderStatusSplit() string {
	v := m.summary.VacationStats
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Vacation Status"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Past: %d   Ongoing: %d   Future: %d\n",
		v.PastVacations, v.OngoingVacations, v.FutureVacations))
	return b.String()
}

func (m Model) renderTopDestinations() string {
	top := m.summary.TopDestinationsByLikes(topDestinationsShown)
	if len(top) == 0 {
		return ""
	}

	maxLikes := top[0].Likes
	if maxLikes == 0 {
		maxLikes = 1
	}

	var b strings.Builder
	b.WriteString(sectionStyle.Render(fmt.Sprintf("Top %d Destinations by Likes", topDestinationsShown)))
	b.WriteString("\n")
	for _, d := range top {
		bar := strings.Repeat("█", barLen(d.Likes, maxLikes))
		b.WriteString(fmt.Sprintf("  %-20s %s %d\n", d.Destination, barStyle.Render(bar), d.Likes))
	}
	return b.String()
}

func barLen(likes, maxLikes int) int {
	const maxWidth = 30
	n := likes * maxWidth / maxLikes
	if n < 1 && likes > 0 {
		n = 1
	}
	return n
}
