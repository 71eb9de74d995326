package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Madhesh247/Zenfocus/internal/analytics"
	"github.com/Madhesh247/Zenfocus/internal/config"
	"github.com/Madhesh247/Zenfocus/internal/db"
	"github.com/Madhesh247/Zenfocus/internal/model"
	"github.com/Madhesh247/Zenfocus/internal/repository"
	"github.com/Madhesh247/Zenfocus/internal/store"
)

const reloadInterval = 30 * time.Second

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#6366F1")).
			Padding(0, 1).
			MarginBottom(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#6366F1")).
			Padding(1, 2).
			MarginBottom(1)

	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#818CF8"))

	todayBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34D399")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B"))

	goalMetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34D399")).
			Bold(true)
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(reloadInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type dashboardModel struct {
	logs   *store.SessionLogStore
	prefs  *store.PreferenceStore
	width  int
	height int
}

func (m dashboardModel) Init() tea.Cmd {
	return tickCmd()
}

func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case tickMsg:
		m.logs.Load(context.Background())
		m.prefs.Load(context.Background())
		return m, tickCmd()
	}
	return m, nil
}

func (m dashboardModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	now := time.Now()
	logs := m.logs.All()
	prefs := m.prefs.Get()

	header := headerStyle.Width(m.width).Render(
		fmt.Sprintf("ZenFocus Dashboard - %s", now.Format("Jan 2, 2006 15:04:05")),
	)

	var b strings.Builder
	b.WriteString(header)
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(renderGoal(logs, prefs, now)))
	b.WriteString("\n")
	b.WriteString(boxStyle.Render(renderWeek(logs, now)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("q to quit • reloads every 30s"))
	return b.String()
}

func renderGoal(logs []model.SessionLog, prefs model.UserPreferences, now time.Time) string {
	today := analytics.TodayMinutes(logs, now)
	goal := prefs.DailyGoalMinutes

	pct := 0
	if goal > 0 {
		pct = today * 100 / goal
	}
	filled := pct * 30 / 100
	if filled > 30 {
		filled = 30
	}
	bar := barStyle.Render(strings.Repeat("█", filled)) +
		dimStyle.Render(strings.Repeat("░", 30-filled))

	line := fmt.Sprintf("Today: %dm / %dm goal\n%s %d%%", today, goal, bar, pct)
	if today >= goal {
		line += "\n" + goalMetStyle.Render("Daily goal met!")
	}
	return line
}

func renderWeek(logs []model.SessionLog, now time.Time) string {
	buckets := analytics.WeeklyBuckets(logs, now)
	summary := analytics.Summarize(logs)

	peak := 1
	for _, bucket := range buckets {
		if bucket.Minutes > peak {
			peak = bucket.Minutes
		}
	}

	var b strings.Builder
	b.WriteString("Last 7 days\n\n")
	for i, bucket := range buckets {
		width := bucket.Minutes * 24 / peak
		bar := strings.Repeat("█", width)
		if i == len(buckets)-1 {
			bar = todayBarStyle.Render(bar)
		} else {
			bar = barStyle.Render(bar)
		}
		fmt.Fprintf(&b, "%-4s %s %dm\n", bucket.Label, bar, bucket.Minutes)
	}

	hours := summary.TotalSeconds / 3600
	mins := summary.TotalSeconds % 3600 / 60
	fmt.Fprintf(&b, "\nTotal %dh %dm • %d sessions • avg %dm",
		hours, mins, summary.SessionCount, summary.AverageSeconds/60)
	return b.String()
}

func main() {
	cfg := config.Load()

	database, err := db.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer database.Close()

	if err := db.RunMigrations(database); err != nil {
		log.Fatalf("run migrations: %v", err)
	}

	logs := store.NewSessionLogStore(repository.NewSessionLogRepository(database))
	logs.Load(context.Background())
	prefs := store.NewPreferenceStore(repository.NewValueRepository(database))
	prefs.Load(context.Background())

	program := tea.NewProgram(
		dashboardModel{logs: logs, prefs: prefs},
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		log.Fatalf("run dashboard: %v", err)
	}
}
