package cli

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/la-jarre-a-son/tilejar/pkg/playback"
)

// Player styles
var (
	barFilledStyle = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle  = lipgloss.NewStyle().Foreground(colorDim)
	stateStyles    = map[playback.State]lipgloss.Style{
		playback.StatePlaying: lipgloss.NewStyle().Bold(true).Foreground(colorGreen),
		playback.StatePaused:  lipgloss.NewStyle().Bold(true).Foreground(colorYellow),
		playback.StateStopped: lipgloss.NewStyle().Bold(true).Foreground(colorRed),
	}
)

const (
	defaultBarWidth = 40
	seekStep        = 10 // frames skipped by pgup/pgdown
)

// =============================================================================
// PlayerModel - Interactive timeline scrubber
// =============================================================================

type (
	tickMsg    time.Time
	settledMsg struct{}
)

// PlayerModel is the bubbletea model driving a [playback.Player]. While
// playing it advances one frame per frame interval, wrapping around when
// the preset loops and pausing on the last frame otherwise.
type PlayerModel struct {
	Player   *playback.Player
	Name     string
	Loop     bool
	Interval time.Duration
	BarWidth int
}

// NewPlayerModel creates a scrubber for player.
func NewPlayerModel(name string, player *playback.Player, loop bool) PlayerModel {
	interval := time.Second / 30
	if fr := player.Clock().FrameRate; fr > 0 {
		interval = time.Duration(float64(time.Second) / fr)
	}
	return PlayerModel{
		Player:   player,
		Name:     name,
		Loop:     loop,
		Interval: interval,
		BarWidth: defaultBarWidth,
	}
}

func (m PlayerModel) tick() tea.Cmd {
	return tea.Tick(m.Interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m PlayerModel) Init() tea.Cmd {
	return m.tick()
}

func (m PlayerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	p := m.Player
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ", "p":
			p.Toggle()
		case "left", "h":
			p.SetCurrentFrame(p.CurrentFrame() - 1)
		case "right", "l":
			p.SetCurrentFrame(p.CurrentFrame() + 1)
		case "pgdown", "J":
			p.SetCurrentFrame(p.CurrentFrame() - seekStep)
		case "pgup", "K":
			p.SetCurrentFrame(p.CurrentFrame() + seekStep)
		case "home", "s":
			return m, waitSettled(p.Stop())
		case "end", "e":
			return m, waitSettled(p.End())
		}
	case tickMsg:
		m.advance()
		return m, m.tick()
	case tea.WindowSizeMsg:
		m.BarWidth = max(10, min(msg.Width-30, 80))
	}
	return m, nil
}

// advance moves a playing player one frame forward.
func (m PlayerModel) advance() {
	p := m.Player
	if p.State() != playback.StatePlaying {
		return
	}
	next := p.CurrentFrame() + 1
	if next > p.TotalFrames() {
		if !m.Loop {
			p.Pause()
			return
		}
		next = 1
	}
	p.SetCurrentFrame(next)
}

func waitSettled(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return settledMsg{}
	}
}

func (m PlayerModel) View() string {
	var b strings.Builder
	snap := m.Player.Snapshot()
	total := m.Player.TotalFrames()

	b.WriteString(StyleTitle.Render(m.Name))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("space play/pause  ←/→ step  pgup/pgdn seek  s stop  e end  q quit"))
	b.WriteString("\n\n")

	b.WriteString(progressBar(snap.Frame, total, m.BarWidth))
	b.WriteString("\n\n")

	state := stateStyles[snap.State].Render(strings.ToUpper(string(snap.State)))
	fmt.Fprintf(&b, "%s  %s %s  %s %s\n",
		state,
		listDimStyle.Render("frame"), StyleNumber.Render(fmt.Sprintf("%d/%d", snap.Frame, total)),
		listDimStyle.Render("time"), StyleNumber.Render(fmt.Sprintf("%.3fs", m.Player.Clock().CurrentTime(snap.Frame))))

	return b.String()
}

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

// progressBar draws frame out of total as a bar of width cells.
func progressBar(frame, total, width int) string {
	filled := 0
	if total > 0 {
		filled = frame * width / total
	}
	filled = max(0, min(filled, width))
	return barFilledStyle.Render(strings.Repeat("█", filled)) +
		barEmptyStyle.Render(strings.Repeat("░", width-filled))
}
