package tui

import (
	"fmt"
	"strings"

	"groundhog/internal/terminal"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

const (
	headerTitle = "🐹 Groundhog TUI - Hello World Demo"
	appTitle    = "Groundhog AI Assistant"

	minWidth = 40
)

// View renders a State into a frame of the given size.
type View struct {
	Keys  KeyMap
	Debug bool

	help     help.Model
	progress progress.Model
	spinner  spinner.Spinner

	draws     int
	lastEvent string
}

// NewView creates a view for keys. Debug adds a footer line with the draw
// count and the last event seen.
func NewView(keys KeyMap, debug bool) *View {
	return &View{
		Keys:     keys,
		Debug:    debug,
		help:     help.New(),
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		spinner:  spinner.Dot,
	}
}

// Observe records ev for the debug footer.
func (v *View) Observe(ev terminal.Event) {
	switch e := ev.(type) {
	case terminal.KeyPress:
		v.lastEvent = "key " + e.String()
	case terminal.Resize:
		v.lastEvent = fmt.Sprintf("resize %dx%d", e.Width, e.Height)
	case terminal.Pointer:
		v.lastEvent = fmt.Sprintf("pointer %s %d,%d", e.Button, e.X, e.Y)
	case terminal.Tick:
		v.lastEvent = "tick"
	}
}

// Render returns the frame for s. The frame is never taller than height;
// on short terminals the bottom is cut off so the header stays in view.
func (v *View) Render(s State, width, height int) string {
	v.draws++
	if width < minWidth {
		width = minWidth
	}

	spin := v.spinner.Frames[v.draws%len(v.spinner.Frames)]
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		TitleStyle.Render(headerTitle),
		" ",
		SpinnerStyle.Render(spin),
		" ",
		HeadingStyle.Render(appTitle),
	)

	// Borders and padding take four columns per panel
	leftWidth := width*60/100 - 4
	rightWidth := width - width*60/100 - 4

	left := PanelStyle.Width(leftWidth).Render(v.messagePanel(s))
	right := lipgloss.JoinVertical(lipgloss.Left,
		PanelStyle.Width(rightWidth).Render(v.counterPanel(s, rightWidth)),
		PanelStyle.Width(rightWidth).Render(v.statusPanel()),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	v.help.Width = width
	footer := StatusStyle.Render("Controls: ") + v.help.View(v.Keys)

	sections := []string{header, body, footer}
	if v.Debug {
		sections = append(sections, StatusStyle.Render(v.debugLine(width, height)))
	}
	frame := lipgloss.JoinVertical(lipgloss.Left, sections...)
	if height > 0 {
		frame = lipgloss.NewStyle().MaxHeight(height).Render(frame)
	}
	return frame
}

func (v *View) messagePanel(s State) string {
	lines := []string{
		HeadingStyle.Render("Message Display"),
		"",
		"Message: " + MessageStyle.Render(s.Message),
		"",
		StatusStyle.Render("This is a basic groundhog terminal demonstration."),
		StatusStyle.Render("Press Space to increment the counter."),
		StatusStyle.Render("Press 'r' to reset the counter."),
		StatusStyle.Render("Press 'q' to quit the application."),
	}
	return strings.Join(lines, "\n")
}

func (v *View) counterPanel(s State, width int) string {
	v.progress.Width = width
	pct := float64(s.Counter%100) / 100
	return strings.Join([]string{
		HeadingStyle.Render("Counter"),
		CounterStyle.Render(fmt.Sprintf("Count: %d", s.Counter)),
		v.progress.ViewAs(pct),
	}, "\n")
}

func (v *View) statusPanel() string {
	items := []string{"TUI Active", "Input Handling", "Real-time Updates"}
	lines := []string{HeadingStyle.Render("Status")}
	for _, item := range items {
		lines = append(lines, SuccessStyle.Render("✓ "+item))
	}
	return strings.Join(lines, "\n")
}

func (v *View) debugLine(width, height int) string {
	last := v.lastEvent
	if last == "" {
		last = "none"
	}
	return fmt.Sprintf("draws: %d | size: %dx%d | last event: %s", v.draws, width, height, last)
}

// ScreenRenderer draws views onto a terminal screen.
type ScreenRenderer struct {
	Screen *terminal.Screen
	View   *View
}

// Draw renders s at the screen's current size and writes it.
func (r *ScreenRenderer) Draw(s State) error {
	w, h := r.Screen.Size()
	return r.Screen.Draw(r.View.Render(s, w, h))
}

// Resize records the new terminal size.
func (r *ScreenRenderer) Resize(width, height int) {
	r.Screen.Resize(width, height)
}

// Observe forwards ev to the view.
func (r *ScreenRenderer) Observe(ev terminal.Event) {
	r.View.Observe(ev)
}
