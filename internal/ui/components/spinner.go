package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/operadoras-tui/internal/ui/styles"
)

// Loader is the spinner a tab shows while its requests are in flight. One
// Loader serves every load on a page; the label is chosen where it is drawn.
type Loader struct {
	spinner spinner.Model
}

// NewLoader creates a loader in the application's spinner style.
func NewLoader() Loader {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = styles.SpinnerStyle
	return Loader{spinner: s}
}

// Init starts the animation.
func (l Loader) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the animation on its own tick messages.
func (l Loader) Update(msg tea.Msg) (Loader, tea.Cmd) {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return l, cmd
}

// View renders the bare spinner frame.
func (l Loader) View() string {
	return l.spinner.View()
}

// Labeled renders the frame followed by a dimmed label.
func (l Loader) Labeled(label string) string {
	return l.spinner.View() + " " + styles.MutedStyle.Render(label)
}

// Prefix puts the frame in front of an already styled line, such as a footer
// that stays visible while a reload runs.
func (l Loader) Prefix(line string) string {
	return l.spinner.View() + " " + line
}

// Centered renders the labeled spinner in the middle of a width x height
// area, for pages that have nothing else to show yet.
func (l Loader) Centered(label string, width, height int) string {
	return styles.CenterBoth(l.Labeled(label), width, height)
}
