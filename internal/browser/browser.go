// Package browser is the interactive renderer: a Bubble Tea session
// that installs the registry hook and paints whatever map the hook
// eventually delivers. Because delivery arrives as a message, the view
// behaves identically whether the data or the renderer was ready first.
package browser

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"implex/internal/descriptor"
	"implex/internal/registry"
	"implex/internal/render"
)

type implementorsMsg descriptor.Map

type loadFailedMsg struct{ err error }

// Attach arms reg with a hook that feeds the running program. Call
// after tea.NewProgram; the order relative to the loader's Register
// does not matter.
func Attach(reg *registry.Registry, p *tea.Program) error {
	return reg.InstallHook(func(m descriptor.Map) {
		p.Send(implementorsMsg(m))
	})
}

// ReportLoadError tells the session that the data side will never
// register: the loader failed.
func ReportLoadError(p *tea.Program, err error) {
	p.Send(loadFailedMsg{err: err})
}

type moduleItem struct {
	name  string
	count int
}

func (i moduleItem) Title() string       { return i.name }
func (i moduleItem) Description() string { return fmt.Sprintf("%d implementors", i.count) }
func (i moduleItem) FilterValue() string { return i.name }

// Model is the browser session state.
type Model struct {
	spinner spinner.Model
	modules list.Model
	detail  viewport.Model

	data          descriptor.Map
	showSynthetic bool
	selected      string
	err           error
	loaded        bool
	inDetail      bool
	width, height int
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	codeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	emphStyle   = lipgloss.NewStyle().Italic(true)
	strongStyle = lipgloss.NewStyle().Bold(true)
	synthStyle  = lipgloss.NewStyle().Faint(true)
)

// New returns a browser model with nothing loaded yet.
func New(showSynthetic bool) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	modules := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	modules.Title = "documentation modules"
	modules.SetShowStatusBar(false)

	return &Model{
		spinner:       sp,
		modules:       modules,
		detail:        viewport.New(0, 0),
		showSynthetic: showSynthetic,
		width:         80,
		height:        24,
	}
}

func (m *Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case implementorsMsg:
		m.data = descriptor.Map(msg)
		m.loaded = true
		items := make([]list.Item, 0, len(m.data))
		for _, name := range render.SortedModules(m.data) {
			items = append(items, moduleItem{name: name, count: visibleCount(m.data[name], m.showSynthetic)})
		}
		return m, m.modules.SetItems(items)

	case loadFailedMsg:
		m.err = msg.err
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.modules.SetSize(msg.Width, msg.Height-2)
		m.detail.Width = msg.Width
		m.detail.Height = msg.Height - 2
		if m.inDetail {
			m.detail.SetContent(DetailContent(m.data, m.selected, m.showSynthetic))
		}
		return m, nil

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.inDetail && msg.String() == "q" {
				m.inDetail = false
				return m, nil
			}
			return m, tea.Quit
		case "enter":
			if m.loaded && !m.inDetail {
				if item, ok := m.modules.SelectedItem().(moduleItem); ok {
					m.selected = item.name
					m.inDetail = true
					m.detail.SetContent(DetailContent(m.data, m.selected, m.showSynthetic))
					m.detail.GotoTop()
				}
				return m, nil
			}
		case "esc":
			if m.inDetail {
				m.inDetail = false
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.inDetail {
		m.detail, cmd = m.detail.Update(msg)
	} else if m.loaded {
		m.modules, cmd = m.modules.Update(msg)
	}
	return m, cmd
}

func (m *Model) View() string {
	if m.err != nil {
		return errStyle.Render("load failed: "+m.err.Error()) + "\n"
	}
	if !m.loaded {
		return fmt.Sprintf("%s waiting for implementor data…\n", m.spinner.View())
	}
	if m.inDetail {
		header := titleStyle.Render(m.selected)
		return header + "\n" + m.detail.View()
	}
	return m.modules.View()
}

// Err reports a loader failure observed during the session, if any.
func (m *Model) Err() error { return m.err }

func visibleCount(descs []descriptor.Descriptor, showSynthetic bool) int {
	n := 0
	for _, d := range descs {
		if d.Synthetic && !showSynthetic {
			continue
		}
		n++
	}
	return n
}

// DetailContent renders one module's implementors, in registered order,
// as styled lines for the detail viewport.
func DetailContent(m descriptor.Map, module string, showSynthetic bool) string {
	var b strings.Builder
	for _, d := range m[module] {
		if d.Synthetic && !showSynthetic {
			continue
		}
		line := styleSpans(render.Flatten(d.Fragment))
		if d.Synthetic {
			line += synthStyle.Render("  [synthetic]")
		}
		b.WriteString(line)
		b.WriteByte('\n')
		b.WriteString(synthStyle.Render("  " + d.Path()))
		b.WriteByte('\n')
	}
	if b.Len() == 0 {
		return synthStyle.Render("no implementors to show")
	}
	return strings.TrimRight(b.String(), "\n")
}

func styleSpans(spans []render.Span) string {
	var out string
	for _, s := range spans {
		switch {
		case s.Code:
			out += codeStyle.Render(s.Text)
		case s.Strong:
			out += strongStyle.Render(s.Text)
		case s.Emph:
			out += emphStyle.Render(s.Text)
		default:
			out += s.Text
		}
	}
	return out
}
