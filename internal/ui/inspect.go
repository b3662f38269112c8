package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"surge/internal/value"
)

// childEntry is one field or element a frame lists without forcing
// it; only Enter on a specific entry forces its Thunk.
type childEntry struct {
	label string
	thunk *value.Thunk
}

func (c childEntry) Title() string       { return c.label }
func (c childEntry) Description() string { return "(unforced thunk)" }
func (c childEntry) FilterValue() string { return c.label }

// frame is one level of the tree the inspector is drilled into: the
// container value at this level (already forced to reach here) and
// the list of its children, still unforced.
type frame struct {
	path string
	cont value.Value
	lst  list.Model
}

var (
	crumbStyle = lipgloss.NewStyle().Faint(true)
	leafStyle  = lipgloss.NewStyle().Bold(true)
)

type inspectModel struct {
	root   value.Value
	title  string
	stack  []frame
	width  int
	height int
}

// NewInspectModel returns a Bubble Tea model for drilling into a
// checked Value one Record field or Array element at a time. Each
// level's children are listed by name only; selecting one forces its
// Thunk and pushes a new level, so the browser never forces more of
// the value than the user actually asks to see.
func NewInspectModel(title string, root value.Value) tea.Model {
	m := &inspectModel{root: root, title: title, width: 80, height: 24}
	m.stack = []frame{m.buildFrame("root", root)}
	return m
}

func (m *inspectModel) buildFrame(path string, cont value.Value) frame {
	var items []list.Item
	switch cont.Kind {
	case value.KRecord:
		rec := cont.AsRecord()
		for _, name := range rec.Fields() {
			th, _ := rec.Get(name)
			items = append(items, childEntry{label: name, thunk: th})
		}
	case value.KArray:
		arr := cont.AsArray()
		for i := 0; i < arr.Len(); i++ {
			items = append(items, childEntry{label: fmt.Sprintf("[%d]", i), thunk: arr.At(i)})
		}
	}
	l := list.New(items, list.NewDefaultDelegate(), m.width, m.height-4)
	l.Title = path
	return frame{path: path, cont: cont, lst: l}
}

func (m *inspectModel) Init() tea.Cmd { return nil }

func (m *inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		for i := range m.stack {
			m.stack[i].lst.SetSize(m.width, m.height-4)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace", "left":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
			}
			return m, nil
		case "enter", "right":
			top := &m.stack[len(m.stack)-1]
			if item, ok := top.lst.SelectedItem().(childEntry); ok {
				forced, err := item.thunk.Force()
				if err != nil {
					next := m.buildFrame(top.path+"."+item.label+" (error: "+err.Error()+")", value.Null)
					m.stack = append(m.stack, next)
					return m, nil
				}
				next := m.buildFrame(top.path+"."+item.label, forced)
				m.stack = append(m.stack, next)
			}
			return m, nil
		}
	}

	top := &m.stack[len(m.stack)-1]
	var cmd tea.Cmd
	top.lst, cmd = top.lst.Update(msg)
	return m, cmd
}

func (m *inspectModel) View() string {
	top := m.stack[len(m.stack)-1]
	crumb := crumbStyle.Render(fmt.Sprintf("%s — %s — enter to drill in, esc to go back, q to quit", m.title, top.path))

	var body string
	switch top.cont.Kind {
	case value.KRecord, value.KArray:
		body = top.lst.View()
	default:
		body = leafStyle.Render(scalarText(top.cont))
	}
	return strings.Join([]string{crumb, body}, "\n\n")
}

func scalarText(v value.Value) string {
	switch v.Kind {
	case value.KNull:
		return "null"
	case value.KBool:
		return fmt.Sprintf("%v", v.AsBool())
	case value.KNumber:
		return v.AsNumber().RatString()
	case value.KString:
		return fmt.Sprintf("%q", v.AsString())
	case value.KEnum:
		return "`" + v.AsEnum()
	case value.KFunction:
		return "<function>"
	case value.KSealed:
		return "<sealed>"
	default:
		return v.Kind.String()
	}
}
