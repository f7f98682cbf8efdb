package main

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/embervm/ember-go/abi"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// treeNode is one row of the flattened token tree. Children follow their
// parent in the nodes slice; collapsed parents hide their subtree.
type treeNode struct {
	label    string
	typeStr  string
	value    string
	path     string
	depth    int
	children []int
	expanded bool
}

type browseModel struct {
	typ    *abi.Type
	nodes  []treeNode
	filter textinput.Model

	selected  int
	searching bool
}

func newBrowseModel(typ *abi.Type, tok abi.Token) *browseModel {
	m := &browseModel{typ: typ}
	m.flatten(typ, tok, "$", "$", 0)

	ti := textinput.New()
	ti.Placeholder = "path filter, e.g. coords.1"
	ti.Prompt = "/ "
	ti.Width = 40
	m.filter = ti
	return m
}

// flatten appends the node for (typ, tok) and recurses into its children,
// returning the new node's index.
func (m *browseModel) flatten(typ *abi.Type, tok abi.Token, label, path string, depth int) int {
	idx := len(m.nodes)
	node := treeNode{
		label:    label,
		typeStr:  typ.String(),
		path:     path,
		depth:    depth,
		expanded: depth < 2,
	}
	m.nodes = append(m.nodes, node)

	switch typ.Kind {
	case abi.KindArray, abi.KindVector:
		m.nodes[idx].value = "len=" + strconv.Itoa(len(tok.Elems))
		for i, el := range tok.Elems {
			name := strconv.Itoa(i)
			child := m.flatten(typ.Elem, el, "["+name+"]", path+"."+name, depth+1)
			m.nodes[idx].children = append(m.nodes[idx].children, child)
		}
	case abi.KindTuple, abi.KindStruct:
		for i, f := range typ.Fields {
			name := f.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			child := m.flatten(f.Type, tok.Elems[i], name, path+"."+name, depth+1)
			m.nodes[idx].children = append(m.nodes[idx].children, child)
		}
	case abi.KindEnum:
		variant := typ.Fields[tok.Variant]
		m.nodes[idx].value = "::" + variant.Name
		if variant.Type.Kind != abi.KindUnit {
			child := m.flatten(variant.Type, *tok.Payload, variant.Name, path+"."+variant.Name, depth+1)
			m.nodes[idx].children = append(m.nodes[idx].children, child)
		}
	default:
		m.nodes[idx].value = scalarString(tok)
	}
	return idx
}

// visible returns the indices of nodes currently shown, respecting collapsed
// parents and the active path filter.
func (m *browseModel) visible() []int {
	filter := strings.TrimSpace(m.filter.Value())
	var out []int
	var walk func(idx int)
	walk = func(idx int) {
		n := m.nodes[idx]
		if filter == "" || strings.Contains(n.path, filter) {
			out = append(out, idx)
		}
		if !n.expanded && filter == "" {
			return
		}
		for _, c := range n.children {
			walk(c)
		}
	}
	walk(0)
	return out
}

func (m *browseModel) Init() tea.Cmd {
	return nil
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.searching {
		switch keyMsg.String() {
		case "enter", "esc":
			m.searching = false
			m.filter.Blur()
			if keyMsg.String() == "esc" {
				m.filter.SetValue("")
			}
			m.selected = 0
			return m, nil
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			return m, cmd
		}
	}

	vis := m.visible()
	switch keyMsg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(vis)-1 {
			m.selected++
		}

	case "enter", " ":
		if m.selected < len(vis) {
			idx := vis[m.selected]
			if len(m.nodes[idx].children) > 0 {
				m.nodes[idx].expanded = !m.nodes[idx].expanded
			}
		}

	case "/":
		m.searching = true
		m.filter.Focus()
		return m, textinput.Blink
	}

	return m, nil
}

func (m *browseModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("abidump"))
	b.WriteString(" ")
	b.WriteString(typeStyle.Render(signatureOf(m.typ)))
	b.WriteString("\n\n")

	vis := m.visible()
	if len(vis) == 0 {
		b.WriteString(errorStyle.Render("no nodes match filter"))
		b.WriteString("\n")
	}
	for i, idx := range vis {
		n := m.nodes[idx]
		marker := "  "
		if len(n.children) > 0 {
			marker = "+ "
			if n.expanded {
				marker = "- "
			}
		}
		line := strings.Repeat("  ", n.depth) + marker +
			fieldStyle.Render(n.label) + " " + typeStyle.Render(n.typeStr)
		if n.value != "" {
			line += " " + valueStyle.Render(n.value)
		}
		if i == m.selected {
			line = selectedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.searching {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter apply • esc clear"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ move • enter expand/collapse • / filter • q quit"))
	}
	return b.String()
}

func browse(typ *abi.Type, tok abi.Token) error {
	p := tea.NewProgram(newBrowseModel(typ, tok), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
