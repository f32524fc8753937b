package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/uxl/pkg/document"
	"github.com/matzehuels/uxl/pkg/nav"
	"github.com/matzehuels/uxl/pkg/wire"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// maxBoxRows bounds the box table so the view fits a terminal.
const maxBoxRows = 12

// =============================================================================
// PageBrowserModel - Interactive page navigation
// =============================================================================

// PageBrowserModel is the bubbletea model of the inspect command. It shows one
// page at a time with its outgoing GOTO links; following a link pushes the
// current page onto a history stack.
type PageBrowserModel struct {
	Pages   []*document.Page
	Graph   *nav.Graph
	Layouts map[string]wire.Layout // by page key

	Current string // page key
	History []string
	Cursor  int
}

// NewPageBrowserModel creates a browser positioned on start, or on the first
// page when start is empty.
func NewPageBrowserModel(doc *document.Document, layouts []wire.Layout, start string) PageBrowserModel {
	m := PageBrowserModel{
		Pages:   doc.Pages,
		Graph:   nav.FromEdges(doc.Edges),
		Layouts: make(map[string]wire.Layout, len(layouts)),
	}
	for _, l := range layouts {
		m.Layouts[l.Page] = l
	}
	if p, ok := nav.Resolve(doc, start); ok && start != "" {
		m.Current = p.Key()
	} else if len(doc.Pages) > 0 {
		m.Current = doc.Pages[0].Key()
	}
	return m
}

// Links returns the keys of the pages reachable from the current page.
func (m PageBrowserModel) Links() []string {
	return m.Graph.Successors(m.Current)
}

func (m PageBrowserModel) Init() tea.Cmd {
	return nil
}

func (m PageBrowserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	links := m.Links()
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(links)-1 {
			m.Cursor++
		}
	case "enter", "right", "l":
		if len(links) == 0 {
			return m, nil
		}
		m.History = append(m.History, m.Current)
		m.Current = links[m.Cursor]
		m.Cursor = 0
	case "backspace", "left", "h", "b":
		if n := len(m.History); n > 0 {
			m.Current = m.History[n-1]
			m.History = m.History[:n-1]
			m.Cursor = 0
		}
	case "tab", "n":
		m.Current = m.nextPage()
		m.Cursor = 0
	}
	return m, nil
}

// nextPage returns the page after the current one in document order,
// wrapping around. Jumping does not touch the history.
func (m PageBrowserModel) nextPage() string {
	for i, p := range m.Pages {
		if p.Key() == m.Current {
			return m.Pages[(i+1)%len(m.Pages)].Key()
		}
	}
	return m.Current
}

func (m PageBrowserModel) page(key string) *document.Page {
	for _, p := range m.Pages {
		if p.Key() == key {
			return p
		}
	}
	return nil
}

func (m PageBrowserModel) title(key string) string {
	if p := m.page(key); p != nil {
		return p.Title()
	}
	return key
}

func (m PageBrowserModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(m.title(m.Current)))
	b.WriteString(listDimStyle.Render("  " + m.Current))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ select  ⏎ follow  ⌫ back  tab next page  q quit"))
	b.WriteString("\n\n")

	if l, ok := m.Layouts[m.Current]; ok {
		b.WriteString(fmt.Sprintf("%s canvas %s · content %gx%g · %s\n\n",
			listDimStyle.Render(iconInfo), l.Canvas, l.ContentW, l.ContentH, l.Overflow))
		b.WriteString(boxTable(l))
		b.WriteString("\n\n")
	}

	links := m.Links()
	if len(links) == 0 {
		b.WriteString(listDimStyle.Render("  no outgoing links"))
		b.WriteString("\n")
	}
	for i, target := range links {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		b.WriteString(style.Render(fmt.Sprintf("%s%s %s", cursor, iconArrow, m.title(target))))
		b.WriteString(listDimStyle.Render("  " + target))
		b.WriteString("\n")
	}

	if from := m.Graph.Predecessors(m.Current); len(from) > 0 {
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("reached from: " + strings.Join(from, ", ")))
		b.WriteString("\n")
	}
	if len(m.History) > 0 {
		b.WriteString(listDimStyle.Render("history: " + strings.Join(m.History, " → ")))
		b.WriteString("\n")
	}
	return b.String()
}

// boxTable lists the boxes of a layout below the page box.
func boxTable(l wire.Layout) string {
	rows := [][]string{}
	for _, box := range l.Boxes {
		if box.Kind == document.KindPage.String() {
			continue
		}
		if len(rows) == maxBoxRows {
			rows = append(rows, []string{"…", "", "", ""})
			break
		}
		label := box.Label
		if box.Target != "" {
			label += " " + iconArrow + " " + box.Target
		}
		rows = append(rows, []string{
			box.Kind,
			label,
			fmt.Sprintf("%g,%g", box.X, box.Y),
			fmt.Sprintf("%gx%g", box.W, box.H),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Kind", "Label", "Pos", "Size").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle()
		}).
		Render()
}
