package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/slidesmith/internal/tui/components"
)

// View renders the current model state.
func (m Model) View() string {
	if m.mode == ModeHelp {
		return m.renderHelp()
	}

	plan, res := m.session.Plan()
	focus := ""
	if r, ok := m.Focused(); ok {
		focus = r.Name
	}

	sections := []string{
		m.renderHeader(string(plan.Template)),
		Render(plan, res, m.canvasCols(), focus),
	}
	if m.mode == ModeEdit {
		sections = append(sections, m.renderInput())
	} else if r, ok := m.Focused(); ok {
		sections = append(sections, metaStyle.Render("field ")+fieldStyle.Render(r.Field.String()))
	}
	if line := m.renderStatus(); line != "" {
		sections = append(sections, line)
	}
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(template string) string {
	d := m.session.Deck()
	title := d.Title
	if strings.TrimSpace(title) == "" {
		title = "Untitled deck"
	}

	position := components.NewProgress(m.session.Len(), d.Theme.Accent).View(m.session.Index() + 1)
	header := titleStyle.Render(title) + "  " + position + "  " +
		metaStyle.Render(fmt.Sprintf("%s · %s", m.session.Current().Kind(), template))
	if m.dirty {
		header += " " + dirtyStyle.Render("●")
	}
	if m.pending {
		header += "  " + m.spinner.View() + metaStyle.Render(" "+string(m.stage))
	}
	return header
}

func (m Model) renderInput() string {
	label := fieldStyle.Render(m.ref.String())
	return inputBoxStyle.Width(max(20, m.width-4)).Render(label + "\n" + m.input.View())
}

func (m Model) renderStatus() string {
	if m.status == "" {
		return ""
	}
	if m.statusErr {
		return errorStatusStyle.Render("✗ " + m.status)
	}
	return statusStyle.Render(m.status)
}

func (m Model) renderFooter() string {
	hints := "←/→ page · tab field · enter edit · a/d/x slide · t type · T theme · f font · s save · e export · g enrich · ? help · q quit"
	if m.mode == ModeEdit {
		hints = "enter commit · esc cancel · tab next field"
	}
	return footerStyle.Render(hints)
}

var helpRows = [][2]string{
	{"← → / h l", "previous / next slide"},
	{"home end", "first / last slide"},
	{"tab shift+tab", "focus next / previous field"},
	{"enter", "edit the focused field"},
	{"esc", "cancel the edit or clear focus"},
	{"a", "add a slide after this one"},
	{"d", "duplicate this slide"},
	{"x", "remove this slide"},
	{"K J", "move this slide up / down"},
	{"t", "change the slide type"},
	{"+ -", "add a list entry / remove the focused one"},
	{"T", "next theme preset"},
	{"f", "cycle font size"},
	{"s", "save the deck file"},
	{"e", "export .pptx"},
	{"g", "enrich the deck with the generator"},
	{"G", "regenerate the outline from the prompt"},
	{"q ctrl+c", "quit"},
}

func (m Model) renderHelp() string {
	lines := []string{titleStyle.Render("Keys"), ""}
	for _, row := range helpRows {
		lines = append(lines, helpKeyStyle.Render(row[0])+helpDescStyle.Render(row[1]))
	}
	lines = append(lines, "", metaStyle.Render("press any key to return"))
	return helpBoxStyle.Render(strings.Join(lines, "\n"))
}
