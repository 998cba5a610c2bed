// Package ui renders transcript messages and structured blocks for the
// terminal.
package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mdp/qrterminal/v3"

	"github.com/shulechat/client/api"
)

var (
	userLabel      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	assistantLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	dimStyle       = lipgloss.NewStyle().Faint(true)
	blockBox       = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	blockTitle     = lipgloss.NewStyle().Bold(true).Underline(true)
)

// RenderMessage formats one transcript entry, including any blocks attached
// to an assistant reply.
func RenderMessage(m api.DisplayMessage) string {
	var sb strings.Builder

	switch m.Role {
	case api.RoleUser:
		sb.WriteString(userLabel.Render("you") + "  " + m.Content)
	case api.RoleAssistant:
		sb.WriteString(assistantLabel.Render("assistant") + "  " + m.Content)
	default:
		sb.WriteString(m.Role + "  " + m.Content)
	}

	for _, b := range m.Blocks {
		sb.WriteString("\n")
		sb.WriteString(renderBlock(b))
	}
	return sb.String()
}

func renderBlock(b api.Block) string {
	var sb strings.Builder

	if b.Title != "" {
		sb.WriteString(blockTitle.Render(b.Title))
		sb.WriteString("\n")
	}

	if len(b.Columns) > 0 {
		sb.WriteString(RenderTable(b.Columns, b.Rows))
	} else if len(b.Data) > 0 {
		sb.WriteString(string(b.Data))
	}

	if len(b.Actions) > 0 {
		sb.WriteString("\n")
		for i, a := range b.Actions {
			label := a.Label
			if label == "" {
				label = a.Type
			}
			sb.WriteString(dimStyle.Render(fmt.Sprintf("[%d] %s", i+1, label)))
			if i < len(b.Actions)-1 {
				sb.WriteString("  ")
			}
		}
	}

	return blockBox.Render(sb.String())
}

// RenderTable lays out rows under padded column headers.
func RenderTable(columns []string, rows [][]string) string {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i >= len(widths) {
				break
			}
			sb.WriteString(cell)
			sb.WriteString(strings.Repeat(" ", widths[i]-len(cell)+2))
		}
		sb.WriteString("\n")
	}

	writeRow(columns)
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimRight(sb.String(), "\n")
}

// RenderLink prints a URL together with a QR code so the resource can be
// opened on any nearby device without losing the conversation.
func RenderLink(w io.Writer, url string) {
	fmt.Fprintln(w, url)
	qrterminal.GenerateHalfBlock(url, qrterminal.L, w)
}
