package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"wpm/internal/control"
	wpmstrings "wpm/pkg/strings"
)

// stateIcon returns a colored glyph for a unit's lifecycle state.
func stateIcon(state string) string {
	switch state {
	case "running", "completed":
		return text.Colors{text.FgHiGreen, text.Bold}.Sprint("●")
	case "starting", "stopping":
		return text.Colors{text.FgHiYellow, text.Bold}.Sprint("●")
	case "failed":
		return text.Colors{text.FgHiRed, text.Bold}.Sprint("●")
	default: // stopped
		return text.Colors{text.FgHiBlack, text.Bold}.Sprint("●")
	}
}

// RenderState writes the State command's unit list as a rounded table:
// state icon, name, kind, state, health, pid, description.
func RenderState(out io.Writer, units []control.UnitSnapshot) {
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{
		"", "NAME", "KIND", "STATE", "HEALTH", "PID", "DESCRIPTION",
	})

	for _, u := range units {
		pid := "-"
		if u.HasPID {
			pid = fmt.Sprintf("%d", u.PID)
		}
		t.AppendRow(table.Row{
			stateIcon(u.State),
			text.Bold.Sprint(u.Name),
			u.Kind,
			u.State,
			u.Health,
			pid,
			wpmstrings.TruncateDescription(u.Description, 40),
		})
	}
	t.Render()
	fmt.Fprintf(out, "\n%s %d units\n", text.FgHiBlue.Sprint("Total:"), len(units))
}

// RenderStatus writes a single unit's Status reply: its snapshot as a
// two-column key/value table followed by its log tail.
func RenderStatus(out io.Writer, payload control.StatusPayload) {
	u := payload.Unit
	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetStyle(table.StyleRounded)
	t.AppendRow(table.Row{text.Bold.Sprint("Name"), u.Name})
	t.AppendRow(table.Row{text.Bold.Sprint("Description"), u.Description})
	t.AppendRow(table.Row{text.Bold.Sprint("Kind"), u.Kind})
	t.AppendRow(table.Row{text.Bold.Sprint("State"), fmt.Sprintf("%s %s", stateIcon(u.State), u.State)})
	t.AppendRow(table.Row{text.Bold.Sprint("Health"), u.Health})
	pid := "-"
	if u.HasPID {
		pid = fmt.Sprintf("%d", u.PID)
	}
	t.AppendRow(table.Row{text.Bold.Sprint("PID"), pid})
	if u.LastError != "" {
		t.AppendRow(table.Row{text.Colors{text.FgHiRed, text.Bold}.Sprint("Last error"), u.LastError})
	}
	t.Render()

	if len(payload.LogTail) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s\n", text.Colors{text.FgHiBlue, text.Bold}.Sprint("Log tail:"))
	for _, line := range payload.LogTail {
		fmt.Fprintln(out, line)
	}
}
