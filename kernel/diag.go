package kernel

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// LevelTrace is a custom slog level for per-cycle token-forwarding traces,
// below Info but above Debug in spirit — mirrors core/util.go's
// LevelTrace/LevelWaveform custom levels.
const LevelTrace slog.Level = slog.LevelDebug + 2

// Trace emits a trace log. The router calls it for every forwarded token,
// and the router and cluster call it when a configuration is installed;
// the PE stages do not trace. Disabled by default slog handlers unless the
// level is lowered.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// LogSink is the default Sink: it logs a deadlock report through slog and
// renders the blocked-task set as a table, matching core/util.go's use of
// go-pretty for human-readable diagnostic dumps.
type LogSink struct{}

// ReportDeadlock implements Sink.
func (LogSink) ReportDeadlock(err *DeadlockError) {
	slog.Error("deadlock", "cycle", err.Cycle, "blocked", err.Blocked)

	t := table.NewWriter()
	t.SetTitle("Deadlock: blocked tasks")
	t.AppendHeader(table.Row{"Task", "Blocked endpoint"})

	for _, b := range err.Blocked {
		task, endpoint, _ := strings.Cut(b, "@")
		t.AppendRow(table.Row{task, endpoint})
	}

	slog.Debug("deadlock detail\n" + t.Render())
}

// RenderBoolMatrix renders an S×D boolean matrix (a multicast routing
// configuration) as a table.
func RenderBoolMatrix(title string, rows int, colLabel func(int) string, at func(row, col int) bool, cols int) string {
	t := table.NewWriter()
	t.SetTitle(title)
	t.Style().Format.Header = text.FormatDefault

	header := table.Row{"src"}
	for c := 0; c < cols; c++ {
		header = append(header, colLabel(c))
	}
	t.AppendHeader(header)

	for r := 0; r < rows; r++ {
		row := table.Row{r}
		for c := 0; c < cols; c++ {
			row = append(row, at(r, c))
		}
		t.AppendRow(row)
	}

	return t.Render()
}
