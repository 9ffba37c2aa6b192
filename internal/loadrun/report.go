package loadrun

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// RenderReport writes the human-readable end-of-run summary: one line per
// loaded table, the audit findings, and a colored verdict.
func RenderReport(w io.Writer, res Result) {
	fmt.Fprintf(w, "run %s (job %s)\n", res.RunID, res.Job)

	if len(res.Tables) > 0 {
		tbl := tablewriter.NewWriter(w)
		tbl.SetHeader([]string{"Table", "Rows", "Duration"})
		for _, tr := range res.Tables {
			tbl.Append([]string{tr.Table, strconv.FormatInt(tr.Rows, 10), tr.Duration.String()})
		}
		tbl.Render()
	}

	if len(res.Findings) > 0 {
		fmt.Fprintf(w, "%d data-quality finding(s):\n", len(res.Findings))
		tbl := tablewriter.NewWriter(w)
		tbl.SetHeader([]string{"Check", "Table", "Key", "Reason"})
		for _, f := range res.Findings {
			tbl.Append([]string{f.Check, f.Table, f.Key, f.Reason})
		}
		tbl.Render()
	}

	switch res.Status {
	case StatusComplete:
		color.New(color.FgGreen, color.Bold).Fprintf(w, "%s in %s\n", res.Status, res.Duration.String())
	default:
		color.New(color.FgRed, color.Bold).Fprintf(w, "%s", string(res.Status))
		if res.FailedTable != "" {
			fmt.Fprintf(w, " at table %s", res.FailedTable)
		}
		if res.Err != nil {
			fmt.Fprintf(w, ": %v", res.Err)
		}
		fmt.Fprintln(w)
	}
}
