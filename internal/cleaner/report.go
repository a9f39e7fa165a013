package cleaner

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	strs "github.com/giantswarm/etcd-cleaner/pkg/strings"
)

func newTable(w io.Writer, header table.Row) table.Writer {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(header)
	return tw
}

// WriteReport prints the membership, the registry counts, the alerts and
// the removal plan of r.
func WriteReport(w io.Writer, r *Result) {
	nodes := r.Membership.Nodes.Sorted()
	fmt.Fprintf(w, "\nKubernetes nodes (nodes joining the cluster): %d\n", len(nodes))
	tw := newTable(w, table.Row{"Node"})
	for _, n := range nodes {
		tw.AppendRow(table.Row{n})
	}
	tw.Render()

	fmt.Fprintf(w, "\nEtcd nodes (nodes registered in %s):\n", r.Registry.Target.Pod)
	tw = newTable(w, table.Row{"Prefix", "Count", "Nodes"})
	for _, l := range r.Registry.Listings {
		names := make([]string, 0, l.Records.Len())
		for _, n := range l.Records.Sorted() {
			names = append(names, string(n))
		}
		tw.AppendRow(table.Row{l.Prefix, l.Records.Len(), strings.Join(names, "\n")})
	}
	tw.Render()

	if len(r.Plan.Alerts) > 0 {
		fmt.Fprintf(w, "\n%s %d\n", text.FgYellow.Sprint("Alerts (possible duplicate registrations):"), len(r.Plan.Alerts))
		tw = newTable(w, table.Row{"Prefix", "Live node", "Also registered as"})
		for _, a := range r.Plan.Alerts {
			tw.AppendRow(table.Row{a.Prefix, a.Raw, a.Canonical})
		}
		tw.Render()
	}

	fmt.Fprintf(w, "\nRemove nodes (not used nodes): %d\n", len(r.Plan.Candidates))
	if r.Plan.Empty() {
		return
	}
	tw = newTable(w, table.Row{"Prefix", "Node", "Key"})
	for _, c := range r.Plan.Candidates {
		tw.AppendRow(table.Row{c.Prefix, c.Name, c.String()})
	}
	tw.Render()
}

// WriteApplySummary prints one row per attempted delete.
func WriteApplySummary(w io.Writer, a ApplyResult) {
	if len(a.Outcomes) == 0 {
		return
	}
	fmt.Fprintf(w, "\nApplied: %d of %d removed\n", a.Deleted(), len(a.Outcomes))
	tw := newTable(w, table.Row{"Key", "Result", "Output"})
	for _, o := range a.Outcomes {
		key := string(o.Key)
		if key == "" {
			key = o.Candidate.String()
		}
		tw.AppendRow(table.Row{key, outcomeLabel(o), strs.Truncate(strings.Join(o.Output, " "), strs.DefaultOutputMaxLen)})
	}
	tw.Render()
}

func outcomeLabel(o DeleteOutcome) string {
	switch {
	case o.Err != nil:
		return text.FgRed.Sprint("failed")
	case o.AlreadyAbsent:
		return "already absent"
	default:
		return text.FgGreen.Sprint("deleted")
	}
}
