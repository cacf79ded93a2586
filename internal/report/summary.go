package report

import (
	"fmt"
	"io"

	"github.com/mwhitby/kinship/internal/kinship"
)

// WriteNetworkSummary emits whole-network figures as a plain-text report.
func WriteNetworkSummary(w io.Writer, g *kinship.Graph) error {
	order := g.Order()
	edges := g.EdgeCount()
	avg := 0.0
	if order > 0 {
		avg = float64(2*edges) / float64(order)
	}
	components := g.Components()

	if _, err := fmt.Fprintf(w, "people: %d\nedges: %d\naverage degree: %.4f\ncomponents: %d\ncomponent sizes:",
		order, edges, avg, len(components)); err != nil {
		return err
	}
	for _, c := range components {
		if _, err := fmt.Fprintf(w, " %d", len(c)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
