// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/minji/esg-compass/internal/ranking"
	"github.com/minji/esg-compass/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintRequest outputs a human-readable summary of the ranking request.
func (p *Printer) PrintRequest(req *types.RankingRequest) {
	if req == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Risk preference: %s\n", req.RiskPreference))
	sb.WriteString("Selected goals:\n")
	for _, sel := range req.SelectedGoals {
		title := ""
		if goal, ok := types.GoalByID(sel.GoalID); ok {
			title = goal.Title
		}
		sb.WriteString(fmt.Sprintf("  • %s %s (importance %d)\n", types.GoalCode(sel.GoalID), title, sel.Importance))
	}

	p.printBox("Ranking Request", sb.String())
}

// PrintRanking outputs the scored top-N companies in rank order.
func (p *Printer) PrintRanking(scored []ranking.ScoredCompany) {
	var sb strings.Builder
	count := min(len(scored), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := scored[i]
		sb.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, s.Record.CompanyName(), s.Record.CorpCode()))
		sb.WriteString(fmt.Sprintf("   score %.3f, top goal %s\n", s.Score, s.TopGoalCode()))
	}
	if len(scored) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(scored)-maxItemsToShow))
	}

	p.printBox("Ranking Result", sb.String())
}

// PrintRecommendations outputs the final enriched recommendation set.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	var sb strings.Builder
	for i, rec := range recs {
		sb.WriteString(fmt.Sprintf("%d. %s  %s  %.2f\n", i+1, rec.CompanyName, rec.TopGoalCode, rec.MatchScore))
		if rec.Explanation != "" {
			sb.WriteString(fmt.Sprintf("   %s\n", rec.Explanation))
		}
	}

	p.printBox("Recommendations", sb.String())
}
