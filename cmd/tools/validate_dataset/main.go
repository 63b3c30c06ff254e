// Command validate_dataset parses a company metrics table and reports
// what the loader sees: row count, recognized columns, and per-goal
// metric coverage. Useful when preparing a new dataset drop.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/minji/esg-compass/internal/fetch"
	"github.com/minji/esg-compass/internal/tabular"
	"github.com/minji/esg-compass/internal/types"
)

func main() {
	source := flag.String("dataset", "", "Path or URL of the company metrics table")
	flag.Parse()

	if *source == "" {
		fmt.Fprintln(os.Stderr, "usage: validate_dataset --dataset <path-or-url>")
		os.Exit(1)
	}

	result, err := fetch.Source(context.Background(), *source, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	records := tabular.Parse(result.Text)
	fmt.Printf("Parsed %d records from %s\n", len(records), *source)
	if len(records) == 0 {
		fmt.Println("Warning: dataset contains no data rows; ranking against it will fail")
		os.Exit(1)
	}

	missingNames := 0
	missingCodes := 0
	goalCoverage := make([]int, types.GoalCount)
	for _, record := range records {
		if record.CompanyName() == "" {
			missingNames++
		}
		if record.CorpCode() == "" {
			missingCodes++
		}
		for id := 1; id <= types.GoalCount; id++ {
			if record.Mentions(id) != 0 || record.Sentiment(id) != 0 {
				goalCoverage[id-1]++
			}
		}
	}

	if missingNames > 0 {
		fmt.Printf("Warning: %d records have no company_name\n", missingNames)
	}
	if missingCodes > 0 {
		fmt.Printf("Warning: %d records have no corp_code\n", missingCodes)
	}

	fmt.Println("Goal metric coverage (records with non-zero metrics):")
	for id := 1; id <= types.GoalCount; id++ {
		fmt.Printf("  %s: %d/%d\n", types.GoalCode(id), goalCoverage[id-1], len(records))
	}
}
