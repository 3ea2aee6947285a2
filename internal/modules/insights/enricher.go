// README: Enricher appends the first destination-matched tip to a generated plan.
package insights

import (
	"context"
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"wanderplan/internal/observability"
)

const tipBlockFormat = "\n<div class=\"local-tips\">\n<h3>💡 Quick Travel Tips for %s</h3>\n<p><em>%s</em></p>\n</div>"

type Enricher struct {
	source Source
}

func NewEnricher(source Source) *Enricher {
	return &Enricher{source: source}
}

// Enrich loads the tip table and appends at most one tip block to plan.
// A table that cannot be loaded is logged and the plan is returned unchanged.
func (e *Enricher) Enrich(ctx context.Context, plan, destination string) Result {
	table, err := e.source.Load(ctx)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn("could not load local tips", "error", err)
		return Result{Plan: plan, Degraded: true}
	}

	tip, ok := table.Match(destination)
	if !ok {
		return Result{Plan: plan}
	}
	return Result{
		Plan:    plan + TipBlock(tip),
		Key:     tip.Key,
		Applied: true,
	}
}

// TipBlock renders the markup appended for a matched tip.
func TipBlock(tip Tip) string {
	return fmt.Sprintf(tipBlockFormat, titleCase(tip.Key), tip.Text)
}

func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}
