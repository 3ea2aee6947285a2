// README: Destination tips: ordered tip table, result of an enrichment pass.
package insights

import (
	"context"
	"strings"
)

// Tip pairs a lowercase locale key (matched as a substring of the destination) with its text.
type Tip struct {
	Key  string
	Text string
}

// TipTable keeps tips in the order of the external source; the first matching key wins.
type TipTable []Tip

// Source loads a fresh tip table. Implementations must preserve source order.
type Source interface {
	Load(ctx context.Context) (TipTable, error)
}

// Result is the outcome of an enrichment pass.
type Result struct {
	// Plan is the input plan, with at most one tip block appended.
	Plan string
	// Key is the matching tip key, empty when nothing was appended.
	Key     string
	Applied bool
	// Degraded is true when the tip table could not be loaded.
	Degraded bool
}

// Match returns the first tip whose key is a substring of the lower-cased destination.
func (t TipTable) Match(destination string) (Tip, bool) {
	dest := strings.ToLower(destination)
	for _, tip := range t {
		// Keys are compared as stored; an upper-case key never matches.
		if strings.Contains(dest, tip.Key) {
			return tip, true
		}
	}
	return Tip{}, false
}
