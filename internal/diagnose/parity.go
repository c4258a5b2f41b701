// Package diagnose inspects regions for orientation parity before or after
// a fill. It only reports; conflicted regions are never split or repaired.
package diagnose

import (
	"context"

	"svw.info/forestfill/internal/catalog"
	"svw.info/forestfill/internal/domain"
)

// Parity tallies the pattern phase each pre-assigned forest tile implies.
// Two fixed tiles voting for different phases cannot both be matched by a
// single orientation; the fill engine will wall the loser off with fallback
// tiles, and this report tells the caller why.
type Parity struct{}

func New() *Parity { return &Parity{} }

// Diagnose returns the vote tally for r. found is false when the region has
// no pre-assigned forest tiles to learn from.
func (p *Parity) Diagnose(ctx context.Context, r *domain.Region) (domain.ParityReport, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.ParityReport{}, false, err
	}
	var rep domain.ParityReport
	if r == nil || len(r.PreAssigned) == 0 {
		return rep, false, nil
	}

	total := 0
	for c, t := range r.PreAssigned {
		fam := catalog.FamilyOf(t)
		if fam == catalog.FamilyNone {
			continue
		}
		rep.Votes[catalog.OrientationForFamily(c.Row, c.Col, fam)]++
		total++
	}
	if total == 0 {
		return rep, false, nil
	}

	for o := 0; o < domain.OrientationCount; o++ {
		if rep.Votes[o] > rep.Votes[rep.Suggested] {
			rep.Suggested = domain.Orientation(o)
		}
		if rep.Votes[o] > 0 && rep.Votes[o] < total {
			rep.Conflict = true
		}
	}
	return rep, true, nil
}
