package search

import (
	"context"

	"github.com/Klingon-tech/keeta-cli/internal/account"
)

// AutoDetectIndices is the number of indices Search probes per algorithm.
const AutoDetectIndices = 6

// Report is the full result of a Search.
type Report struct {
	Best   *Candidate  // nil when nothing was found
	Probes []Candidate // every probe in probe order
}

// Search probes every algorithm at indices 0 through 5 and returns the
// candidate with the strictly greatest total balance. The first candidate
// in probe order wins a tie. Zero and failed probes never win and never
// stop the search. ErrNotFound is returned when no probe found a balance.
func (e *Engine) Search(ctx context.Context, seed []byte) (*Candidate, error) {
	report, err := e.SearchReport(ctx, seed)
	if err != nil {
		return nil, err
	}
	return report.Best, nil
}

// SearchReport runs the same probes as Search and also returns each of them.
// The report is returned alongside ErrNotFound so callers can show what
// was tried.
func (e *Engine) SearchReport(ctx context.Context, seed []byte) (*Report, error) {
	if err := checkSeed(seed); err != nil {
		return nil, err
	}

	algos := account.All()
	report := &Report{Probes: make([]Candidate, 0, len(algos)*AutoDetectIndices)}
	for _, algo := range algos {
		for index := uint32(0); index < AutoDetectIndices; index++ {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			c := e.probe(ctx, seed, algo, index)
			report.Probes = append(report.Probes, c)

			if c.Status != StatusFound {
				continue
			}
			if report.Best == nil || c.Total.Cmp(report.Best.Total) > 0 {
				best := c
				report.Best = &best
			}
		}
	}

	if report.Best == nil {
		e.log.Info().Int("probes", len(report.Probes)).Msg("Search found no funded account")
		return report, ErrNotFound
	}
	e.log.Info().
		Str("algo", string(report.Best.Algorithm)).
		Uint32("index", report.Best.Index).
		Str("total", report.Best.Total.String()).
		Msg("Search selected account")
	return report, nil
}
