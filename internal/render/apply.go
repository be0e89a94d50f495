package render

import (
	"context"
	"fmt"
	"sort"

	"github.com/sawara-dev/ryohi/internal/service"
)

// DefaultMaxIterations caps how many occurrences of one token the engine will
// replace. The cap is a correctness guard against malformed templates with
// unbalanced or duplicated markers, not a tuning knob.
const DefaultMaxIterations = 100

// Outcome describes what happened to one placeholder token.
type Outcome int

// Token outcomes.
const (
	// OutcomeReplaced means every occurrence was substituted.
	OutcomeReplaced Outcome = iota
	// OutcomeAbsent means the template never contained the token.
	OutcomeAbsent
	// OutcomeCapHit means occurrences remained after the iteration cap.
	OutcomeCapHit
	// OutcomeDeleted means the token backed an empty data set and was
	// removed from the template.
	OutcomeDeleted
	// OutcomeTableInserted means a generated table replaced the token.
	OutcomeTableInserted
)

func (o Outcome) String() string {
	switch o {
	case OutcomeReplaced:
		return "replaced"
	case OutcomeAbsent:
		return "absent"
	case OutcomeCapHit:
		return "cap hit"
	case OutcomeDeleted:
		return "deleted"
	case OutcomeTableInserted:
		return "table inserted"
	default:
		return "unknown"
	}
}

// TokenResult records the outcome for one token.
type TokenResult struct {
	Token        string
	Outcome      Outcome
	Replacements int
}

// Options tunes the substitution engine.
type Options struct {
	// MaxIterations bounds replacements per token; zero means the default.
	MaxIterations int
}

// Report collects the per-token results of one Apply run.
type Report struct {
	Results []TokenResult
}

// CapHit reports whether any token ran into the iteration cap.
func (r *Report) CapHit() bool {
	for _, res := range r.Results {
		if res.Outcome == OutcomeCapHit {
			return true
		}
	}
	return false
}

// Apply writes the render model into a document body: the three tables go in
// first (while their placeholders are still intact), then every scalar
// placeholder is substituted with a bounded replace loop.
func Apply(ctx context.Context, body service.DocumentBody, m Model, opts Options) (*Report, error) {
	maxIter := opts.MaxIterations
	if maxIter <= 0 {
		maxIter = DefaultMaxIterations
	}

	report := &Report{Results: make([]TokenResult, 0, len(m.Substitutions)+3)}

	tables := []struct {
		table *Table
		token string
	}{
		{m.Transport, TokenTransportTable},
		{m.PerDiem, TokenPerDiemTable},
		{m.Lodging, TokenLodgingTable},
	}
	for _, t := range tables {
		res, err := applyTable(ctx, body, t.token, t.table)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, res)
	}

	// Deterministic token order keeps runs reproducible.
	keys := make([]string, 0, len(m.Substitutions))
	for k := range m.Substitutions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		res, err := replaceAll(ctx, body, "{{"+key+"}}", m.Substitutions[key], maxIter)
		if err != nil {
			return nil, err
		}
		report.Results = append(report.Results, res)
	}

	return report, nil
}

// applyTable inserts a generated table at its placeholder, or deletes the
// placeholder when the backing data set is empty. A template without the
// placeholder is fine; the step is skipped.
func applyTable(ctx context.Context, body service.DocumentBody, token string, table *Table) (TokenResult, error) {
	loc, ok, err := body.FindPlaceholder(ctx, token)
	if err != nil {
		return TokenResult{}, fmt.Errorf("failed to locate %s: %w", token, err)
	}
	if !ok {
		return TokenResult{Token: token, Outcome: OutcomeAbsent}, nil
	}

	if table == nil {
		if err := body.DeleteRange(ctx, loc); err != nil {
			return TokenResult{}, fmt.Errorf("failed to delete %s: %w", token, err)
		}
		return TokenResult{Token: token, Outcome: OutcomeDeleted}, nil
	}

	if err := body.InsertTable(ctx, loc, table.Cells()); err != nil {
		return TokenResult{}, fmt.Errorf("failed to insert table at %s: %w", token, err)
	}
	return TokenResult{Token: token, Outcome: OutcomeTableInserted}, nil
}

// replaceAll substitutes every occurrence of token, one find-and-replace at a
// time, stopping at the iteration cap.
func replaceAll(ctx context.Context, body service.DocumentBody, token, replacement string, maxIter int) (TokenResult, error) {
	res := TokenResult{Token: token}

	for res.Replacements < maxIter {
		loc, ok, err := body.FindPlaceholder(ctx, token)
		if err != nil {
			return res, fmt.Errorf("failed to locate %s: %w", token, err)
		}
		if !ok {
			if res.Replacements == 0 {
				res.Outcome = OutcomeAbsent
			} else {
				res.Outcome = OutcomeReplaced
			}
			return res, nil
		}
		if err := body.ReplaceRange(ctx, loc, replacement); err != nil {
			return res, fmt.Errorf("failed to replace %s: %w", token, err)
		}
		res.Replacements++
	}

	// Cap reached; distinguish a fully consumed template from leftovers.
	if _, ok, err := body.FindPlaceholder(ctx, token); err != nil {
		return res, fmt.Errorf("failed to locate %s: %w", token, err)
	} else if ok {
		res.Outcome = OutcomeCapHit
	} else {
		res.Outcome = OutcomeReplaced
	}
	return res, nil
}
