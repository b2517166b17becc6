package automl

import (
	"math/rand/v2"

	"github.com/YuminosukeSato/goeda/pkg/errors"
)

// Strategy selects how candidate parameter assignments are generated.
type Strategy int

const (
	// StrategyGrid enumerates the cartesian product of each domain's grid
	// values.
	StrategyGrid Strategy = iota
	// StrategyRandom draws MaxTrials independent samples from the space.
	StrategyRandom
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyGrid:
		return "grid"
	case StrategyRandom:
		return "random"
	default:
		return "unknown"
	}
}

var supportedStrategies = []string{"grid", "random"}

// ParseStrategy converts a strategy name into a Strategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "grid":
		return StrategyGrid, nil
	case "random":
		return StrategyRandom, nil
	default:
		return 0, errors.NewUnsupportedKindError("automl.ParseStrategy", s, supportedStrategies)
	}
}

// Candidates generates the parameter assignments to evaluate. Grid search
// walks the cartesian product in deterministic (sorted-name) order and is
// truncated at maxTrials when positive; random search draws exactly
// maxTrials samples from a seeded generator.
func Candidates(space Space, strategy Strategy, maxTrials int, seed uint64) ([]Params, error) {
	switch strategy {
	case StrategyGrid:
		return gridCandidates(space, maxTrials), nil
	case StrategyRandom:
		if maxTrials <= 0 {
			return nil, errors.NewValidationError("max_trials", "must be positive for random search", maxTrials)
		}
		return randomCandidates(space, maxTrials, seed), nil
	default:
		return nil, errors.NewUnsupportedKindError("automl.Candidates", strategy.String(), supportedStrategies)
	}
}

func gridCandidates(space Space, maxTrials int) []Params {
	names := space.names()
	if len(names) == 0 {
		return []Params{{}}
	}

	grids := make([][]interface{}, len(names))
	for i, name := range names {
		grids[i] = space[name].GridValues()
	}

	candidates := []Params{}
	assignment := make([]int, len(names))
	for {
		p := make(Params, len(names))
		for i, name := range names {
			p[name] = grids[i][assignment[i]]
		}
		candidates = append(candidates, p)
		if maxTrials > 0 && len(candidates) >= maxTrials {
			return candidates
		}

		// advance the mixed-radix counter
		i := len(assignment) - 1
		for i >= 0 {
			assignment[i]++
			if assignment[i] < len(grids[i]) {
				break
			}
			assignment[i] = 0
			i--
		}
		if i < 0 {
			return candidates
		}
	}
}

func randomCandidates(space Space, maxTrials int, seed uint64) []Params {
	rng := rand.New(rand.NewPCG(seed, seed))
	names := space.names()

	candidates := make([]Params, maxTrials)
	for t := range candidates {
		p := make(Params, len(names))
		for _, name := range names {
			p[name] = space[name].Sample(rng)
		}
		candidates[t] = p
	}
	return candidates
}
