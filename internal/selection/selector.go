package selection

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/harmya/grifter-or-pro/internal/llm"
	"github.com/harmya/grifter-or-pro/internal/types"
)

// DefaultCount is the number of files sampled per repository.
const DefaultCount = 3

// Strategy names accepted by New.
const (
	StrategyUniform = "uniform"
	StrategyOracle  = "oracle"
)

// Selector picks the paths to sample from a repository tree. The result holds
// at most count distinct relevant blob paths; an empty result is not an error.
type Selector interface {
	Select(ctx context.Context, tree []types.TreeEntry, description string, count int) ([]string, error)
}

// New builds the selector for a strategy. The oracle strategy requires a client.
func New(strategy string, client llm.Client, chooser Chooser, logger *zap.Logger) (Selector, error) {
	if chooser == nil {
		chooser = RandomChooser{}
	}

	switch strategy {
	case "", StrategyUniform:
		return &UniformSelector{Chooser: chooser}, nil
	case StrategyOracle:
		if client == nil {
			return nil, fmt.Errorf("%s strategy requires an LLM client", StrategyOracle)
		}
		return NewOracleSelector(client, chooser, logger), nil
	default:
		return nil, fmt.Errorf("unknown selection strategy %q", strategy)
	}
}

// UniformSelector samples relevant files uniformly at random.
type UniformSelector struct {
	Chooser Chooser
}

// Select ignores the description; every relevant file is equally likely.
func (s *UniformSelector) Select(_ context.Context, tree []types.TreeEntry, _ string, count int) ([]string, error) {
	candidates := RelevantPaths(tree)
	if len(candidates) == 0 {
		return nil, nil
	}
	chooser := s.Chooser
	if chooser == nil {
		chooser = RandomChooser{}
	}
	return chooser.Choose(targetCount(count, len(candidates)), candidates), nil
}

func targetCount(count, available int) int {
	if count <= 0 {
		count = DefaultCount
	}
	return min(count, available)
}
