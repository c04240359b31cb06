package selection

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/harmya/grifter-or-pro/internal/llm"
	"github.com/harmya/grifter-or-pro/internal/logging"
	"github.com/harmya/grifter-or-pro/internal/prompts"
	"github.com/harmya/grifter-or-pro/internal/schemas"
	"github.com/harmya/grifter-or-pro/internal/types"
)

const (
	// maxOracleCandidates caps how many paths are listed in the prompt.
	maxOracleCandidates = 300
	oracleTemperature   = 0.2
	oracleMaxTokens     = 400
)

type oracleReply struct {
	Files []string `json:"files"`
}

// OracleSelector asks the LLM which relevant files best exercise the description.
type OracleSelector struct {
	client  llm.Client
	chooser Chooser
	logger  *zap.Logger
}

// NewOracleSelector creates an oracle-backed selector. The chooser pre-samples
// very large trees down to a prompt-sized candidate list.
func NewOracleSelector(client llm.Client, chooser Chooser, logger *zap.Logger) *OracleSelector {
	if chooser == nil {
		chooser = RandomChooser{}
	}
	return &OracleSelector{client: client, chooser: chooser, logger: logging.OrNop(logger)}
}

// Select returns exactly min(count, relevant) distinct paths, or nothing when the
// oracle names too few usable paths. Oracle call and schema failures return *Error.
func (s *OracleSelector) Select(ctx context.Context, tree []types.TreeEntry, description string, count int) ([]string, error) {
	candidates := RelevantPaths(tree)
	if len(candidates) == 0 {
		return nil, nil
	}

	target := targetCount(count, len(candidates))
	if len(candidates) == target {
		return candidates, nil
	}
	if len(candidates) > maxOracleCandidates {
		candidates = s.chooser.Choose(maxOracleCandidates, candidates)
	}

	req := llm.ChatRequest{
		System: prompts.MustGet("selection.json", "pick-files-system-v1"),
		User: prompts.Format(prompts.MustGet("selection.json", "pick-files-user-v1"), map[string]string{
			"Description": description,
			"Count":       strconv.Itoa(target),
			"Paths":       strings.Join(candidates, "\n"),
		}),
		Tier:            llm.TierLite,
		Temperature:     oracleTemperature,
		MaxOutputTokens: oracleMaxTokens,
	}

	text, err := s.client.GenerateJSON(ctx, req)
	if err != nil {
		return nil, &Error{Strategy: StrategyOracle, Message: "oracle call failed", Cause: err}
	}
	if err := schemas.Validate(schemas.SelectionSchema, text); err != nil {
		return nil, &Error{Strategy: StrategyOracle, Message: "oracle reply failed schema validation", Cause: err}
	}

	var reply oracleReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		return nil, &Error{Strategy: StrategyOracle, Message: "decoding oracle reply", Cause: err}
	}

	allowed := make(map[string]struct{}, len(candidates))
	for _, p := range candidates {
		allowed[p] = struct{}{}
	}

	picked := make([]string, 0, target)
	for _, p := range reply.Files {
		if _, ok := allowed[p]; !ok {
			continue
		}
		delete(allowed, p)
		picked = append(picked, p)
		if len(picked) == target {
			return picked, nil
		}
	}

	s.logger.Warn("oracle named too few usable files",
		zap.Int("wanted", target),
		zap.Int("usable", len(picked)),
		zap.Int("named", len(reply.Files)))
	return nil, nil
}
