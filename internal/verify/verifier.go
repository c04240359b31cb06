// Package verify runs the per-project pipeline: locate the repository, sample its
// code and ask the oracle for a critique of the project description.
package verify

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/harmya/grifter-or-pro/internal/github"
	"github.com/harmya/grifter-or-pro/internal/llm"
	"github.com/harmya/grifter-or-pro/internal/logging"
	"github.com/harmya/grifter-or-pro/internal/selection"
	"github.com/harmya/grifter-or-pro/internal/types"
)

// DefaultConcurrency is how many projects of a batch are verified at once.
const DefaultConcurrency = 4

// Reasons attached to unverifiable results.
const (
	ReasonUnparseableURL     = "could not parse repository URL"
	ReasonTreeFetchFailed    = "could not fetch repository tree"
	ReasonSelectionFailed    = "could not select files to sample"
	ReasonNoSamples          = "no code samples available for analysis"
	ReasonContentFetchFailed = "could not fetch sampled file contents"
)

// MessageMissingLinks is the report message when a resume lacks repository links.
const MessageMissingLinks = "could not find all links"

// RepositoryHost is the subset of the hosting API the pipeline needs.
type RepositoryHost interface {
	DefaultBranch(ctx context.Context, ref types.RepositoryRef) string
	Tree(ctx context.Context, ref types.RepositoryRef, branch string) ([]types.TreeEntry, error)
	FetchSamples(ctx context.Context, ref types.RepositoryRef, branch string, paths []string) ([]types.CodeSample, error)
}

// Progress is called once per finished project of a batch. Calls are serialized.
type Progress func(done, total int, entry types.ProjectAnalysis)

// Options tunes a Verifier. Zero values select the defaults.
type Options struct {
	SampleCount int
	Concurrency int
	OnProgress  Progress
}

// Verifier holds read-only collaborators and may be shared across goroutines.
type Verifier struct {
	host        RepositoryHost
	selector    selection.Selector
	client      llm.Client
	sampleCount int
	concurrency int
	onProgress  Progress
	logger      *zap.Logger
}

// New creates a Verifier.
func New(host RepositoryHost, selector selection.Selector, client llm.Client, opts Options, logger *zap.Logger) *Verifier {
	v := &Verifier{
		host:        host,
		selector:    selector,
		client:      client,
		sampleCount: opts.SampleCount,
		concurrency: opts.Concurrency,
		onProgress:  opts.OnProgress,
		logger:      logging.OrNop(logger),
	}
	if v.sampleCount <= 0 {
		v.sampleCount = selection.DefaultCount
	}
	if v.concurrency <= 0 {
		v.concurrency = DefaultConcurrency
	}
	return v
}

// Verify runs one project to a terminal result. Every failure before the oracle
// becomes an unverifiable result; only an oracle failure (or a canceled context)
// is returned as an error.
func (v *Verifier) Verify(ctx context.Context, project types.Project) (types.VerificationResult, error) {
	if err := ctx.Err(); err != nil {
		return types.VerificationResult{}, err
	}
	log := v.logger.With(zap.String("project", project.Name), zap.String("url", project.URL))

	ref, ok := github.ParseRepoURL(project.URL)
	if !ok {
		log.Info("skipping project without a repository URL")
		return unverifiable(ReasonUnparseableURL), nil
	}

	branch := v.host.DefaultBranch(ctx, ref)

	tree, err := v.host.Tree(ctx, ref, branch)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.VerificationResult{}, fmt.Errorf("fetching tree of %s: %w", ref, ctxErr)
		}
		log.Warn("tree fetch failed", zap.String("branch", branch), zap.Error(err))
		return unverifiable(fmt.Sprintf("%s: %v", ReasonTreeFetchFailed, err)), nil
	}

	paths, err := v.selector.Select(ctx, tree, project.Description, v.sampleCount)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.VerificationResult{}, fmt.Errorf("selecting files of %s: %w", ref, ctxErr)
		}
		log.Warn("file selection failed", zap.Error(err))
		return unverifiable(fmt.Sprintf("%s: %v", ReasonSelectionFailed, err)), nil
	}
	if len(paths) == 0 {
		log.Info("no relevant files to sample", zap.Int("tree_entries", len(tree)))
		return unverifiable(ReasonNoSamples), nil
	}

	samples, err := v.host.FetchSamples(ctx, ref, branch, paths)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.VerificationResult{}, fmt.Errorf("fetching samples of %s: %w", ref, ctxErr)
		}
		log.Warn("content fetch failed", zap.Strings("paths", paths), zap.Error(err))
		return unverifiable(fmt.Sprintf("%s: %v", ReasonContentFetchFailed, err)), nil
	}
	if len(samples) == 0 {
		return unverifiable(ReasonNoSamples), nil
	}

	analysis, err := v.client.Chat(ctx, BuildJudgmentPrompt(project.Description, samples))
	if err != nil {
		return types.VerificationResult{}, fmt.Errorf("judging %s: %w", ref, err)
	}

	links := make([]types.SampleLink, 0, len(samples))
	for _, s := range samples {
		links = append(links, s.Link())
	}

	log.Debug("project verified", zap.String("branch", branch), zap.Int("samples", len(links)))
	return types.VerificationResult{
		Status:   types.StatusVerified,
		Analysis: analysis,
		Samples:  links,
	}, nil
}

// VerifyBatch verifies every project and returns exactly one entry per input, in
// input order. A failing project never affects its siblings.
func (v *Verifier) VerifyBatch(ctx context.Context, projects []types.Project) types.Report {
	entries := make([]types.ProjectAnalysis, len(projects))

	var (
		mu   sync.Mutex
		done int
	)

	var g errgroup.Group
	g.SetLimit(v.concurrency)
	for i, project := range projects {
		g.Go(func() error {
			result, err := v.Verify(ctx, project)
			if err != nil {
				v.logger.Error("project analysis failed", zap.String("project", project.Name), zap.Error(err))
				entries[i] = types.FailedProjectAnalysis(project.Name, err)
			} else {
				entries[i] = types.NewProjectAnalysis(project.Name, result)
			}

			if v.onProgress != nil {
				mu.Lock()
				done++
				v.onProgress(done, len(projects), entries[i])
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return types.Report{Projects: entries}
}

// AnalyzeResume verifies the projects of a parsed resume. When the extractor could
// not find every link the pipeline is skipped and the report only carries a message.
func (v *Verifier) AnalyzeResume(ctx context.Context, resume types.ParsedResume) types.Report {
	if !resume.FoundAllLinks {
		return types.Report{Projects: []types.ProjectAnalysis{}, Message: MessageMissingLinks}
	}
	return v.VerifyBatch(ctx, resume.Projects)
}

func unverifiable(reason string) types.VerificationResult {
	return types.VerificationResult{
		Status:  types.StatusUnverifiable,
		Reason:  reason,
		Samples: []types.SampleLink{},
	}
}
