package application

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/usedirective/internal/domain"
)

// LintOptions tunes LintProject.
type LintOptions struct {
	RunOptions
	// UseCache skips files recorded as clean under the same config.
	UseCache bool
}

// LintService orchestrates the lint pipeline:
// config -> scan -> build rules -> parse each file -> run rules -> report.
type LintService struct {
	scanner domain.ProjectScanner
	parser  domain.SourceParser
	config  domain.ConfigLoader
	cache   domain.CacheStore
	git     domain.GitInfo
	logger  *zap.Logger
}

// NewLintService wires the lint pipeline. cache and git may be nil; a nil
// logger discards output.
func NewLintService(
	scanner domain.ProjectScanner,
	parser domain.SourceParser,
	config domain.ConfigLoader,
	cache domain.CacheStore,
	git domain.GitInfo,
	logger *zap.Logger,
) *LintService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LintService{
		scanner: scanner,
		parser:  parser,
		config:  config,
		cache:   cache,
		git:     git,
		logger:  logger,
	}
}

// LintProject checks every candidate file under path. Per-file read and parse
// failures are recorded on the file result; only setup failures return an
// error.
func (s *LintService) LintProject(ctx context.Context, path string, opts LintOptions) (*domain.Report, error) {
	p, err := resolveProject(s.scanner, s.config, s.git, path, opts.RunOptions)
	if err != nil {
		return nil, err
	}

	var lc *domain.LintCache
	if opts.UseCache && s.cache != nil {
		lc, err = s.cache.Load(p.root)
		if err != nil {
			s.logger.Warn("ignoring unreadable cache", zap.String("root", p.root), zap.Error(err))
		}
		if !lc.IsValid(p.configHash) {
			lc = domain.NewLintCache(p.root, p.configHash)
		}
	}

	results := make([]domain.FileResult, len(p.files))
	hashes := make([]string, len(p.files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, rel := range p.files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i], hashes[i] = s.lintFile(p, rel, lc)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &domain.Report{
		RootPath:   p.root,
		Files:      results,
		Checked:    len(results),
		Timestamp:  time.Now().UTC(),
		ConfigHash: p.configHash,
	}
	if s.git != nil && s.git.IsGitRepo(p.root) {
		if hash, err := s.git.CommitHash(p.root); err == nil {
			report.CommitHash = hash
		}
	}

	if lc != nil {
		for i, r := range results {
			if r.Error == "" && !r.HasViolations() && hashes[i] != "" {
				lc.Files[r.Path] = hashes[i]
			} else {
				delete(lc.Files, r.Path)
			}
		}
		lc.UpdatedAt = report.Timestamp
		if err := s.cache.Save(lc); err != nil {
			s.logger.Warn("saving cache failed", zap.String("root", p.root), zap.Error(err))
		}
	}

	s.logger.Debug("lint complete",
		zap.String("root", p.root),
		zap.Int("files", report.Checked),
		zap.Int("violations", report.ViolationCount()),
	)
	return report, nil
}

func (s *LintService) lintFile(p *project, rel string, lc *domain.LintCache) (domain.FileResult, string) {
	result := domain.FileResult{Path: rel}

	content, err := os.ReadFile(p.abs(rel))
	if err != nil {
		result.Error = fmt.Sprintf("reading file: %v", err)
		s.logger.Warn("skipping unreadable file", zap.String("path", rel), zap.Error(err))
		return result, ""
	}

	hash := domain.Fingerprint(content)
	if lc.IsClean(rel, hash) {
		result.Cached = true
		return result, hash
	}

	violations, err := s.lint(p.abs(rel), content, p.rules)
	if err != nil {
		result.Error = err.Error()
		s.logger.Warn("skipping unparsable file", zap.String("path", rel), zap.Error(err))
		return result, hash
	}
	result.Violations = violations
	s.logger.Debug("checked file", zap.String("path", rel), zap.Int("violations", len(violations)))
	return result, hash
}

// LintSource checks in-memory content with rules built from cfg. An empty
// path is treated as synthetic input that no filter excludes.
func (s *LintService) LintSource(path string, content []byte, cfg domain.ProjectConfig) ([]domain.Violation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	rules, err := BuildRules(cfg, cfg.Dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		path = domain.NoPath
	}
	return s.lint(path, content, rules)
}

func (s *LintService) lint(path string, content []byte, rules []domain.Rule) ([]domain.Violation, error) {
	f, err := s.parser.Parse(path, content)
	if err != nil {
		return nil, err
	}
	return runRules(rules, f), nil
}
