package application

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/usedirective/internal/domain"
	"github.com/abdidvp/usedirective/internal/domain/autofix"
)

// FixOptions tunes FixProject.
type FixOptions struct {
	RunOptions
	// DryRun computes fixes without writing files.
	DryRun bool
}

// SourceFix is the outcome of fixing one in-memory source.
type SourceFix struct {
	Text      string
	Passes    int
	Applied   int
	Converged bool
	// Remaining holds findings still present in Text.
	Remaining []domain.Violation
}

// FixService orchestrates the fix pipeline:
// config -> scan -> build rules -> fix loop per file -> write.
type FixService struct {
	scanner domain.ProjectScanner
	parser  domain.SourceParser
	config  domain.ConfigLoader
	cache   domain.CacheStore
	git     domain.GitInfo
	logger  *zap.Logger
}

// NewFixService wires the fix pipeline. cache and git may be nil.
func NewFixService(
	scanner domain.ProjectScanner,
	parser domain.SourceParser,
	config domain.ConfigLoader,
	cache domain.CacheStore,
	git domain.GitInfo,
	logger *zap.Logger,
) *FixService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FixService{
		scanner: scanner,
		parser:  parser,
		config:  config,
		cache:   cache,
		git:     git,
		logger:  logger,
	}
}

// FixProject applies every fixable finding under path, re-checking each file
// until no edits remain or the pass limit is reached.
func (s *FixService) FixProject(ctx context.Context, path string, opts FixOptions) (*domain.FixReport, error) {
	p, err := resolveProject(s.scanner, s.config, s.git, path, opts.RunOptions)
	if err != nil {
		return nil, err
	}

	fixes := make([]domain.FileFix, len(p.files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.workers())
	for i, rel := range p.files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fixes[i] = s.fixFile(p, rel, opts.DryRun)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &domain.FixReport{RootPath: p.root, DryRun: opts.DryRun, Files: fixes}

	if !opts.DryRun && report.ChangedCount() > 0 && s.cache != nil {
		if err := s.cache.Invalidate(p.root); err != nil {
			s.logger.Warn("invalidating cache failed", zap.String("root", p.root), zap.Error(err))
		}
	}

	s.logger.Debug("fix complete",
		zap.String("root", p.root),
		zap.Int("files", len(fixes)),
		zap.Int("changed", report.ChangedCount()),
		zap.Bool("dry_run", opts.DryRun),
	)
	return report, nil
}

func (s *FixService) fixFile(p *project, rel string, dryRun bool) domain.FileFix {
	fix := domain.FileFix{Path: rel}
	abs := p.abs(rel)

	info, err := os.Stat(abs)
	if err != nil {
		fix.Error = fmt.Sprintf("reading file: %v", err)
		return fix
	}
	content, err := os.ReadFile(abs)
	if err != nil {
		fix.Error = fmt.Sprintf("reading file: %v", err)
		return fix
	}

	res, err := s.fix(abs, string(content), p.rules)
	if err != nil {
		fix.Error = err.Error()
		s.logger.Warn("skipping unfixable file", zap.String("path", rel), zap.Error(err))
		return fix
	}
	fix.Passes = res.Passes
	fix.Applied = res.Applied
	fix.Converged = res.Converged
	fix.Remaining = res.Remaining

	if res.Applied == 0 || res.Text == string(content) || dryRun {
		return fix
	}
	if err := os.WriteFile(abs, []byte(res.Text), info.Mode().Perm()); err != nil {
		fix.Error = fmt.Sprintf("writing file: %v", err)
		return fix
	}
	fix.Written = true
	s.logger.Debug("fixed file", zap.String("path", rel), zap.Int("edits", res.Applied))
	return fix
}

// FixSource fixes in-memory content with rules built from cfg.
func (s *FixService) FixSource(path string, content []byte, cfg domain.ProjectConfig) (*SourceFix, error) {
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
	return s.fix(path, string(content), rules)
}

func (s *FixService) fix(path, text string, rules []domain.Rule) (*SourceFix, error) {
	var last []domain.Violation
	pass := func(current string) ([]domain.Edit, error) {
		f, err := s.parser.Parse(path, []byte(current))
		if err != nil {
			return nil, err
		}
		last = runRules(rules, f)
		return editsOf(last), nil
	}

	res, err := autofix.Loop(text, pass)
	if err != nil {
		return nil, err
	}

	// Loop always ends with a pass over res.Text, so last is current.
	return &SourceFix{
		Text:      res.Text,
		Passes:    res.Passes,
		Applied:   res.Applied,
		Converged: res.Converged,
		Remaining: last,
	}, nil
}
