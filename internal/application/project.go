package application

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/abdidvp/usedirective/internal/domain"
)

// RunOptions are shared by lint and fix runs.
type RunOptions struct {
	Overrides domain.ConfigOverrides
	// Changed restricts the run to files git reports as modified or untracked.
	Changed bool
	// Workers bounds concurrent file processing; zero means GOMAXPROCS.
	Workers int
}

func (o RunOptions) workers() int {
	if o.Workers > 0 {
		return o.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// project is a resolved run target: its files, config and rules.
type project struct {
	root       string
	files      []string
	cfg        domain.ProjectConfig
	configHash string
	rules      []domain.Rule
}

// resolveProject performs the steps shared by LintProject and FixProject:
// load config -> scan -> build rules -> narrow to changed files.
func resolveProject(
	scanner domain.ProjectScanner,
	loader domain.ConfigLoader,
	git domain.GitInfo,
	path string,
	opts RunOptions,
) (*project, error) {
	// 1. Load config from the directory that holds path
	cfgDir, err := configDir(path)
	if err != nil {
		return nil, err
	}
	cfg, err := loader.Load(cfgDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	cfg = cfg.WithOverrides(opts.Overrides)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	// 2. Scan filesystem
	scan, err := scanner.Scan(path, domain.ScanOptions{
		IncludeNodeModules: cfg.RequireDirective.IncludeNodeModules,
	})
	if err != nil {
		return nil, fmt.Errorf("scanning project: %w", err)
	}

	// 3. Build rules; a missing directive stops the run here.
	// Ignore patterns are relative to the config file, not the scan root.
	rules, err := BuildRules(cfg, ruleRoot(cfg, scan.RootPath))
	if err != nil {
		return nil, err
	}

	p := &project{
		root:       scan.RootPath,
		files:      scan.Files,
		cfg:        cfg,
		configHash: configHash(cfg),
		rules:      rules,
	}

	// 4. Narrow to changed files
	if opts.Changed {
		if git == nil || !git.IsGitRepo(p.root) {
			return nil, fmt.Errorf("--changed requires a git repository at %s", p.root)
		}
		changed, err := git.ChangedFiles(p.root)
		if err != nil {
			return nil, fmt.Errorf("listing changed files: %w", err)
		}
		p.files = intersect(p.root, p.files, changed)
	}

	return p, nil
}

func (p *project) abs(rel string) string {
	return filepath.Join(p.root, rel)
}

func configDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("scanning project: %w", err)
	}
	if info.IsDir() {
		return abs, nil
	}
	return filepath.Dir(abs), nil
}

func ruleRoot(cfg domain.ProjectConfig, scanRoot string) string {
	if cfg.Dir != "" {
		return cfg.Dir
	}
	return scanRoot
}

func configHash(cfg domain.ProjectConfig) string {
	data, _ := json.Marshal(cfg)
	return domain.Fingerprint(data)
}

// intersect keeps the scanned files whose absolute path is in changed,
// preserving scan order.
func intersect(root string, files, changed []string) []string {
	set := make(map[string]bool, len(changed))
	for _, c := range changed {
		set[filepath.Clean(c)] = true
	}
	var out []string
	for _, f := range files {
		if set[filepath.Join(root, f)] {
			out = append(out, f)
		}
	}
	return out
}
