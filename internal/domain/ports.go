package domain

// ProjectScanner finds candidate source files under a project directory.
type ProjectScanner interface {
	Scan(projectPath string, opts ScanOptions) (*ScanResult, error)
}

// ScanOptions tunes directory traversal.
type ScanOptions struct {
	IncludeNodeModules bool
}

// ScanResult holds the result of scanning a project directory.
type ScanResult struct {
	RootPath string   `json:"root_path"`
	Files    []string `json:"files"`
}

// SourceParser turns raw file content into a SourceFile.
type SourceParser interface {
	Parse(path string, content []byte) (*SourceFile, error)
}

// ConfigLoader loads project configuration.
type ConfigLoader interface {
	Load(projectPath string) (ProjectConfig, error)
}

// CacheStore persists lint results between runs.
type CacheStore interface {
	Load(projectPath string) (*LintCache, error)
	Save(cache *LintCache) error
	Invalidate(projectPath string) error
}

// GitInfo reads repository state for a project.
type GitInfo interface {
	IsGitRepo(projectPath string) bool
	CommitHash(projectPath string) (string, error)
	// ChangedFiles returns absolute paths of modified, staged or untracked files.
	ChangedFiles(projectPath string) ([]string, error)
}

// RunHistory appends and reads recorded check runs, oldest first.
type RunHistory interface {
	Save(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}
