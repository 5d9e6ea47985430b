package domain

import "time"

// FileResult holds the findings for one file.
type FileResult struct {
	Path       string      `json:"path"`
	Violations []Violation `json:"violations,omitempty"`
	Error      string      `json:"error,omitempty"`
	Cached     bool        `json:"cached,omitempty"`
}

// HasViolations reports whether the file produced any findings.
func (r FileResult) HasViolations() bool { return len(r.Violations) > 0 }

// Report is the outcome of linting a project.
type Report struct {
	RootPath   string       `json:"root_path"`
	Files      []FileResult `json:"files"`
	Checked    int          `json:"checked"`
	Timestamp  time.Time    `json:"timestamp"`
	CommitHash string       `json:"commit_hash,omitempty"`
	// ConfigHash fingerprints the effective config the run used.
	ConfigHash string `json:"config_hash,omitempty"`
}

// ViolationCount returns the total number of findings.
func (r Report) ViolationCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Violations)
	}
	return n
}

// FixableCount returns the number of findings that carry an edit.
func (r Report) FixableCount() int {
	n := 0
	for _, f := range r.Files {
		for _, v := range f.Violations {
			if v.Fixable() {
				n++
			}
		}
	}
	return n
}

// ErrorCount returns the number of files that could not be checked.
func (r Report) ErrorCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Error != "" {
			n++
		}
	}
	return n
}

// FileFix describes the fix outcome for one file.
type FileFix struct {
	Path      string      `json:"path"`
	Passes    int         `json:"passes"`
	Applied   int         `json:"applied"`
	Converged bool        `json:"converged"`
	Written   bool        `json:"written"`
	Remaining []Violation `json:"remaining,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// FixReport is the outcome of fixing a project.
type FixReport struct {
	RootPath string    `json:"root_path"`
	DryRun   bool      `json:"dry_run"`
	Files    []FileFix `json:"files"`
}

// ChangedCount returns how many files had at least one edit applied.
func (r FixReport) ChangedCount() int {
	n := 0
	for _, f := range r.Files {
		if f.Applied > 0 {
			n++
		}
	}
	return n
}

// RunEntry summarizes one recorded check run.
type RunEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	CommitHash string    `json:"commit_hash,omitempty"`
	Files      int       `json:"files"`
	Violations int       `json:"violations"`
	Fixable    int       `json:"fixable"`
	Errors     int       `json:"errors"`
	ConfigHash string    `json:"config_hash,omitempty"`
}

// NewRunEntry summarizes r for the run history.
func NewRunEntry(r *Report) RunEntry {
	return RunEntry{
		Timestamp:  r.Timestamp,
		CommitHash: r.CommitHash,
		Files:      r.Checked,
		Violations: r.ViolationCount(),
		Fixable:    r.FixableCount(),
		Errors:     r.ErrorCount(),
		ConfigHash: r.ConfigHash,
	}
}
