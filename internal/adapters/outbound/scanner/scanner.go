package scanner

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/abdidvp/usedirective/internal/adapters/outbound/parser"
	"github.com/abdidvp/usedirective/internal/domain"
)

var skipDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".usedirective": true,
}

// FileScanner implements domain.ProjectScanner by walking the filesystem.
type FileScanner struct{}

func New() *FileScanner {
	return &FileScanner{}
}

// Scan collects JavaScript and TypeScript files under projectPath. A single
// file path is returned as-is. node_modules is only entered when requested.
func (s *FileScanner) Scan(projectPath string, opts domain.ScanOptions) (*domain.ScanResult, error) {
	absPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return &domain.ScanResult{
			RootPath: filepath.Dir(absPath),
			Files:    []string{filepath.Base(absPath)},
		}, nil
	}

	result := &domain.ScanResult{RootPath: absPath}

	err = filepath.WalkDir(absPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == absPath {
				return nil
			}
			if skipDirs[d.Name()] || (d.Name() == "node_modules" && !opts.IncludeNodeModules) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !parser.IsSupported(d.Name()) {
			return nil
		}

		relPath, _ := filepath.Rel(absPath, path)
		result.Files = append(result.Files, relPath)
		return nil
	})

	sort.Strings(result.Files)
	return result, err
}
