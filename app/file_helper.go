package app

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"github.com/sirupsen/logrus"

	"github.com/ludo-technologies/polyscan/internal/config"
	"github.com/ludo-technologies/polyscan/internal/language"
)

// FileHelper discovers analyzable files on disk
type FileHelper struct {
	cfg    config.CollectorConfig
	logger *logrus.Logger
}

// NewFileHelper creates a new FileHelper. A nil cfg uses the default collector settings.
func NewFileHelper(cfg *config.CollectorConfig, logger *logrus.Logger) *FileHelper {
	if cfg == nil {
		cfg = &config.DefaultConfig().Collector
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &FileHelper{cfg: *cfg, logger: logger}
}

// CollectFiles returns the files to analyze under paths. Explicit file
// arguments are always kept; directories are walked and filtered by the
// include/exclude globs, the root .gitignore, the size limit and language
// detection. Duplicates are dropped and the first occurrence wins.
func (h *FileHelper) CollectFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		found, err := h.walk(path)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	return files, nil
}

// walk collects matching files below root in lexical order
func (h *FileHelper) walk(root string) ([]string, error) {
	gitignore := h.loadGitignore(root)
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if !h.cfg.Recursive || h.isExcluded(rel) || h.isIgnored(gitignore, rel+"/") {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}
		if !h.isIncluded(rel) || h.isExcluded(rel) || h.isIgnored(gitignore, rel) {
			return nil
		}
		if _, ok := language.Detect(path); !ok {
			return nil
		}

		if h.cfg.MaxFileBytes > 0 {
			info, err := d.Info()
			if err != nil {
				return err
			}
			if info.Size() > h.cfg.MaxFileBytes {
				h.logger.WithFields(logrus.Fields{
					"path":  path,
					"bytes": info.Size(),
				}).Debug("skipping file over size limit")
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// loadGitignore compiles root/.gitignore when enabled and present
func (h *FileHelper) loadGitignore(root string) *ignore.GitIgnore {
	if !h.cfg.RespectGitignore {
		return nil
	}

	path := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(path); err != nil {
		return nil
	}

	gi, err := ignore.CompileIgnoreFile(path)
	if err != nil {
		h.logger.WithError(err).WithField("path", path).Warn("failed to read .gitignore")
		return nil
	}
	return gi
}

func (h *FileHelper) isIgnored(gi *ignore.GitIgnore, rel string) bool {
	return gi != nil && gi.MatchesPath(rel)
}

func (h *FileHelper) isIncluded(rel string) bool {
	if len(h.cfg.IncludePatterns) == 0 {
		return true
	}
	return matchAny(h.cfg.IncludePatterns, rel)
}

func (h *FileHelper) isExcluded(rel string) bool {
	return matchAny(h.cfg.ExcludePatterns, rel)
}

func matchAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// FileExists checks if a regular file exists
func (h *FileHelper) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return !info.IsDir(), nil
}

// ReadFile reads file content
func (h *FileHelper) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
