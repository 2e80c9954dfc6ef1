// Package workspace assembles everything a completion session needs from a directory: the
// nearest .beancomplete.yaml, the bean description files it names (or finds), the hide
// filter and the matcher.
package workspace

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/boyter/gocodewalker"
	"go.uber.org/zap"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/beans"
	"github.com/rlch/beancomplete/filter"
)

// Extensions of files discovered inside configured bean directories.
var beanExtensions = []string{"beans", "yaml", "yml", "json"}

// Workspace is a loaded configuration with its registry.
type Workspace struct {
	Config   *beancomplete.Config
	Registry *beans.Registry
	Filter   *filter.Filter

	// Files are the bean description files the registry was built from.
	Files []string

	// root is the directory passed to Open; empty for workspaces built from a config.
	root   string
	logger *zap.Logger
}

// Open loads the workspace containing dir. Without a config file the defaults apply and
// .beans files are discovered under dir.
func Open(dir string, logger *zap.Logger) (*Workspace, error) {
	cfg, err := beancomplete.LoadConfig(dir)
	if errors.Is(err, beancomplete.ErrConfigNotFound) {
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return nil, absErr
		}

		cfg = &beancomplete.Config{Dir: abs}
	} else if err != nil {
		return nil, err
	}

	ws, err := FromConfig(cfg, logger)
	if err != nil {
		return nil, err
	}

	ws.root = dir

	return ws, nil
}

// FromConfig loads the workspace described by cfg.
func FromConfig(cfg *beancomplete.Config, logger *zap.Logger) (*Workspace, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	// Validate the matcher up front so a typo fails at load time.
	if _, err := cfg.Options(); err != nil {
		return nil, err
	}

	hide, err := filter.Compile(cfg.Hide, logger)
	if err != nil {
		return nil, err
	}

	files, err := BeanFiles(cfg)
	if err != nil {
		return nil, err
	}

	reg, err := beans.Load(logger, files...)
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded workspace",
		zap.String("dir", cfg.Dir),
		zap.Int("files", len(files)),
		zap.Int("types", reg.Len()))

	return &Workspace{
		Config:   cfg,
		Registry: reg,
		Filter:   hide,
		Files:    files,
		logger:   logger,
	}, nil
}

// Reload rebuilds the workspace. A workspace opened from a directory looks its config up
// again, so edited, created and deleted config files take effect; one built from a config
// keeps that config.
func (w *Workspace) Reload() (*Workspace, error) {
	if w.root != "" {
		return Open(w.root, w.logger)
	}

	return FromConfig(w.Config, w.logger)
}

// Options returns the Autocompleter options for a session backed by registry.
func (w *Workspace) Options() []beancomplete.Option {
	// The matcher was validated in FromConfig.
	opts, _ := w.Config.Options()

	if hide := w.Filter.Option(); hide != nil {
		opts = append(opts, hide)
	}

	return append(opts, beancomplete.WithLogger(w.logger))
}

// NewSession creates an Autocompleter over the workspace registry.
func (w *Workspace) NewSession() *beancomplete.Autocompleter {
	return beancomplete.New(w.Registry, w.Options()...)
}

// WatchDirs returns the directories whose changes affect the workspace: the config
// directory and every directory holding a bean file.
func (w *Workspace) WatchDirs() []string {
	dirs := []string{w.Config.Dir}
	for _, f := range w.Files {
		dirs = append(dirs, filepath.Dir(f))
	}

	slices.Sort(dirs)

	return slices.Compact(dirs)
}

// BeanFiles resolves the configured bean paths to files. Entries may be files, directories
// or glob patterns. With nothing configured, .beans files under the config directory are
// used.
func BeanFiles(cfg *beancomplete.Config) ([]string, error) {
	paths := cfg.BeanPaths()
	if len(paths) == 0 {
		if cfg.Dir == "" {
			return nil, nil
		}

		return walkDir(cfg.Dir, []string{"beans"})
	}

	var files []string

	for _, p := range paths {
		if strings.ContainsAny(p, "*?[") {
			matches, err := filepath.Glob(p)
			if err != nil {
				return nil, fmt.Errorf("bean pattern %q: %w", p, err)
			}

			files = append(files, matches...)

			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			files = append(files, p)

			continue
		}

		found, err := walkDir(p, beanExtensions)
		if err != nil {
			return nil, err
		}

		files = append(files, found...)
	}

	slices.Sort(files)

	return slices.Compact(files), nil
}

// walkDir lists files with the given extensions under root, respecting .gitignore and
// .ignore files.
func walkDir(root string, extensions []string) ([]string, error) {
	fileListQueue := make(chan *gocodewalker.File, 100)

	fileWalker := gocodewalker.NewFileWalker(root, fileListQueue)
	fileWalker.AllowListExtensions = extensions

	var walkErr error

	fileWalker.SetErrorHandler(func(e error) bool {
		walkErr = e

		return true
	})

	var (
		files []string
		wg    sync.WaitGroup
	)

	wg.Add(1)

	go func() {
		defer wg.Done()

		for f := range fileListQueue {
			files = append(files, f.Location)
		}
	}()

	err := fileWalker.Start()
	if err != nil {
		return nil, err
	}

	wg.Wait()

	slices.Sort(files)

	return files, walkErr
}
