// Package configservice resolves the svcparams workspace directory and
// opens the stores inside it.
package configservice

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"svcparams/internal/config"
	"svcparams/internal/config/yamlstore"
)

// ErrNoWorkspace is returned when no .svcparams directory can be found.
var ErrNoWorkspace = errors.New("no svcparams workspace found")

// ResolvePaths resolves the workspace paths.
// Discovery order: explicit path > SVCPARAMS_DIR env var > walk up from CWD
// (stopping at the git root).
func ResolvePaths(explicit string) (config.Paths, error) {
	if explicit != "" {
		return ResolveFromBase(explicit)
	}

	if envDir := os.Getenv(config.EnvDir); envDir != "" {
		return ResolveFromBase(envDir)
	}

	cwd, err := os.Getwd()
	if err != nil {
		return config.Paths{}, fmt.Errorf("cannot get current directory: %w", err)
	}

	dir, found, err := findWorkspaceUpward(cwd)
	if err != nil {
		return config.Paths{}, err
	}
	if !found {
		return config.Paths{}, missingWorkspaceErr(cwd)
	}
	return config.PathsFor(dir), nil
}

// ResolveFromBase resolves Paths from a known directory. The directory may
// be the .svcparams directory itself or its parent.
func ResolveFromBase(basePath string) (config.Paths, error) {
	dir, err := NormalizeDir(basePath)
	if err != nil {
		return config.Paths{}, err
	}

	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config.Paths{}, missingWorkspaceErr(basePath)
		}
		return config.Paths{}, fmt.Errorf("cannot access workspace %s: %w", dir, err)
	}
	if !info.IsDir() {
		return config.Paths{}, fmt.Errorf("workspace path is not a directory: %s", dir)
	}

	paths := config.PathsFor(dir)
	if _, err := os.Stat(paths.SettingsFile); err != nil {
		return config.Paths{}, missingWorkspaceErr(basePath)
	}
	return paths, nil
}

// NormalizeDir returns the absolute .svcparams directory for path.
func NormalizeDir(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	if filepath.Base(absPath) != config.DirName {
		absPath = filepath.Join(absPath, config.DirName)
	}
	return absPath, nil
}

// OpenSettings loads .env from the workspace, opens the settings store and
// applies environment overrides in memory.
func OpenSettings(paths config.Paths) (config.Store, error) {
	if err := config.LoadDotEnv(paths.Dir); err != nil {
		return nil, err
	}
	store, err := yamlstore.New(paths.SettingsFile)
	if err != nil {
		return nil, err
	}
	config.ApplyEnvOverrides(store)
	return store, nil
}

func missingWorkspaceErr(from string) error {
	return fmt.Errorf("%w (searched from %s); run 'svcparams init' first", ErrNoWorkspace, from)
}

// findWorkspaceUpward walks from start toward the filesystem root looking
// for .svcparams/settings.yaml. It stops at the git repository root (if
// inside a git repo) to avoid escaping the repo boundary.
func findWorkspaceUpward(start string) (string, bool, error) {
	gitRoot := FindGitRoot(start)

	dir := start
	for {
		candidate := filepath.Join(dir, config.DirName)
		settings := filepath.Join(candidate, config.SettingsFileName)
		if info, err := os.Stat(settings); err == nil && !info.IsDir() {
			return candidate, true, nil
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("checking settings: %w", err)
		}

		// Stop at git root boundary
		if gitRoot != "" && dir == gitRoot {
			return "", false, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

// FindGitRoot returns the git repository root for the given directory,
// or "" if not in a git repo. Uses file walk-up instead of a subprocess.
func FindGitRoot(startDir string) string {
	dir := startDir
	for {
		gitPath := filepath.Join(dir, ".git")
		if info, err := os.Stat(gitPath); err == nil {
			// .git can be a directory (normal repo) or a file (worktree)
			if info.IsDir() || info.Mode().IsRegular() {
				return dir
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
