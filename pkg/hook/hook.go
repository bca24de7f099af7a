// Package hook manages the git post-commit hook that logs every commit.
package hook

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/devlogdev/devlog/pkg/git"
)

// Marker identifies hooks written by this tool. Any post-commit hook
// containing it is treated as ours.
const Marker = "devlog"

// hookName is the git hook this tool manages.
const hookName = "post-commit"

// ErrForeignHook is returned when a post-commit hook exists that was not
// written by this tool. Foreign hooks are never overwritten or removed
// without an explicit force.
var ErrForeignHook = errors.New("existing post-commit hook was not installed by devlog")

// Script is the hook written into the git hooks directory. It exits
// silently when the devlog binary or configuration is absent, so plain
// git usage is never disturbed.
const Script = `#!/bin/sh
# devlog post-commit hook
# Sends each commit you make to your devlog.
# Remove this file or run 'devlog uninstall' to disable.

command -v devlog >/dev/null 2>&1 || exit 0
[ -f "${DEVLOG_CONFIG_PATH:-$HOME/.devlog/config.json}" ] || exit 0
exec devlog
`

// InstallResult reports what Install did.
type InstallResult struct {
	Path             string // hook file location
	BackupPath       string // set when an existing hook was backed up
	AlreadyInstalled bool   // existing hook already carries the marker; nothing was written
}

// Install writes the post-commit hook into dir's repository.
//
// An existing hook is never overwritten unless force is set: a hook
// carrying the Marker reports AlreadyInstalled and is left byte-for-byte
// untouched, anything else fails with ErrForeignHook. With force, the
// existing file is first copied to a .backup sibling.
func Install(dir string, force bool) (*InstallResult, error) {
	hookPath, err := resolveHookPath(dir)
	if err != nil {
		return nil, err
	}

	result := &InstallResult{Path: hookPath}

	existing, readErr := os.ReadFile(hookPath)
	switch {
	case readErr == nil && !force:
		if strings.Contains(string(existing), Marker) {
			result.AlreadyInstalled = true
			return result, nil
		}
		return nil, fmt.Errorf("%w (%s): merge it by hand, or rerun with --force to replace it (a backup will be kept)", ErrForeignHook, hookPath)
	case readErr == nil && force:
		backupPath, err := backupHook(hookPath, existing)
		if err != nil {
			return nil, err
		}
		result.BackupPath = backupPath
	case !os.IsNotExist(readErr):
		return nil, fmt.Errorf("failed to read existing hook: %w", readErr)
	}

	if err := os.WriteFile(hookPath, []byte(Script), 0755); err != nil {
		return nil, fmt.Errorf("failed to write hook: %w", err)
	}

	return result, nil
}

// UninstallResult reports what Uninstall did.
type UninstallResult struct {
	Path           string
	RestoredBackup bool // a .backup sibling was moved back into place
}

// Uninstall removes the post-commit hook when it carries the Marker,
// restoring a .backup sibling if one exists. Foreign hooks are refused.
func Uninstall(dir string) (*UninstallResult, error) {
	hookPath, err := resolveHookPath(dir)
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(hookPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no post-commit hook installed at %s", hookPath)
		}
		return nil, fmt.Errorf("failed to read hook: %w", err)
	}
	if !strings.Contains(string(content), Marker) {
		return nil, fmt.Errorf("%w (%s): refusing to remove it", ErrForeignHook, hookPath)
	}

	if err := os.Remove(hookPath); err != nil {
		return nil, fmt.Errorf("failed to remove hook: %w", err)
	}

	result := &UninstallResult{Path: hookPath}

	backupPath := hookPath + ".backup"
	if _, err := os.Stat(backupPath); err == nil {
		if err := os.Rename(backupPath, hookPath); err != nil {
			return nil, fmt.Errorf("failed to restore backed up hook: %w", err)
		}
		result.RestoredBackup = true
	}

	return result, nil
}

// Installed reports whether dir's repository has a marker-bearing
// post-commit hook. Errors count as not installed.
func Installed(dir string) bool {
	hookPath, err := resolveHookPath(dir)
	if err != nil {
		return false
	}
	content, err := os.ReadFile(hookPath)
	return err == nil && strings.Contains(string(content), Marker)
}

// resolveHookPath verifies dir is inside a repository with a hooks
// directory and returns the post-commit hook path.
func resolveHookPath(dir string) (string, error) {
	if !git.IsRepository(dir) {
		return "", fmt.Errorf("not a git repository: %s", dir)
	}

	hooksDir, err := git.HooksDir(dir)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(hooksDir)
	if err != nil {
		return "", fmt.Errorf("hooks directory does not exist (%s): %w", hooksDir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("hooks path is not a directory: %s", hooksDir)
	}

	return filepath.Join(hooksDir, hookName), nil
}

// backupHook copies the existing hook to a .backup sibling, preserving
// its mode, then removes the original.
func backupHook(hookPath string, content []byte) (string, error) {
	mode := os.FileMode(0755)
	if info, err := os.Stat(hookPath); err == nil {
		mode = info.Mode().Perm()
	}

	backupPath := hookPath + ".backup"
	if err := os.WriteFile(backupPath, content, mode); err != nil {
		return "", fmt.Errorf("failed to back up existing hook: %w", err)
	}
	if err := os.Remove(hookPath); err != nil {
		return "", fmt.Errorf("failed to remove existing hook: %w", err)
	}

	return backupPath, nil
}
