package git

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// shortHashLen is the number of leading characters of a full commit hash
// used as the log entry prefix.
const shortHashLen = 8

// runGit executes a git subcommand in dir and returns trimmed stdout.
// stderr is folded into the error so failures stay diagnosable.
func runGit(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("git %s failed: %w (%s)", args[0], err, msg)
		}
		return "", fmt.Errorf("git %s failed: %w", args[0], err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// LastCommitMessage returns the full message of the most recent commit in dir.
// Unlike LastCommitHash, failure here is an error: the default logging flow
// has nothing to send without a commit message.
func LastCommitMessage(dir string) (string, error) {
	msg, err := runGit(dir, "log", "-1", "--pretty=%B")
	if err != nil {
		return "", fmt.Errorf("failed to read last commit message (not a git repository, or no commits yet?): %w", err)
	}
	return msg, nil
}

// LastCommitHash returns the first 8 characters of the most recent commit
// hash, or "" when it cannot be determined. Callers must treat a missing
// hash as "omit the hash", never as a failure.
func LastCommitHash(dir string) string {
	hash, err := runGit(dir, "log", "-1", "--pretty=%H")
	if err != nil {
		return ""
	}
	if len(hash) > shortHashLen {
		hash = hash[:shortHashLen]
	}
	return hash
}

// IsRepository reports whether dir is inside a git work tree.
func IsRepository(dir string) bool {
	out, err := runGit(dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// HooksDir returns the absolute path of the repository's hooks directory,
// honoring core.hooksPath. The directory is not guaranteed to exist.
func HooksDir(dir string) (string, error) {
	out, err := runGit(dir, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", fmt.Errorf("failed to locate git hooks directory: %w", err)
	}
	if !filepath.IsAbs(out) {
		out = filepath.Join(dir, out)
	}
	return filepath.Clean(out), nil
}
