package gitops

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mywallet-dev/mywallet/internal/model"
)

// Author identifies who commits wallet changes.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Init initializes a new git repository at dir.
func Init(dir string) error {
	cmd := exec.Command("git", "init", "--quiet")
	cmd.Dir = dir
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// CommitAll stages all files and creates a commit. Returns the short commit hash.
func CommitAll(dir, message string, author Author) (string, error) {
	return CommitPaths(dir, message, author, "-A")
}

// CommitPaths stages the given paths (relative to dir) and commits them.
// Returns "" without committing when nothing is staged.
func CommitPaths(dir, message string, author Author, paths ...string) (string, error) {
	args := append([]string{"add"}, paths...)
	if out, err := git(dir, author, args...); err != nil {
		return "", fmt.Errorf("git add: %s: %w", out, err)
	}

	// diff --cached --quiet exits 1 when something is staged.
	if _, err := git(dir, author, "diff", "--cached", "--quiet"); err == nil {
		return "", nil
	}

	if out, err := git(dir, author, "commit", "--quiet", "-m", message, "--author", author.String()); err != nil {
		return "", fmt.Errorf("git commit: %s: %w", out, err)
	}

	out, err := git(dir, author, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

func git(dir string, author Author, args ...string) ([]byte, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME="+author.Name,
		"GIT_COMMITTER_EMAIL="+author.Email,
	)
	return cmd.CombinedOutput()
}

// IsRepo reports whether dir is inside a git repository.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// ImportMessage is the commit message for a merged import.
func ImportMessage(file string, domains []model.Domain) string {
	return fmt.Sprintf("import: %s from %s", joinDomains(domains), filepath.Base(file))
}

// PrefsMessage is the commit message for a preferences change.
func PrefsMessage(key string) string {
	if key == "" {
		return "prefs: reset all"
	}
	return "prefs: " + key
}

func joinDomains(domains []model.Domain) string {
	if len(domains) == 0 {
		return "nothing"
	}
	names := make([]string, len(domains))
	for i, d := range domains {
		names[i] = d.String()
	}
	return strings.Join(names, ", ")
}
