// Package testutil provides filesystem and git fixtures for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// WriteFile writes content to a file, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll(%s) error: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s) error: %v", path, err)
	}
}

// CreateFileTree creates multiple files from a map of path -> content.
func CreateFileTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		WriteFile(t, filepath.Join(root, name), content)
	}
}

// InitRepo initializes a git repository in a temp dir with the given default
// branch and returns its path and handle.
func InitRepo(t *testing.T, branch string) (string, *git.Repository) {
	t.Helper()
	path := t.TempDir()
	repo, err := git.PlainInitWithOptions(path, &git.PlainInitOptions{
		InitOptions: git.InitOptions{
			DefaultBranch: plumbing.NewBranchReferenceName(branch),
		},
	})
	if err != nil {
		t.Fatalf("PlainInit(%s) error: %v", path, err)
	}
	return path, repo
}

// CommitTree writes files into the worktree and commits them with the given
// author/committer timestamp, returning the commit hash.
func CommitTree(t *testing.T, repo *git.Repository, root, message string, when time.Time, files map[string]string) string {
	t.Helper()

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree error: %v", err)
	}

	for name, content := range files {
		WriteFile(t, filepath.Join(root, name), content)
		if _, err := wt.Add(name); err != nil {
			t.Fatalf("Add(%s) error: %v", name, err)
		}
	}

	sig := &object.Signature{
		Name:  "Test",
		Email: "test@example.com",
		When:  when,
	}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:    sig,
		Committer: sig,
	})
	if err != nil {
		t.Fatalf("Commit(%s) error: %v", message, err)
	}
	return hash.String()
}

// HeadHash returns the repository's current HEAD hash.
func HeadHash(t *testing.T, repo *git.Repository) string {
	t.Helper()
	head, err := repo.Head()
	if err != nil {
		t.Fatalf("Head error: %v", err)
	}
	return head.Hash().String()
}
