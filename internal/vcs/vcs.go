// Package vcs provides the version control operations the history walker
// relies on: branch discovery, date-bounded commit resolution, checkout and
// head capture/restore. All operations are safe to call repeatedly.
package vcs

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrNoCommit is returned when no commit exists at or before a cutoff date.
var ErrNoCommit = errors.New("no commit at or before date")

// Repo wraps a git repository and its working tree.
type Repo struct {
	repo *git.Repository
	path string
}

// Open opens the repository containing path, detecting .git in parents.
func Open(path string) (*Repo, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, err
	}
	return &Repo{repo: repo, path: path}, nil
}

// Path returns the path the repository was opened from.
func (r *Repo) Path() string {
	return r.path
}

// Head returns the hash of the currently checked-out commit.
func (r *Repo) Head() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", err
	}
	return head.Hash().String(), nil
}

// DiscoverBranch probes candidates in order and returns the first branch that
// exists in the repository.
func (r *Repo) DiscoverBranch(candidates []string) (string, bool) {
	for _, name := range candidates {
		ref := plumbing.NewBranchReferenceName(name)
		if _, err := r.repo.Reference(ref, true); err == nil {
			return name, true
		}
	}
	return "", false
}

// CommitAtOrBefore resolves the most recent commit on branch whose committer
// time is at or before cutoff. go-git iterates commits in graph order, not
// chronological order, so all reachable commits are examined and the latest
// qualifying one wins. Returns ErrNoCommit when the branch predates cutoff
// entirely.
func (r *Repo) CommitAtOrBefore(branch string, cutoff time.Time) (string, error) {
	ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(branch), true)
	if err != nil {
		return "", fmt.Errorf("resolve branch %s: %w", branch, err)
	}

	iter, err := r.repo.Log(&git.LogOptions{From: ref.Hash()})
	if err != nil {
		return "", err
	}
	defer iter.Close()

	var best *object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		when := c.Committer.When
		if when.After(cutoff) {
			return nil
		}
		if best == nil || when.After(best.Committer.When) {
			best = c
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	if best == nil {
		return "", ErrNoCommit
	}
	return best.Hash.String(), nil
}

// Checkout checks out the given commit into the working tree.
func (r *Repo) Checkout(hash string) error {
	wt, err := r.repo.Worktree()
	if err != nil {
		return err
	}
	return wt.Checkout(&git.CheckoutOptions{
		Hash: plumbing.NewHash(hash),
	})
}
