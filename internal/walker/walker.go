// Package walker converts a sampling policy into an ordered snapshot
// sequence and drives the shared working tree through it, checkout by
// checkout, with guaranteed restoration of the original head.
package walker

import (
	"errors"
	"fmt"
	"time"

	"github.com/archdrift/archdrift/internal/snapshot"
	"github.com/archdrift/archdrift/internal/vcs"
)

// ErrNoPrimaryBranch is returned when none of the candidate branches exist.
// Callers should report it and treat the run as producing zero snapshots.
var ErrNoPrimaryBranch = errors.New("no primary branch found")

// Frequency is the sampling frequency.
type Frequency string

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
)

// ParseFrequency validates a frequency flag value.
func ParseFrequency(s string) (Frequency, error) {
	switch Frequency(s) {
	case Weekly, Monthly:
		return Frequency(s), nil
	}
	return "", fmt.Errorf("invalid frequency %q (want weekly or monthly)", s)
}

// periodLength returns the sampling interval: one week, or ~30 days.
func (f Frequency) periodLength() time.Duration {
	if f == Weekly {
		return 7 * 24 * time.Hour
	}
	return 30 * 24 * time.Hour
}

// Walker resolves sampling dates to commits and sequences checkouts.
type Walker struct {
	repo     *vcs.Repo
	freq     Frequency
	periods  int
	branches []string
	now      func() time.Time
}

// Option configures a Walker.
type Option func(*Walker)

// WithBranches overrides the primary branch candidate list.
func WithBranches(branches []string) Option {
	return func(w *Walker) {
		if len(branches) > 0 {
			w.branches = branches
		}
	}
}

// WithNow overrides the clock (useful for testing).
func WithNow(now func() time.Time) Option {
	return func(w *Walker) {
		w.now = now
	}
}

// New creates a walker sampling `periods` intervals at the given frequency.
func New(repo *vcs.Repo, freq Frequency, periods int, opts ...Option) *Walker {
	w := &Walker{
		repo:     repo,
		freq:     freq,
		periods:  periods,
		branches: []string{"main", "master", "develop"},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// dates computes the N+1 sampling dates, oldest first, truncated to calendar
// days in UTC. Weekly sampling anchors on the Monday of the current week;
// monthly sampling anchors on "now".
func (w *Walker) dates() []time.Time {
	now := w.now().UTC()
	period := w.freq.periodLength()

	anchor := now
	if w.freq == Weekly {
		anchor = startOfWeek(now)
	}
	start := anchor.Add(-time.Duration(w.periods) * period)

	dates := make([]time.Time, 0, w.periods+1)
	for i := 0; i <= w.periods; i++ {
		dates = append(dates, truncateToDay(start.Add(time.Duration(i)*period)))
	}
	return dates
}

// Snapshots discovers the primary branch and resolves each sampling date to
// the latest commit at or before it. Dates with no resolvable commit are
// skipped, so the sequence may be shorter than periods+1. Snapshot dates are
// non-decreasing; adjacent snapshots may share a commit when a period saw no
// activity (one row per calendar period, deliberately not collapsed).
func (w *Walker) Snapshots() ([]snapshot.Snapshot, error) {
	branch, ok := w.repo.DiscoverBranch(w.branches)
	if !ok {
		return nil, ErrNoPrimaryBranch
	}

	var snaps []snapshot.Snapshot
	for _, date := range w.dates() {
		hash, err := w.repo.CommitAtOrBefore(branch, date)
		if err != nil {
			continue
		}
		snaps = append(snaps, snapshot.Snapshot{Date: date, Commit: hash})
	}
	return snaps, nil
}

// Walk resolves the snapshot sequence and invokes fn for each one with that
// snapshot's commit checked out. The original head is captured before the
// first checkout and restored exactly once on every exit path, including an
// error from fn. A checkout failure skips that snapshot; an error from fn
// aborts the remaining walk (restoration still runs).
func (w *Walker) Walk(fn func(snapshot.Snapshot) error) error {
	snaps, err := w.Snapshots()
	if err != nil {
		return err
	}
	return w.WalkSnapshots(snaps, fn)
}

// WalkSnapshots drives fn over an already-resolved snapshot sequence.
func (w *Walker) WalkSnapshots(snaps []snapshot.Snapshot, fn func(snapshot.Snapshot) error) (err error) {
	if len(snaps) == 0 {
		return nil
	}

	guard, err := w.repo.AcquireHead()
	if err != nil {
		return fmt.Errorf("capture original head: %w", err)
	}
	defer func() {
		if rerr := guard.Restore(); rerr != nil && err == nil {
			err = fmt.Errorf("restore original head: %w", rerr)
		}
	}()

	for _, snap := range snaps {
		if cerr := w.repo.Checkout(snap.Commit); cerr != nil {
			continue
		}
		if ferr := fn(snap); ferr != nil {
			return ferr
		}
	}
	return nil
}

// startOfWeek returns the Monday of the week containing t, at midnight.
func startOfWeek(t time.Time) time.Time {
	weekday := int(t.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	daysBack := weekday - 1 // Monday is 1
	return time.Date(t.Year(), t.Month(), t.Day()-daysBack, 0, 0, 0, 0, t.Location())
}

// truncateToDay floors t to midnight.
func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
