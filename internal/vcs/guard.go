package vcs

// HeadGuard captures the original head commit before the working tree is
// mutated and restores it afterward. The working tree is a single shared
// resource; the guard is the scoped-acquisition/guaranteed-release discipline
// around it. Restore is idempotent and intended for use in a defer.
type HeadGuard struct {
	repo     *Repo
	head     string
	restored bool
}

// AcquireHead captures the current head. Failure here is fatal for callers:
// no checkout may happen without a known restore point.
func (r *Repo) AcquireHead() (*HeadGuard, error) {
	head, err := r.Head()
	if err != nil {
		return nil, err
	}
	return &HeadGuard{repo: r, head: head}, nil
}

// Head returns the captured original head hash.
func (g *HeadGuard) Head() string {
	return g.head
}

// Restore checks the original head back out. It runs at most once; later
// calls are no-ops.
func (g *HeadGuard) Restore() error {
	if g.restored {
		return nil
	}
	g.restored = true
	return g.repo.Checkout(g.head)
}
