package clone

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/chime-experiment/mkchimeenv/internal/registry"
	"github.com/chime-experiment/mkchimeenv/internal/ui"
)

// DefaultJobs is how many repositories are cloned concurrently unless
// configured otherwise.
const DefaultJobs = 4

// Checkout pairs a repository with its local clone path.
type Checkout struct {
	Repo registry.Repository
	Path string
}

// CloneError reports which repository failed.
type CloneError struct {
	Repo string
	Err  error
}

func (e *CloneError) Error() string {
	return fmt.Sprintf("cloning %s: %v", e.Repo, e.Err)
}

func (e *CloneError) Unwrap() error { return e.Err }

// Coordinator clones registered repositories under a destination root,
// multiplexing per-repository progress onto a shared display.
type Coordinator struct {
	Jobs    int
	display *ui.Display
	git     gitClient
}

func New(display *ui.Display) *Coordinator {
	return &Coordinator{Jobs: DefaultJobs, display: display, git: execGit{}}
}

// CloneAll clones every repository into destRoot, at most Jobs at a time.
// The returned checkouts preserve the input order regardless of completion
// order. The first failure cancels the remaining clones.
func (c *Coordinator) CloneAll(ctx context.Context, repos []registry.Repository, destRoot string) ([]Checkout, error) {
	if err := ensureGit(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return nil, fmt.Errorf("creating %s: %w", destRoot, err)
	}

	jobs := c.Jobs
	if jobs < 1 {
		jobs = 1
	}

	// Each goroutine writes only its own slot, so the slice needs no lock.
	checkouts := make([]Checkout, len(repos))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, repo := range repos {
		g.Go(func() error {
			monitor := NewMonitor(c.display, ui.Label(i+1, len(repos)), repo.Name)
			dest := filepath.Join(destRoot, repo.Name)
			if err := c.git.clone(ctx, repo, dest, monitor.Update); err != nil {
				return &CloneError{Repo: repo.Name, Err: err}
			}
			checkouts[i] = Checkout{Repo: repo, Path: dest}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return checkouts, nil
}
