// Package vcs wraps the git operations of the update cycle: refreshing
// remote state, comparing the tracked branch against its upstream, and
// integrating remote changes.
package vcs

import (
	"context"
	"fmt"

	"github.com/fastnear/benchrunner"
	"github.com/pkg/errors"
)

// Revision is a commit identifier.
type Revision string

// RevisionPair holds the local and upstream commit identifiers of the
// tracked branch, resolved once per run.
type RevisionPair struct {
	Local  Revision
	Remote Revision
}

// Synced reports whether the local checkout already matches its upstream.
func (p RevisionPair) Synced() bool { return p.Local != "" && p.Local == p.Remote }

// Repository is a local git checkout tracking a remote branch.
type Repository struct {
	runner benchrunner.ProcessRunner
	dir    string
	remote string
	branch string
}

func NewRepository(runner benchrunner.ProcessRunner, dir, remote, branch string) *Repository {
	return &Repository{
		runner: runner,
		dir:    dir,
		remote: remote,
		branch: branch,
	}
}

// Fetch refreshes remote revision metadata. Failure here (network, auth) is
// fatal to the cycle.
func (r *Repository) Fetch(ctx context.Context) error {
	err := r.runner.Run(ctx, benchrunner.RunOptions{
		Args: []string{"git", "fetch", r.remote},
		Dir:  r.dir,
	})
	return errors.Wrapf(err, "problem fetching from remote '%s'", r.remote)
}

// Revisions resolves the current local revision and the upstream revision of
// the tracked branch.
func (r *Repository) Revisions(ctx context.Context) (RevisionPair, error) {
	local, err := r.revParse(ctx, "HEAD")
	if err != nil {
		return RevisionPair{}, errors.Wrap(err, "problem resolving local revision")
	}

	remote, err := r.revParse(ctx, fmt.Sprintf("%s/%s", r.remote, r.branch))
	if err != nil {
		return RevisionPair{}, errors.Wrap(err, "problem resolving upstream revision")
	}

	return RevisionPair{Local: local, Remote: remote}, nil
}

// Pull integrates remote changes into the local branch. A merge conflict is
// fatal to the cycle.
func (r *Repository) Pull(ctx context.Context) error {
	err := r.runner.Run(ctx, benchrunner.RunOptions{
		Args: []string{"git", "pull", r.remote, r.branch},
		Dir:  r.dir,
	})
	return errors.Wrap(err, "problem pulling remote changes")
}

func (r *Repository) revParse(ctx context.Context, ref string) (Revision, error) {
	out, err := r.runner.RunOutput(ctx, benchrunner.RunOptions{
		Args: []string{"git", "rev-parse", ref},
		Dir:  r.dir,
	})
	if err != nil {
		return "", errors.Wrapf(err, "git rev-parse %s", ref)
	}
	return Revision(out), nil
}
