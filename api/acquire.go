package api

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

const githubPrefix = "https://github.com/"

// ErrInvalidGithubURL marks a github_url that doesn't meet the
// https://github.com/ prefix requirement — a 400 per §7, distinct from a
// clone that fails after the URL itself passed validation (a 500, since
// the request was well-formed but the acquisition step failed).
var ErrInvalidGithubURL = errors.New("api: github_url must begin with " + githubPrefix)

// CloneRepository shallow-clones a github_url into a fresh temp directory
// and returns its path plus a cleanup func, mirroring api.rs's use of
// `git clone --depth 1` to acquire a remote project before handing a local
// path to the core analyzer.
func CloneRepository(ctx context.Context, url string) (path string, cleanup func(), err error) {
	if !strings.HasPrefix(url, githubPrefix) {
		return "", nil, ErrInvalidGithubURL
	}

	dir, err := os.MkdirTemp("", "strata-clone-*")
	if err != nil {
		return "", nil, fmt.Errorf("api: create temp dir: %w", err)
	}
	cleanup = func() { os.RemoveAll(dir) }

	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", "clone", "--depth", "1", url, dir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("api: git clone %s: %w: %s", url, err, strings.TrimSpace(string(output)))
	}

	return dir, cleanup, nil
}
