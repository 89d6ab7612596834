package model

import (
	"strings"
	"time"
)

// repoHost is the only host monitored repositories may live on.
const repoHost = "github.com"

// Source is one monitored repository as persisted by the source store
type Source struct {
	URL     string    `json:"url"`
	AddedAt time.Time `json:"added"`
}

// RepoRef identifies a repository by its owner and name
type RepoRef struct {
	Owner string
	Repo  string
}

// Key returns the canonical "owner/repo" key used by the workflow tracker
func (r RepoRef) Key() string {
	return r.Owner + "/" + r.Repo
}

// ParseRepoURL extracts a repository reference from a user-supplied
// identifier. It accepts an optional scheme, requires the GitHub host and
// non-empty owner and repo segments, and ignores any trailing path segments.
// It returns false for anything else and never fails in another way.
func ParseRepoURL(raw string) (RepoRef, bool) {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "://"); i >= 0 {
		s = s[i+3:]
	}

	host, rest, found := strings.Cut(s, "/")
	if !found || !strings.EqualFold(host, repoHost) {
		return RepoRef{}, false
	}

	segs := strings.SplitN(rest, "/", 3)
	if len(segs) < 2 {
		return RepoRef{}, false
	}

	owner := segs[0]
	repo := strings.TrimSuffix(segs[1], ".git")
	if owner == "" || repo == "" {
		return RepoRef{}, false
	}

	return RepoRef{Owner: owner, Repo: repo}, true
}
