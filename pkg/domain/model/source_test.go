package model_test

import (
	"testing"

	"github.com/tnylea/failwhale/pkg/domain/model"
)

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOwner string
		wantRepo  string
		wantOK    bool
	}{
		{
			name:      "Plain host path",
			input:     "github.com/tnylea/failwhale",
			wantOwner: "tnylea",
			wantRepo:  "failwhale",
			wantOK:    true,
		},
		{
			name:      "HTTPS scheme",
			input:     "https://github.com/a/b",
			wantOwner: "a",
			wantRepo:  "b",
			wantOK:    true,
		},
		{
			name:      "HTTP scheme",
			input:     "http://github.com/a/b",
			wantOwner: "a",
			wantRepo:  "b",
			wantOK:    true,
		},
		{
			name:      "Extra path segments ignored",
			input:     "https://github.com/a/b/actions/runs/12345",
			wantOwner: "a",
			wantRepo:  "b",
			wantOK:    true,
		},
		{
			name:      "Trailing slash after repo",
			input:     "https://github.com/a/b/",
			wantOwner: "a",
			wantRepo:  "b",
			wantOK:    true,
		},
		{
			name:      "Git suffix trimmed",
			input:     "https://github.com/a/b.git",
			wantOwner: "a",
			wantRepo:  "b",
			wantOK:    true,
		},
		{
			name:      "Uppercase host",
			input:     "https://GitHub.com/a/b",
			wantOwner: "a",
			wantRepo:  "b",
			wantOK:    true,
		},
		{
			name:   "Different host",
			input:  "https://gitlab.com/a/b",
			wantOK: false,
		},
		{
			name:   "Missing repo segment",
			input:  "https://github.com/a",
			wantOK: false,
		},
		{
			name:   "Empty repo segment",
			input:  "https://github.com/a/",
			wantOK: false,
		},
		{
			name:   "Empty owner segment",
			input:  "https://github.com//b",
			wantOK: false,
		},
		{
			name:   "Host only",
			input:  "https://github.com",
			wantOK: false,
		},
		{
			name:   "Empty string",
			input:  "",
			wantOK: false,
		},
		{
			name:   "Whitespace only",
			input:  "   ",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, ok := model.ParseRepoURL(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseRepoURL(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if !tt.wantOK {
				return
			}
			if ref.Owner != tt.wantOwner || ref.Repo != tt.wantRepo {
				t.Errorf("ParseRepoURL(%q) = %s/%s, want %s/%s",
					tt.input, ref.Owner, ref.Repo, tt.wantOwner, tt.wantRepo)
			}
		})
	}
}

func TestParseRepoURL_Idempotent(t *testing.T) {
	const input = "https://github.com/a/b/tree/main"

	first, ok1 := model.ParseRepoURL(input)
	second, ok2 := model.ParseRepoURL(input)

	if ok1 != ok2 || first != second {
		t.Errorf("ParseRepoURL not idempotent: (%v, %v) vs (%v, %v)", first, ok1, second, ok2)
	}
}

func TestRepoRefKey(t *testing.T) {
	ref := model.RepoRef{Owner: "a", Repo: "b"}
	if got := ref.Key(); got != "a/b" {
		t.Errorf("Key() = %q, want %q", got, "a/b")
	}
}
