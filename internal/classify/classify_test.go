package classify

import (
	"strings"
	"testing"
)

func TestShouldGenerateEmbedding(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{
			name:    "empty",
			content: "",
			want:    false,
		},
		{
			name:    "whitespace only",
			content: "   \n\t  ",
			want:    false,
		},
		{
			name:    "too short",
			content: "short note",
			want:    false,
		},
		{
			name:    "long but too few words",
			content: "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa",
			want:    false,
		},
		{
			name:    "plain prose",
			content: "Met with the platform team to plan the storage migration for next quarter.",
			want:    true,
		},
		{
			name:    "markdown with enough prose",
			content: "# Plan\n\nMigrate the storage layer before the next release window opens.",
			want:    true,
		},
		{
			name:    "pure code block",
			content: "```go\nfunc main() {\n\tfmt.Println(\"hello world from a long program\")\n}\n```",
			want:    false,
		},
		{
			name:    "code with surrounding prose",
			content: "The retry helper below wraps the client call with exponential backoff.\n\n```go\nretry(fn)\n```",
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldGenerateEmbedding(tt.content); got != tt.want {
				t.Errorf("ShouldGenerateEmbedding(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestPrepareContentForEmbedding(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        string
		wantContain []string
		wantAbsent  []string
	}{
		{
			name:    "empty",
			content: "",
			want:    "",
		},
		{
			name:    "plain text passes through",
			content: "  just some prose  ",
			want:    "just some prose",
		},
		{
			name:        "heading markers stripped",
			content:     "# Weekly Sync\n\nDiscussed the launch.",
			wantContain: []string{"Weekly Sync", "Discussed the launch."},
			wantAbsent:  []string{"#"},
		},
		{
			name:        "bullets keep their text",
			content:     "- first item here\n- second item here",
			wantContain: []string{"first item here", "second item here"},
			wantAbsent:  []string{"- "},
		},
		{
			name:        "code fences dropped",
			content:     "Setup instructions follow.\n\n```bash\nmake install\n```",
			wantContain: []string{"Setup instructions follow."},
			wantAbsent:  []string{"make install", "```"},
		},
		{
			name:        "emphasis markers stripped",
			content:     "This is **really** important to *remember* today.",
			wantContain: []string{"really", "remember"},
			wantAbsent:  []string{"**", "*remember*"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PrepareContentForEmbedding(tt.content)
			if tt.want != "" || (len(tt.wantContain) == 0 && len(tt.wantAbsent) == 0) {
				if got != tt.want {
					t.Errorf("PrepareContentForEmbedding() = %q, want %q", got, tt.want)
				}
				return
			}
			for _, s := range tt.wantContain {
				if !strings.Contains(got, s) {
					t.Errorf("PrepareContentForEmbedding() = %q, missing %q", got, s)
				}
			}
			for _, s := range tt.wantAbsent {
				if strings.Contains(got, s) {
					t.Errorf("PrepareContentForEmbedding() = %q, should not contain %q", got, s)
				}
			}
		})
	}
}

func TestBuildEmbeddingInput(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		want    string
	}{
		{
			name:    "title and content",
			title:   "Launch plan",
			content: "Ship the beta on Friday.",
			want:    "Launch plan\n\nShip the beta on Friday.",
		},
		{
			name:    "title only",
			title:   "Launch plan",
			content: "",
			want:    "Launch plan",
		},
		{
			name:    "content only",
			title:   "  ",
			content: "Ship the beta on Friday.",
			want:    "Ship the beta on Friday.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildEmbeddingInput(tt.title, tt.content); got != tt.want {
				t.Errorf("BuildEmbeddingInput() = %q, want %q", got, tt.want)
			}
		})
	}
}
