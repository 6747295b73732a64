package contract

import (
	"testing"

	"github.com/migcheck/migcheck/schema"
	"github.com/stretchr/testify/assert"
)

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		excludes []string
		want     bool
	}{
		{name: "no excludes", path: "src/app.py", excludes: nil, want: false},
		{name: "segment match", path: "a/node_modules/b.js", excludes: []string{"node_modules"}, want: true},
		{name: "segment is not substring", path: "my_node_modules_fork/b.js", excludes: []string{"node_modules"}, want: false},
		{name: "prefix match", path: "build/out.txt", excludes: []string{"build/"}, want: true},
		{name: "nested prefix match", path: "x/build/out.txt", excludes: []string{"build/"}, want: true},
		{name: "extension match", path: "app.min.js", excludes: []string{".min.js"}, want: true},
		{name: "glob on base", path: "static/app.min.js", excludes: []string{"*.min.js"}, want: true},
		{name: "glob miss", path: "static/app.js", excludes: []string{"*.min.js"}, want: false},
		{name: "empty pattern skipped", path: "a/b.py", excludes: []string{" ", ""}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldIgnore(tt.path, tt.excludes))
		})
	}
}

func TestTruncateLine(t *testing.T) {
	assert.Equal(t, "short", TruncateLine("  short  ", 40))
	assert.Equal(t, "aaaaa...", TruncateLine("aaaaaaaaaaaa", 8))
	// Widths of 3 or less disable truncation entirely.
	assert.Equal(t, "aaaaaaaaaaaa", TruncateLine("aaaaaaaaaaaa", 3))
}

func TestTruncatePath(t *testing.T) {
	assert.Equal(t, "a/b.py", TruncatePath("a/b.py", 40))
	assert.Equal(t, "...d/e/f.py", TruncatePath("a/b/c/d/e/f.py", 11))
}

func TestRelPath(t *testing.T) {
	assert.Equal(t, "scripts/run.sh", RelPath("/proj", "/proj/scripts/run.sh"))
	assert.Equal(t, "/other/run.sh", RelPath("/proj", "/other/run.sh"))
}

func TestParseBoolString(t *testing.T) {
	for _, s := range []string{"yes", "TRUE", "1"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.True(t, v)
	}
	for _, s := range []string{"no", "False", "0"} {
		v, err := ParseBoolString(s)
		assert.NoError(t, err)
		assert.False(t, v)
	}
	_, err := ParseBoolString("maybe")
	assert.Error(t, err)
}

func TestSeverityAndStatusLabels(t *testing.T) {
	// Plain variants must round-trip the enum text untouched.
	assert.Equal(t, "CRITICAL", SeverityLabel(schema.SeverityCritical, false))
	assert.Equal(t, "SKIP", StatusLabel(schema.StatusSkip, false))

	// Colored variants still contain the text.
	assert.Contains(t, SeverityLabel(schema.SeverityWarning, true), "WARNING")
	assert.Contains(t, StatusLabel(schema.StatusPass, true), "PASS")
}
