package migration

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kazz187/raketaskregistrar/pkg/cerr"
)

func TestSplitLinesRoundTrip(t *testing.T) {
	for _, content := range []string{emptyMigration, "no newline at end", "crlf\r\nlines\r\n", ""} {
		assert.Equal(t, content, strings.Join(SplitLines([]byte(content)), ""))
	}
}

func TestInsert(t *testing.T) {
	lines := SplitLines([]byte(emptyMigration))
	entries := []Entry{
		{Command: "rake a", Description: "d", Comment: ProvenanceComment},
		{Command: "rake b", Description: "d", Comment: ProvenanceComment},
	}

	got, err := Insert(lines, entries)
	require.NoError(t, err)

	want := strings.Replace(emptyMigration, "    tasks = [\n    ]\n",
		"    tasks = [\n"+entries[0].Render()+entries[1].Render()+"    ]\n", 1)
	if diff := cmp.Diff(want, strings.Join(got, "")); diff != "" {
		t.Errorf("Insert() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, emptyMigration, strings.Join(lines, ""), "input lines must not be modified")
}

func TestInsertAppendsAfterExistingEntries(t *testing.T) {
	first, err := Insert(SplitLines([]byte(emptyMigration)), []Entry{{Command: "rake first", Comment: ProvenanceComment}})
	require.NoError(t, err)
	second, err := Insert(first, []Entry{{Command: "rake second", Comment: ProvenanceComment}})
	require.NoError(t, err)

	out := strings.Join(second, "")
	assert.Less(t, strings.Index(out, "rake first"), strings.Index(out, "rake second"))
	assert.Equal(t, 2, strings.Count(out, "nohup: false"))
}

func TestInsertPreservesUntouchedBytes(t *testing.T) {
	content := "# custom header  \r\nclass X\n  def change\n\ttasks   =   [ # keep\n  ]   \n  # trailing ] \nend"
	got, err := Insert(SplitLines([]byte(content)), []Entry{{Command: "rake x"}})
	require.NoError(t, err)

	out := strings.Join(got, "")
	before, after, ok := strings.Cut(out, Entry{Command: "rake x"}.Render())
	require.True(t, ok)
	assert.Equal(t, "# custom header  \r\nclass X\n  def change\n\ttasks   =   [ # keep\n", before)
	assert.Equal(t, "  ]   \n  # trailing ] \nend", after)
}

func TestInsertStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing tasks array",
			content: "class X\n  def change\n  end\nend\n",
		},
		{
			name:    "missing closing bracket",
			content: "class X\n  def change\n    tasks = [\n      {},\n  end\nend\n",
		},
		{
			name:    "closing bracket only before opening",
			content: "]\nclass X\n    tasks = [\nend\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Insert(SplitLines([]byte(tt.content)), []Entry{{Command: "rake x"}})
			require.Error(t, err)
			assert.True(t, cerr.IsCode(err, cerr.FailedPrecondition))
		})
	}
}
