package git

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanConflictsSingleRegion(t *testing.T) {
	content := strings.Join([]string{
		"<<<<<<< HEAD",
		"total = a + b",
		"=======",
		"total = a + b + tax",
		">>>>>>> feature",
	}, "\n")

	regions := ScanConflicts(content)
	require.Len(t, regions, 1)

	region := regions[0]
	assert.Equal(t, 1, region.StartLine)
	assert.Equal(t, 5, region.EndLine)
	assert.Equal(t, "HEAD", region.HeadBranch)
	assert.Equal(t, "feature", region.IncomingBranch)
	assert.Equal(t, []string{"total = a + b"}, region.HeadLines)
	assert.Equal(t, []string{"total = a + b + tax"}, region.IncomingLines)
}

func TestScanConflictsSurroundingContent(t *testing.T) {
	content := strings.Join([]string{
		"package main",
		"",
		"<<<<<<< HEAD",
		"var x = 1",
		"var y = 2",
		"=======",
		"var x = 10",
		">>>>>>> topic/rename",
		"",
		"func main() {}",
	}, "\n")

	regions := ScanConflicts(content)
	require.Len(t, regions, 1)

	region := regions[0]
	assert.Equal(t, 3, region.StartLine)
	assert.Equal(t, 8, region.EndLine)
	assert.Equal(t, "topic/rename", region.IncomingBranch)
	assert.Equal(t, []string{"var x = 1", "var y = 2"}, region.HeadLines)
	assert.Equal(t, []string{"var x = 10"}, region.IncomingLines)
}

func TestScanConflictsNoMarkers(t *testing.T) {
	content := "just\nordinary\ncontent\n"
	assert.Empty(t, ScanConflicts(content))
	assert.Empty(t, ScanConflicts(""))
}

func TestScanConflictsUnterminatedRegionDropped(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "open marker only",
			content: "<<<<<<< HEAD\nsome text\n",
		},
		{
			name:    "missing closing marker",
			content: "<<<<<<< HEAD\nours\n=======\ntheirs\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, ScanConflicts(tt.content))
		})
	}
}

func TestScanConflictsUnterminatedAfterCompleteRegion(t *testing.T) {
	content := strings.Join([]string{
		"<<<<<<< HEAD",
		"a",
		"=======",
		"b",
		">>>>>>> feature",
		"<<<<<<< HEAD",
		"dangling",
	}, "\n")

	regions := ScanConflicts(content)
	require.Len(t, regions, 1)
	assert.Equal(t, 1, regions[0].StartLine)
	assert.Equal(t, 5, regions[0].EndLine)
}

func TestScanConflictsNestedOpenerIsContent(t *testing.T) {
	content := strings.Join([]string{
		"<<<<<<< HEAD",
		"<<<<<<< inner",
		"=======",
		"theirs",
		">>>>>>> feature",
	}, "\n")

	regions := ScanConflicts(content)
	require.Len(t, regions, 1)
	assert.Equal(t, []string{"<<<<<<< inner"}, regions[0].HeadLines)
	assert.Equal(t, "feature", regions[0].IncomingBranch)
}

func TestScanConflictsAdjacentRegions(t *testing.T) {
	content := strings.Join([]string{
		"<<<<<<< HEAD",
		"first ours",
		"=======",
		"first theirs",
		">>>>>>> branch-a",
		"<<<<<<< HEAD",
		"second ours",
		"=======",
		"second theirs",
		">>>>>>> branch-b",
	}, "\n")

	regions := ScanConflicts(content)
	require.Len(t, regions, 2)

	assert.Equal(t, 1, regions[0].StartLine)
	assert.Equal(t, 5, regions[0].EndLine)
	assert.Equal(t, []string{"first ours"}, regions[0].HeadLines)
	assert.Equal(t, []string{"first theirs"}, regions[0].IncomingLines)
	assert.Equal(t, "branch-a", regions[0].IncomingBranch)

	assert.Equal(t, 6, regions[1].StartLine)
	assert.Equal(t, 10, regions[1].EndLine)
	assert.Equal(t, []string{"second ours"}, regions[1].HeadLines)
	assert.Equal(t, []string{"second theirs"}, regions[1].IncomingLines)
	assert.Equal(t, "branch-b", regions[1].IncomingBranch)

	assert.Less(t, regions[0].EndLine, regions[1].StartLine)
}

func TestScanConflictsIdempotent(t *testing.T) {
	content := "x\n<<<<<<< HEAD\nours\n=======\ntheirs\n>>>>>>> dev\ny\n"

	first := ScanConflicts(content)
	second := ScanConflicts(content)
	assert.Equal(t, first, second)
}

func TestConflictedPaths(t *testing.T) {
	lines := []string{
		"UU a.txt",
		"M  b.txt",
		"AA c.txt",
	}

	assert.Equal(t, []string{"a.txt", "c.txt"}, ConflictedPaths(lines))
}

func TestConflictedPathsEdgeCases(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  []string
	}{
		{
			name:  "empty status",
			lines: nil,
			want:  nil,
		},
		{
			name:  "no conflicts",
			lines: []string{"M  a.txt", "?? new.txt", "D  gone.txt"},
			want:  nil,
		},
		{
			name:  "quoted path",
			lines: []string{`UU "spaced name.txt"`},
			want:  []string{"spaced name.txt"},
		},
		{
			name:  "duplicate path kept once",
			lines: []string{"UU a.txt", "UU a.txt"},
			want:  []string{"a.txt"},
		},
		{
			name:  "short line ignored",
			lines: []string{"UU", ""},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConflictedPaths(tt.lines))
		})
	}
}
