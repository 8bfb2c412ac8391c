package git

import "strings"

const (
	headMarker     = "<<<<<<< "
	separatorMark  = "======="
	incomingMarker = ">>>>>>> "
)

// ConflictRegion is one marker-delimited conflict inside a file. Lines are
// 1-indexed, StartLine pointing at the opening marker and EndLine at the
// closing one.
type ConflictRegion struct {
	StartLine      int
	EndLine        int
	HeadBranch     string
	IncomingBranch string
	HeadLines      []string
	IncomingLines  []string
}

type ConflictFile struct {
	Path    string
	Regions []ConflictRegion
}

type scanMode int

const (
	scanNormal scanMode = iota
	scanHead
	scanIncoming
)

// ScanConflicts parses file content into its conflict regions, in order of
// appearance. The scan is pure: the same content always yields the same
// regions.
//
// A region that never reaches its closing marker is dropped - an incomplete
// marker triple carries nothing to resolve. A second opening marker inside an
// open region is kept as ordinary content; the marker grammar does not nest.
func ScanConflicts(content string) []ConflictRegion {
	var regions []ConflictRegion
	var pending ConflictRegion
	mode := scanNormal

	for i, line := range strings.Split(content, "\n") {
		switch mode {
		case scanNormal:
			if strings.HasPrefix(line, headMarker) {
				pending = ConflictRegion{
					StartLine:  i + 1,
					HeadBranch: strings.TrimSpace(line[len(headMarker):]),
				}
				mode = scanHead
			}

		case scanHead:
			if strings.HasPrefix(line, separatorMark) {
				mode = scanIncoming
			} else {
				pending.HeadLines = append(pending.HeadLines, line)
			}

		case scanIncoming:
			if strings.HasPrefix(line, incomingMarker) {
				pending.IncomingBranch = strings.TrimSpace(line[len(incomingMarker):])
				pending.EndLine = i + 1
				regions = append(regions, pending)
				pending = ConflictRegion{}
				mode = scanNormal
			} else {
				pending.IncomingLines = append(pending.IncomingLines, line)
			}
		}
	}

	return regions
}

// ConflictedPaths filters short-format status lines down to the paths that
// are in an active unmerged state. Only UU (both modified) and AA (both
// added) qualify; those are the codes whose work-tree content carries
// conflict markers. Order of the input is preserved, duplicates are dropped.
func ConflictedPaths(statusLines []string) []string {
	var paths []string
	seen := make(map[string]bool)

	for _, line := range statusLines {
		if len(line) < 4 {
			continue
		}

		code := line[:2]
		if code != "UU" && code != "AA" {
			continue
		}

		path := strings.TrimSpace(line[2:])

		// Git quotes filenames with special characters - remove the quotes
		if strings.HasPrefix(path, "\"") && strings.HasSuffix(path, "\"") {
			path = path[1 : len(path)-1]
		}

		if path == "" || seen[path] {
			continue
		}
		seen[path] = true
		paths = append(paths, path)
	}

	return paths
}

// ConflictedFiles locates every conflicted path in the repository and scans
// each one. Files whose content cannot be read still appear in the result
// with zero regions; the inline read error shows up when the file content is
// displayed elsewhere.
func (repo *GitRepo) ConflictedFiles() []ConflictFile {
	var files []ConflictFile
	for _, path := range ConflictedPaths(repo.StatusLines()) {
		files = append(files, ConflictFile{
			Path:    path,
			Regions: ScanConflicts(repo.ReadFile(path)),
		})
	}
	return files
}
