// Package diffsum prepares unified diffs for the summarization model and
// cleans up what comes back.
package diffsum

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/sourcegraph/go-diff/diff"
)

const summaryTemplate = "You are an expert code reviewer. In one clear, human sentence, explain the main purpose of this code change for a pull request summary. " +
	"Focus on what functionality or behavior is being added, removed, or changed. Avoid repeating code.\n" +
	"Code diff:\n%s"

// Clean strips git metadata from a unified diff and keeps only the
// added/removed code lines, with their sign and any leading comment hash
// removed. When nothing survives cleaning (or the diff does not parse), the
// raw text is returned so the model still has something to work with.
func Clean(diffText string) string {
	lines := cleanParsed(diffText)
	if lines == nil {
		lines = cleanLinewise(diffText)
	}

	cleaned := strings.Join(lines, "\n")
	if cleaned == "" {
		return diffText
	}
	return cleaned
}

func cleanParsed(diffText string) []string {
	fileDiffs, err := diff.NewMultiFileDiffReader(strings.NewReader(diffText)).ReadAllFiles()
	if err != nil || len(fileDiffs) == 0 {
		return nil
	}

	var lines []string
	for _, fd := range fileDiffs {
		for _, hunk := range fd.Hunks {
			for _, line := range strings.Split(string(hunk.Body), "\n") {
				if code, ok := changedCode(line); ok {
					lines = append(lines, code)
				}
			}
		}
	}
	return lines
}

// cleanLinewise is the fallback for text that is not a parseable unified
// diff: the same filter applied to every line directly.
func cleanLinewise(diffText string) []string {
	var lines []string
	for _, line := range strings.Split(diffText, "\n") {
		if strings.HasPrefix(line, "+++") || strings.HasPrefix(line, "---") {
			continue
		}
		if code, ok := changedCode(line); ok {
			lines = append(lines, code)
		}
	}
	return lines
}

func changedCode(line string) (string, bool) {
	if !strings.HasPrefix(line, "+") && !strings.HasPrefix(line, "-") {
		return "", false
	}

	code := strings.TrimSpace(line[1:])
	code = strings.TrimSpace(strings.TrimPrefix(code, "#"))
	return code, true
}

// SummaryPrompt wraps cleaned diff text in the reviewer instruction.
func SummaryPrompt(cleaned string) string {
	return fmt.Sprintf(summaryTemplate, cleaned)
}

// Polish tidies a model summary: immediately repeated words are collapsed
// (case-insensitively), whitespace runs become single spaces, and the first
// letter is capitalized.
func Polish(summary string) string {
	fields := strings.Fields(summary)

	var kept []string
	for _, word := range fields {
		if len(kept) > 0 && strings.EqualFold(kept[len(kept)-1], word) {
			continue
		}
		kept = append(kept, word)
	}

	out := strings.Join(kept, " ")
	if out == "" {
		return out
	}

	runes := []rune(out)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
