// Package risk turns a model's risk assessment of a diff into a score and
// reason.
package risk

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const promptTemplate = `You are a code reviewer bot. Analyze the following Git diff and do two things:
1. Estimate the risk score (from 1 to 10) of this change.
2. Explain the reasoning briefly.

### Git Diff:
%s

Return your answer in the following format:
Risk Score: <number>
Reason: <brief explanation>`

// Assessment is the parsed result of a risk completion. Score is -1 when
// the model's answer could not be parsed.
type Assessment struct {
	Score  int
	Reason string
}

// Prompt renders the risk instruction for a diff.
func Prompt(diffText string) string {
	return fmt.Sprintf(promptTemplate, diffText)
}

// Parse extracts the score and reason from the completion text. The model
// is asked for "Risk Score: <n>" and "Reason: <text>" lines; anything else
// degrades to Score -1 / Reason "Not parsed" rather than an error.
func Parse(completion string) Assessment {
	assessment := Assessment{Score: -1, Reason: "Not parsed"}

	for _, line := range strings.Split(completion, "\n") {
		if strings.Contains(line, "Risk Score") {
			if n, err := strconv.Atoi(digitsOf(line)); err == nil {
				assessment.Score = n
			}
		}
		if strings.Contains(line, "Reason") {
			if _, after, found := strings.Cut(line, "Reason:"); found {
				assessment.Reason = strings.TrimSpace(after)
			}
		}
	}

	return assessment
}

func digitsOf(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
