// Package explain builds the structured prompt sent to the reasoning
// service for one conflict region. Building a request is a pure transform;
// nothing here touches the network.
package explain

import (
	"fmt"
	"strings"

	"mergelens/internal/git"
)

// Request is the payload handed to the reasoning service for one region.
type Request struct {
	Path           string
	StartLine      int
	EndLine        int
	HeadBranch     string
	IncomingBranch string
	Prompt         string
}

const promptTemplate = `You are an expert Git merge conflict resolver. Analyze this merge conflict and provide:
1. A clear explanation of what's conflicting
2. Why the conflict occurred
3. Suggestions for resolution

File: %s
Lines %d-%d

HEAD (%s) version:
%s

Incoming (%s) version:
%s

Provide a concise, actionable explanation.`

// BuildRequest renders the instruction template for a single conflict
// region.
func BuildRequest(region git.ConflictRegion, path string) Request {
	prompt := fmt.Sprintf(promptTemplate,
		path,
		region.StartLine, region.EndLine,
		region.HeadBranch, strings.Join(region.HeadLines, "\n"),
		region.IncomingBranch, strings.Join(region.IncomingLines, "\n"),
	)

	return Request{
		Path:           path,
		StartLine:      region.StartLine,
		EndLine:        region.EndLine,
		HeadBranch:     region.HeadBranch,
		IncomingBranch: region.IncomingBranch,
		Prompt:         prompt,
	}
}
