// Package llm holds the clients for the remote reasoning services. Every
// network call in the tool goes through one of the interfaces below so the
// detection core stays testable without a network.
package llm

import (
	"context"
	"fmt"

	"mergelens/internal/explain"
)

// Explainer produces a natural-language explanation for one conflict
// region. A single attempt, no retries; failures come back as *Failure.
type Explainer interface {
	Explain(ctx context.Context, req explain.Request) (string, error)
}

// Completer answers a free-form prompt with a single text completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Failure is a non-success response from a remote service, kept around so
// the report can show what actually came back.
type Failure struct {
	Status int
	Body   string
}

func (f *Failure) Error() string {
	return fmt.Sprintf("service failure (status %d): %s", f.Status, f.Body)
}
