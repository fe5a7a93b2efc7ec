package summarizer

import "fmt"

// SummarizationError reports a failed synthesis call: the model was
// unreachable or returned an unusable (empty) response. It is fatal for the
// cycle; partial tool output is discarded rather than returned as a summary.
type SummarizationError struct {
	Cause error
}

func (e *SummarizationError) Error() string {
	return fmt.Sprintf("summarization failed: %v", e.Cause)
}

// Unwrap exposes the underlying cause for errors.Is / errors.As.
func (e *SummarizationError) Unwrap() error { return e.Cause }
