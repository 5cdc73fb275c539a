package enhance

import "fmt"

// SubmissionError describes a failed enhancement request. StatusCode is zero
// when the request never produced an HTTP response.
type SubmissionError struct {
	StatusCode int
	Detail     string
	Err        error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		if e.Detail != "" {
			return fmt.Sprintf("enhancement service returned HTTP %d: %s", e.StatusCode, e.Detail)
		}
		return fmt.Sprintf("enhancement service returned HTTP %d", e.StatusCode)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "enhancement request failed"
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
