package llm

import "fmt"

// ProviderError reports a failed remote completion call: network error,
// auth failure, rate limit, or a malformed response.
type ProviderError struct {
	Provider   string
	StatusCode int // 0 when no HTTP status was received
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s completion failed (status %d): %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s completion failed: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
