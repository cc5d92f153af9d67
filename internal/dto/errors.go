package dto

import "fmt"

// ValidationError signals bad user input. It is the only error category
// surfaced to callers as a hard failure.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// SessionNotFoundError signals a lookup for an unknown session id
type SessionNotFoundError struct {
	SessionId string `json:"session_id"`
}

func (e *SessionNotFoundError) Error() string {
	return fmt.Sprintf("session %s not found", e.SessionId)
}

// SessionNotReadyError signals a generation request before the conversation
// has gathered enough context
type SessionNotReadyError struct {
	SessionId string `json:"session_id"`
	Phase     string `json:"phase"`
}

func (e *SessionNotReadyError) Error() string {
	return fmt.Sprintf("session %s is not ready for generation (phase %s)", e.SessionId, e.Phase)
}
