// Package apperr defines the error taxonomy of a pipeline run.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a run failure.
type Kind int

const (
	KindUnknown Kind = iota
	// KindConfigMissing means a required setting is absent. No network call is made.
	KindConfigMissing
	// KindNetwork covers fetch failures, non-2xx responses and unusable API replies.
	KindNetwork
	// KindJSONExtraction means the AI reply held no well-formed JSON object.
	// It is recovered locally and never aborts a run.
	KindJSONExtraction
)

func (k Kind) String() string {
	switch k {
	case KindConfigMissing:
		return "config_missing"
	case KindNetwork:
		return "network_or_api"
	case KindJSONExtraction:
		return "json_extraction"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Message is what the user sees; Err keeps the cause.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Status  int
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// ConfigMissing reports the settings that are absent.
func ConfigMissing(fields ...string) *Error {
	return &Error{
		Kind:    KindConfigMissing,
		Op:      "settings",
		Message: fmt.Sprintf("API 키를 먼저 설정해주세요. (누락: %s)", strings.Join(fields, ", ")),
	}
}

// Network wraps a transport failure of op.
func Network(op string, err error) *Error {
	return &Error{Kind: KindNetwork, Op: op, Err: err}
}

// API reports a non-2xx response or an unusable reply. message is the upstream
// message when one is available.
func API(op string, status int, message string) *Error {
	return &Error{Kind: KindNetwork, Op: op, Status: status, Message: message}
}

// JSONExtraction reports an AI reply without a parseable JSON object.
func JSONExtraction(err error) *Error {
	return &Error{Kind: KindJSONExtraction, Op: "extract analysis", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage renders err for a toast.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	switch {
	case e.Kind == KindConfigMissing:
		return e.Message
	case e.Message != "":
		return fmt.Sprintf("%s 오류: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s 오류: %v", e.Op, e.Err)
	default:
		return e.Op + " 오류"
	}
}
