package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigMissing(t *testing.T) {
	err := ConfigMissing("gemini_key", "database_id")

	assert.Equal(t, KindConfigMissing, err.Kind)
	assert.Contains(t, err.Message, "gemini_key, database_id")
	assert.Equal(t, err.Message, UserMessage(err))
}

func TestKindOfWrapped(t *testing.T) {
	base := API("notion", 400, "body failed validation")
	wrapped := fmt.Errorf("upload: %w", base)

	assert.Equal(t, KindNetwork, KindOf(wrapped))
	assert.Equal(t, KindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"plain", errors.New("boom"), "boom"},
		{"api with message", API("notion", 401, "API token is invalid."), "notion 오류: API token is invalid."},
		{"network cause", Network("fetch source", errors.New("connection refused")), "fetch source 오류: connection refused"},
		{"bare", &Error{Kind: KindNetwork, Op: "gemini"}, "gemini 오류"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("eof")
	err := Network("fetch problem", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "fetch problem: eof", err.Error())
	assert.Equal(t, "network_or_api", err.Kind.String())
}
