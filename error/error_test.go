package error

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrammarSyntaxError_Error(t *testing.T) {
	tests := []struct {
		caption string
		err     *GrammarSyntaxError
		want    string
	}{
		{
			caption: "no line",
			err:     &GrammarSyntaxError{Cause: errors.New("boom")},
			want:    "error: boom",
		},
		{
			caption: "with line",
			err:     &GrammarSyntaxError{Cause: errors.New("boom"), Line: 3},
			want:    "line 3: error: boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestGrammarSyntaxError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := &GrammarSyntaxError{Cause: cause}
	assert.Same(t, cause, errors.Unwrap(err))
}

func TestGrammarSyntaxErrors_Error(t *testing.T) {
	errs := GrammarSyntaxErrors{
		&GrammarSyntaxError{Cause: errors.New("first")},
		&GrammarSyntaxError{Cause: errors.New("second"), Line: 2},
	}
	assert.Equal(t, "error: first\nline 2: error: second", errs.Error())
}
