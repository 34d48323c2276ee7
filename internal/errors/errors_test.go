package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorIsMatchesCode(t *testing.T) {
	err := MissingRequiredField("model")

	assert.True(t, stderrors.Is(err, ErrMissingRequiredField))
	assert.False(t, stderrors.Is(err, ErrUnrecognizedField))
	assert.Equal(t, "the configuration must specify 'model'", err.Error())
}

func TestGetCodeUnwraps(t *testing.T) {
	base := UnrecognizedField("foo")
	wrapped := fmt.Errorf("building configuration: %w", base)

	assert.Equal(t, CodeUnrecognizedField, GetCode(wrapped))
	assert.True(t, IsAppError(wrapped))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}

func TestWrapKeepsCode(t *testing.T) {
	err := Wrap(New(CodeMalformedSource, "bad json"), "loading config.json")

	assert.Equal(t, CodeMalformedSource, GetCode(err))
	assert.Equal(t, "loading config.json: bad json", err.Error())
	assert.Nil(t, Wrap(nil, "ignored"))

	plain := Wrapf(stderrors.New("disk full"), "writing %s", "out.json")
	assert.Equal(t, CodeInternalError, GetCode(plain))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeSourceNotFound, stderrors.New("stat x.json: no such file"))

	assert.True(t, stderrors.Is(err, ErrSourceNotFound))
	assert.Contains(t, err.Error(), "no such file")
}
