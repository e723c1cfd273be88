package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorFormatting(t *testing.T) {
	err := New(ErrCodeEmptyInput, "no text provided")
	assert.Equal(t, "[ANL_001] no text provided", err.Error())

	withDetail := err.WithDetail("content length 0")
	assert.Equal(t, "[ANL_001] no text provided: content length 0", withDetail.Error())
	// The original is untouched.
	assert.Equal(t, "[ANL_001] no text provided", err.Error())
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(cause, ErrCodeInternal, "failed to stage upload")

	require.NotNil(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ErrCodeInternal, GetCode(err))
}

func TestWrapNilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, ErrCodeInternal, "ignored"))
}

func TestIsCodeTraversesChains(t *testing.T) {
	inner := EmptyInput()
	outer := fmt.Errorf("handler: %w", inner)

	assert.True(t, IsCode(outer, ErrCodeEmptyInput))
	assert.False(t, IsCode(outer, ErrCodeNoFilePart))
	assert.False(t, IsCode(nil, ErrCodeEmptyInput))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, CodeOK, GetCode(nil))
	assert.Equal(t, ErrCodeInternal, GetCode(stderrors.New("plain")))
	assert.Equal(t, ErrCodeNoReadableText, GetCode(NoReadableText()))
}

func TestFactoriesCarryDefaultMessages(t *testing.T) {
	cases := []struct {
		err     *AppError
		code    ErrorCode
		message string
	}{
		{EmptyInput(), ErrCodeEmptyInput, "no text provided"},
		{NoFilePart(), ErrCodeNoFilePart, "no file part"},
		{OCRUnavailable(), ErrCodeOCRUnavailable, "OCR not available"},
		{NoReadableText(), ErrCodeNoReadableText, "no readable text found in file"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.Equal(t, tc.message, tc.err.Message)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatusForCode(ErrCodeEmptyInput))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusForCode(ErrCodeNoFilePart))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusForCode(ErrCodeOCRUnavailable))
	assert.Equal(t, http.StatusBadRequest, HTTPStatusForCode(ErrCodeNoReadableText))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode(ErrCodeInternal))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatusForCode(ErrorCode("UNKNOWN_999")))
}

func TestIsClientError(t *testing.T) {
	assert.True(t, IsClientError(ErrCodeEmptyInput))
	assert.False(t, IsClientError(ErrCodeInternal))
}

func TestStackIsCaptured(t *testing.T) {
	err := New(ErrCodeInternal, "boom")
	assert.Contains(t, err.Stack, "errors_test.go")
}
