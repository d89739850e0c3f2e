package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"winehypo/domain/core"
)

func TestWrap_ClassifiesDomainSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{core.NewFileNotFoundError("missing.csv"), CodeNotFound},
		{core.NewColumnNotFoundError("pH", "wine.csv"), CodeNotFound},
		{core.ErrEmptySample, CodeInvalidInput},
		{core.NewDegenerateSampleError("zero variance"), CodeDegenerateStatistics},
		{core.NewOutputError("/nope/plot.png", stderrors.New("denied")), CodeOutputError},
		{stderrors.New("boom"), CodeInternalError},
	}

	for _, tc := range cases {
		wrapped := Wrap(tc.err, "stage failed")
		assert.Equal(t, tc.code, GetCode(wrapped), "for %v", tc.err)
		assert.ErrorIs(t, wrapped, tc.err)
	}
}

func TestWrap_PreservesInnerCode(t *testing.T) {
	inner := ConfigInvalid("ALPHA must be in (0, 1)")
	outer := Wrapf(inner, "loading %s", "config")

	assert.Equal(t, CodeConfigInvalid, GetCode(outer))
	assert.Equal(t, "loading config: ALPHA must be in (0, 1)", outer.Error())
	assert.True(t, IsAppError(outer))
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap(nil, "ignored"))
	assert.NoError(t, Wrapf(nil, "ignored %d", 1))
	assert.NoError(t, WithCode(CodeNotFound, nil))
}

func TestGetCode_PlainError(t *testing.T) {
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
	assert.Equal(t, CodeOutputError, GetCode(WithCode(CodeOutputError, stderrors.New("x"))))
}
