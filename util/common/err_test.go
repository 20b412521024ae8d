package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine(nil, nil))

	e1 := errors.New("first")
	e2 := errors.New("second")
	err := Combine(e1, nil, e2)
	assert.ErrorIs(t, err, e1)
	assert.ErrorIs(t, err, e2)
}

func TestRecover(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("test job")
		panic("boom")
	})
}
