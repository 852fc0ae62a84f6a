package envutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDuration(t *testing.T) {
	t.Setenv("X_DUR_SECS", "90")
	t.Setenv("X_DUR_STR", "2m")
	t.Setenv("X_DUR_BAD", "soon")

	assert.Equal(t, 90*time.Second, Duration("X_DUR_SECS", time.Second))
	assert.Equal(t, 2*time.Minute, Duration("X_DUR_STR", time.Second))
	assert.Equal(t, time.Second, Duration("X_DUR_BAD", time.Second))
	assert.Equal(t, time.Second, Duration("X_DUR_UNSET", time.Second))
}

func TestBoolAndList(t *testing.T) {
	t.Setenv("X_BOOL", "on")
	t.Setenv("X_LIST", " a, ,b ")

	assert.True(t, Bool("X_BOOL", false))
	assert.True(t, Bool("X_BOOL_UNSET", true))
	assert.Equal(t, []string{"a", "b"}, List("X_LIST", nil))
	assert.Equal(t, []string{"z"}, List("X_LIST_UNSET", []string{"z"}))
}

func TestIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "12x")
	assert.Equal(t, 7, Int("X_INT", 7))
}
