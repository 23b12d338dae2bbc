package command

import (
	"encoding/json"
	"testing"
	"time"

	"groundhog/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContext(t *testing.T) {
	before := time.Now()
	ctx := NewContext("explain")
	assert.Equal(t, "explain", ctx.Name)
	assert.Empty(t, ctx.Input)
	assert.False(t, ctx.Start.Before(before))

	ctx = ctx.WithInput("rust")
	assert.Equal(t, "rust", ctx.Input)

	time.Sleep(2 * time.Millisecond)
	assert.GreaterOrEqual(t, ctx.Elapsed(), 2*time.Millisecond)
	assert.NotNil(t, ctx.Logger())
}

func TestContextFinish(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		ctx := &Context{Name: "explain", Start: time.Now().Add(-150 * time.Millisecond)}
		r := ctx.Finish(nil)
		assert.True(t, r.IsSuccess())
		assert.Empty(t, r.Message)
		assert.GreaterOrEqual(t, r.DurationMS, int64(150))
	})

	t.Run("success carries the outcome", func(t *testing.T) {
		ctx := NewContext("explain").WithOutcome("explained topic 'rust'")
		r := ctx.Finish(nil)
		assert.True(t, r.IsSuccess())
		assert.Equal(t, "explained topic 'rust'", r.Message)
	})

	t.Run("failure ignores the outcome", func(t *testing.T) {
		ctx := NewContext("explain").WithOutcome("explained topic 'rust'")
		r := ctx.Finish(errors.NewExecutionFailed("explain", nil))
		assert.True(t, r.IsFailure())
		assert.NotEqual(t, "explained topic 'rust'", r.Message)
	})

	t.Run("failure uses the user message", func(t *testing.T) {
		ctx := NewContext("frob")
		r := ctx.Finish(errors.NewCommandNotFound("frob"))
		assert.True(t, r.IsFailure())
		assert.Equal(t, errors.UserMessage(errors.NewCommandNotFound("frob")), r.Message)
	})
}

func TestResult(t *testing.T) {
	r := Success()
	assert.True(t, r.IsSuccess())
	assert.False(t, r.IsFailure())
	assert.Empty(t, r.Message)
	assert.Zero(t, r.DurationMS)

	r = SuccessWithMessage("Operation completed")
	assert.True(t, r.IsSuccess())
	assert.Equal(t, "Operation completed", r.Message)

	r = Failure("Something went wrong")
	assert.True(t, r.IsFailure())
	assert.Equal(t, "Something went wrong", r.Message)

	assert.Equal(t, int64(150), Success().WithDuration(150*time.Millisecond+900*time.Microsecond).DurationMS)
}

func TestResultJSON(t *testing.T) {
	data, err := json.Marshal(Failure("boom").WithDuration(100 * time.Millisecond))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"message":"boom","duration_ms":100}`, string(data))

	data, err = json.Marshal(Success())
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"duration_ms":0}`, string(data))
}
