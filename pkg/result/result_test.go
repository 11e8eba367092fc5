package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResultBranches(t *testing.T) {
	ok := Ok[string](42)
	assert.True(t, ok.IsSuccess())
	assert.False(t, ok.IsFailure())

	v, present := ok.Success()
	assert.True(t, present)
	assert.Equal(t, 42, v)

	_, failed := ok.Failure()
	assert.False(t, failed)

	fail := Fail[string, int]("boom")
	assert.True(t, fail.IsFailure())
	assert.False(t, fail.IsSuccess())

	f, failed := fail.Failure()
	assert.True(t, failed)
	assert.Equal(t, "boom", f)

	_, present = fail.Success()
	assert.False(t, present)
}

func TestMap(t *testing.T) {
	doubled := Map(Ok[string](21), func(n int) int { return n * 2 })
	v, _ := doubled.Success()
	assert.Equal(t, 42, v)

	mapped := Map(Fail[string, int]("boom"), func(n int) int { return n * 2 })
	assert.True(t, mapped.IsFailure())
	f, _ := mapped.Failure()
	assert.Equal(t, "boom", f, "failure must pass through untouched")
}

func TestMapFailure(t *testing.T) {
	mapped := MapFailure(Fail[string, int]("boom"), func(s string) int { return len(s) })
	f, _ := mapped.Failure()
	assert.Equal(t, 4, f)

	passthrough := MapFailure(Ok[string](7), func(s string) int { return len(s) })
	v, _ := passthrough.Success()
	assert.Equal(t, 7, v)
}

func TestFold(t *testing.T) {
	onFailure := func(s string) string { return "failure:" + s }
	onSuccess := func(n int) string { return "success" }

	assert.Equal(t, "success", Fold(Ok[string](1), onFailure, onSuccess))
	assert.Equal(t, "failure:boom", Fold(Fail[string, int]("boom"), onFailure, onSuccess))
}
