package progress

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/codelearn-backend/internal/domain"
)

func pythonTopics() []TopicRef {
	out := make([]TopicRef, 0, 5)
	for i := 1; i <= 5; i++ {
		out = append(out, TopicRef{ID: fmt.Sprintf("py%d", i), Order: i})
	}
	return out
}

func statuses(results []Result) []Status {
	out := make([]Status, 0, len(results))
	for _, r := range results {
		out = append(out, r.Status)
	}
	return out
}

func TestComputeFreshUser(t *testing.T) {
	got := Compute(pythonTopics(), nil)
	assert.Equal(t, []Status{Available, Locked, Locked, Locked, Locked}, statuses(got))
}

func TestComputeAfterFirstCompletion(t *testing.T) {
	got := Compute(pythonTopics(), map[string]bool{"py1": true})
	assert.Equal(t, []Status{Completed, Available, Locked, Locked, Locked}, statuses(got))
}

func TestComputeOutOfOrderCompletion(t *testing.T) {
	got := Compute(pythonTopics(), map[string]bool{"py1": true, "py3": true})
	// py3 unlocks py4 even though py2 is still open.
	assert.Equal(t, []Status{Completed, Available, Completed, Available, Locked}, statuses(got))
}

func TestComputeUncompleteKeepsOwnRecords(t *testing.T) {
	// py1 was un-completed after py1 and py2 were done.
	got := Compute(pythonTopics(), map[string]bool{"py1": false, "py2": true})
	assert.Equal(t, []Status{Available, Completed, Available, Locked, Locked}, statuses(got))
}

func TestComputeSortsInputAndReturnsOnePerTopic(t *testing.T) {
	in := []TopicRef{{ID: "py3", Order: 3}, {ID: "py1", Order: 1}, {ID: "py2", Order: 2}}
	got := Compute(in, map[string]bool{"py1": true})

	require.Len(t, got, 3)
	for i, r := range got {
		assert.Equal(t, i+1, r.Order)
	}
	assert.Equal(t, "py3", in[0].ID, "input must not be reordered")
}

func TestComputeMonotonicUnlock(t *testing.T) {
	topics := pythonTopics()
	// Every subset of completions: the successor of a completed topic is never locked.
	for mask := 0; mask < 1<<len(topics); mask++ {
		done := map[string]bool{}
		for i, tp := range topics {
			if mask&(1<<i) != 0 {
				done[tp.ID] = true
			}
		}
		got := Compute(topics, done)
		require.Len(t, got, len(topics))
		for i := 0; i+1 < len(got); i++ {
			if done[got[i].TopicID] {
				assert.NotEqual(t, Locked, got[i+1].Status, "mask=%b idx=%d", mask, i+1)
			}
		}
	}
}

func TestComputeIsIdempotent(t *testing.T) {
	done := map[string]bool{"py1": true, "py2": true}
	assert.Equal(t, Compute(pythonTopics(), done), Compute(pythonTopics(), done))
}

func TestComputeEmptyCourse(t *testing.T) {
	assert.Empty(t, Compute(nil, map[string]bool{"x": true}))
}

func TestStatusOf(t *testing.T) {
	got := Compute(pythonTopics(), map[string]bool{"py1": true})
	s, ok := StatusOf(got, "py2")
	require.True(t, ok)
	assert.Equal(t, Available, s)

	_, ok = StatusOf(got, "nope")
	assert.False(t, ok)
}

func TestInitialStatusAndGuard(t *testing.T) {
	assert.Equal(t, Available, InitialStatus(1))
	assert.Equal(t, Locked, InitialStatus(2))

	assert.True(t, CanComplete(Available))
	assert.True(t, CanComplete(Completed))
	assert.False(t, CanComplete(Locked))
	assert.False(t, CanComplete(Status("bogus")))
}

func TestRefsAndCompletedSet(t *testing.T) {
	topics := []*types.Topic{{ID: "go1", Order: 1}, nil, {ID: "go2", Order: 2}}
	assert.Equal(t, []TopicRef{{ID: "go1", Order: 1}, {ID: "go2", Order: 2}}, Refs(topics))

	rows := []*types.TopicProgress{
		{TopicID: "go1", Completed: true},
		{TopicID: "go2", Completed: false},
		nil,
	}
	assert.Equal(t, map[string]bool{"go1": true}, CompletedSet(rows))
}
