// Package progress derives per-user topic status from completion records.
//
// Nothing here touches storage. Callers load a course's topics and the user's
// TopicProgress rows, then ask Compute for the effective status of each topic.
package progress

import (
	"sort"

	types "github.com/yungbote/codelearn-backend/internal/domain"
)

type Status = types.TopicStatus

const (
	Locked    = types.TopicStatusLocked
	Available = types.TopicStatusAvailable
	Completed = types.TopicStatusCompleted
)

// TopicRef is the slice of a Topic the fold needs.
type TopicRef struct {
	ID    string
	Order int
}

type Result struct {
	TopicID string `json:"topicId"`
	Order   int    `json:"order"`
	Status  Status `json:"status"`
}

// Compute returns one Result per topic in ascending order.
//
// Walking the ordered topics with prev seeded true: a topic is completed if the
// user completed it, else available if prev is true, else locked. prev then
// becomes the topic's own completed flag, so a completed topic always makes its
// successor at least available, even when an earlier topic is still open.
func Compute(topics []TopicRef, completed map[string]bool) []Result {
	ordered := make([]TopicRef, len(topics))
	copy(ordered, topics)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Order != ordered[j].Order {
			return ordered[i].Order < ordered[j].Order
		}
		return ordered[i].ID < ordered[j].ID
	})

	out := make([]Result, 0, len(ordered))
	prev := true
	for _, t := range ordered {
		done := completed[t.ID]
		status := Locked
		switch {
		case done:
			status = Completed
		case prev:
			status = Available
		}
		out = append(out, Result{TopicID: t.ID, Order: t.Order, Status: status})
		prev = done
	}
	return out
}

func StatusOf(results []Result, topicID string) (Status, bool) {
	for _, r := range results {
		if r.TopicID == topicID {
			return r.Status, true
		}
	}
	return "", false
}

// InitialStatus is the status a topic starts with before anyone completes anything.
func InitialStatus(order int) Status {
	if order == 1 {
		return Available
	}
	return Locked
}

// CanComplete reports whether a topic in status s may be marked complete when
// completion is gated on unlock state.
func CanComplete(s Status) bool {
	return s == Available || s == Completed
}

func Refs(topics []*types.Topic) []TopicRef {
	out := make([]TopicRef, 0, len(topics))
	for _, t := range topics {
		if t == nil {
			continue
		}
		out = append(out, TopicRef{ID: t.ID, Order: t.Order})
	}
	return out
}

// CompletedSet indexes the completed rows by topic id. Rows with
// completed=false are present in storage but do not count.
func CompletedSet(rows []*types.TopicProgress) map[string]bool {
	out := make(map[string]bool, len(rows))
	for _, r := range rows {
		if r != nil && r.Completed {
			out[r.TopicID] = true
		}
	}
	return out
}
