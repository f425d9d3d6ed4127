package catalog

import (
	"bytes"
	"encoding/json"
)

// Optional records whether a JSON field was present. An explicit null is
// treated the same as an absent field.
type Optional[T any] struct {
	Value T
	Set   bool
}

func Some[T any](v T) Optional[T] { return Optional[T]{Value: v, Set: true} }

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

func (o Optional[T]) Or(def T) T {
	if o.Set {
		return o.Value
	}
	return def
}

type TaskPatch struct {
	StatementA Optional[string] `json:"aussage1"`
	StatementB Optional[string] `json:"aussage2"`
	Solution   Optional[int]    `json:"loesung"`
	Feedback   Optional[string] `json:"feedback"`
}

func (p TaskPatch) Empty() bool {
	return !p.StatementA.Set && !p.StatementB.Set && !p.Solution.Set && !p.Feedback.Set
}

// MergeFields overlays the fields present in patch onto current.
func MergeFields(current Task, patch TaskPatch) Task {
	merged := current
	merged.StatementA = patch.StatementA.Or(current.StatementA)
	merged.StatementB = patch.StatementB.Or(current.StatementB)
	merged.Solution = patch.Solution.Or(current.Solution)
	merged.Feedback = patch.Feedback.Or(current.Feedback)
	return merged
}
