// Package tracking derives change sets from proposed writes and records them
// as activity entries inside the caller's transaction.
package tracking

import (
	"reflect"

	"github.com/devtrack/engine/internal/models"
)

// Change is one effective field modification.
type Change struct {
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

// Diff compares each field present in patch against current and returns the
// fields whose values differ, in patch order. Fields the set does not know
// about are skipped. current is not modified.
func Diff[T any](current *T, fields *FieldSet[T], patch *Patch) []Change {
	var changes []Change
	patch.Each(func(name string, proposed any) {
		f, ok := fields.Lookup(name)
		if !ok {
			return
		}
		old := f.Get(current)
		if !Equal(old, proposed) {
			changes = append(changes, Change{Field: name, Old: old, New: proposed})
		}
	})
	return changes
}

// Equal compares decoded values. String lists compare element-wise with nil
// equal to empty.
func Equal(a, b any) bool {
	la, aok := asList(a)
	lb, bok := asList(b)
	if aok && bok {
		return la.Equal(lb)
	}
	return reflect.DeepEqual(a, b)
}

func asList(v any) (models.StringList, bool) {
	switch l := v.(type) {
	case models.StringList:
		return l, true
	case []string:
		return models.StringList(l), true
	}
	return nil, false
}
