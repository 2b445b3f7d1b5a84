// Package history keeps a bounded stack of transform snapshots for undo.
package history

import "sceneeditor/internal/scene"

const DefaultCapacity = 50

// Entry is the transform of one object before an edit.
type Entry struct {
	ObjectID  string
	Transform scene.Transform
}

type Stack struct {
	entries  []Entry
	capacity int
}

func New(capacity int) *Stack {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Stack{capacity: capacity}
}

// Push snapshots the current transform of obj. The oldest entry is dropped
// once the stack is full.
func (s *Stack) Push(obj scene.Transformable) {
	if obj == nil {
		return
	}
	s.push(Entry{ObjectID: obj.ID(), Transform: *obj.Transform()})
}

func (s *Stack) push(e Entry) {
	if len(s.entries) >= s.capacity {
		s.entries = s.entries[1:]
	}
	s.entries = append(s.entries, e)
}

func (s *Stack) Len() int { return len(s.entries) }

func (s *Stack) Clear() { s.entries = nil }

// Undo pops entries until one still resolves in sc, restores its transform
// and returns the object. Entries for disposed objects are discarded.
func (s *Stack) Undo(sc *scene.Scene) (scene.Transformable, bool) {
	for len(s.entries) > 0 {
		e := s.entries[len(s.entries)-1]
		s.entries = s.entries[:len(s.entries)-1]

		obj, ok := sc.Lookup(e.ObjectID).(scene.Transformable)
		if !ok {
			continue
		}
		*obj.Transform() = e.Transform
		return obj, true
	}
	return nil, false
}
