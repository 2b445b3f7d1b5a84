package editor

import "sceneeditor/internal/event"

// Filter selects the events a subscription cares about.
type Filter func(ev event.Event) bool

// OnScene matches scene events of the given types, or every scene event when
// no type is given.
func OnScene(types ...event.SceneEventType) Filter {
	return func(ev event.Event) bool { return ev.IsScene(types...) }
}

// OnGUI matches GUI events of the given types, or every GUI event.
func OnGUI(types ...event.GUIEventType) Filter {
	return func(ev event.Event) bool { return ev.IsGUI(types...) }
}

// Any combines filters; the event passes when one of them matches.
func Any(filters ...Filter) Filter {
	return func(ev event.Event) bool {
		for _, f := range filters {
			if f(ev) {
				return true
			}
		}
		return false
	}
}

type subscription struct {
	filter Filter
	fn     func(ev event.Event)
}

func (s *subscription) OnEvent(ev event.Event) bool {
	if s.filter != nil && !s.filter(ev) {
		return false
	}
	s.fn(ev)
	return true
}

// Subscribe registers fn for the events accepted by filter (all events when
// filter is nil). The subscription takes part in dispatch order like any
// other receiver.
func (c *Core) Subscribe(filter Filter, fn func(ev event.Event)) Unregister {
	if fn == nil {
		return func() {}
	}
	return c.RegisterReceiver(&subscription{filter: filter, fn: fn})
}
