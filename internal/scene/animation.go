package scene

import (
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type AnimationProperty string

const (
	AnimatePosition AnimationProperty = "position"
	AnimateRotation AnimationProperty = "rotation"
	AnimateScaling  AnimationProperty = "scaling"
)

type Key struct {
	Frame float32
	Value rl.Vector3
}

// KeyEvent is a side effect fired when playback crosses Frame (e.g. play a sound).
type KeyEvent struct {
	Frame  float32
	Name   string
	Target string
}

type Animation struct {
	Name            string
	Property        AnimationProperty
	FramesPerSecond int
	Keys            []Key
	Events          []KeyEvent
}

func NewAnimation(name string, property AnimationProperty, fps int) *Animation {
	return &Animation{Name: name, Property: property, FramesPerSecond: fps}
}

// SetKey inserts or replaces the key at frame, keeping keys ordered.
func (a *Animation) SetKey(frame float32, value rl.Vector3) {
	for i := range a.Keys {
		if a.Keys[i].Frame == frame {
			a.Keys[i].Value = value
			return
		}
	}
	a.Keys = append(a.Keys, Key{Frame: frame, Value: value})
	sort.Slice(a.Keys, func(i, j int) bool { return a.Keys[i].Frame < a.Keys[j].Frame })
}

func (a *Animation) MaxFrame() float32 {
	if len(a.Keys) == 0 {
		return 0
	}
	return a.Keys[len(a.Keys)-1].Frame
}

// Evaluate interpolates the animated value at frame, clamping outside the keys.
func (a *Animation) Evaluate(frame float32) (rl.Vector3, bool) {
	if len(a.Keys) == 0 {
		return rl.Vector3{}, false
	}
	if frame <= a.Keys[0].Frame {
		return a.Keys[0].Value, true
	}
	last := a.Keys[len(a.Keys)-1]
	if frame >= last.Frame {
		return last.Value, true
	}
	for i := 1; i < len(a.Keys); i++ {
		k0, k1 := a.Keys[i-1], a.Keys[i]
		if frame <= k1.Frame {
			t := (frame - k0.Frame) / (k1.Frame - k0.Frame)
			return rl.Vector3Lerp(k0.Value, k1.Value, t), true
		}
	}
	return last.Value, true
}

func (a *Animation) Clone() *Animation {
	c := *a
	c.Keys = append([]Key(nil), a.Keys...)
	c.Events = append([]KeyEvent(nil), a.Events...)
	return &c
}

// AnimationConfig is the scene-wide playback configuration.
type AnimationConfig struct {
	Speed           float32
	FramesPerSecond int
	AutoAnimate     []string
	From            float32
	To              float32
	Loop            bool
}

func DefaultAnimationConfig() AnimationConfig {
	return AnimationConfig{Speed: 1, FramesPerSecond: 24, Loop: true}
}

func applyAnimation(t *Transform, a *Animation, frame float32) {
	v, ok := a.Evaluate(frame)
	if !ok {
		return
	}
	switch a.Property {
	case AnimatePosition:
		t.Position = v
	case AnimateRotation:
		t.Rotation = v
	case AnimateScaling:
		t.Scaling = v
	}
}
