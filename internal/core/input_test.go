package core

import "testing"

func TestInputFrameMaskRoundTrip(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionLeft)
	f.Set(ActionRotate)
	f.Set(ActionHardDrop)

	back := FrameFromMask(f.Mask())
	for _, a := range []Action{ActionLeft, ActionRotate, ActionHardDrop} {
		if !back.Has(a) {
			t.Errorf("%v lost in mask round trip", a)
		}
	}
	if back.Has(ActionRight) || back.Has(ActionSoftDrop) {
		t.Error("round trip introduced actions that were not set")
	}
}

func TestInputFrameMaskSkipsPlatformActions(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionQuit)
	f.Set(ActionRestart)
	f.Set(ActionBack)

	if m := f.Mask(); m != 0 {
		t.Errorf("platform actions should not be recorded, mask = %b", m)
	}
	if f.Empty() {
		t.Error("frame with actions should not be empty")
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	c := f.Clone()
	f.Clear()

	if !f.Empty() {
		t.Error("Clear() should leave an empty frame")
	}
	if !c.Has(ActionPause) {
		t.Error("Clone() should be independent of the original")
	}

	var zero InputFrame
	if zero.Has(ActionLeft) || !zero.Empty() {
		t.Error("zero-value frame should behave as empty")
	}
}
