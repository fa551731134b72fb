package core

import "testing"

func TestInputFrameOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionLeft)

	got := f.Actions()
	if len(got) != 2 || got[0] != ActionUp || got[1] != ActionLeft {
		t.Fatalf("Actions() = %v, expected [Up Left]", got)
	}
	if !f.Has(ActionLeft) || f.Has(ActionDown) {
		t.Error("Has() does not reflect recorded actions")
	}
}

func TestInputFrameCloneIsIndependent(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionPause) {
		t.Error("Clear() should drop actions")
	}
	if !clone.Has(ActionPause) {
		t.Error("clone should keep actions after the original is cleared")
	}
}

func TestActionString(t *testing.T) {
	if ActionRestart.String() != "Restart" {
		t.Errorf("ActionRestart.String() = %q", ActionRestart.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("unknown action should stringify as Unknown")
	}
}
