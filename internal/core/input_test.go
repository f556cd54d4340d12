package core

import (
	"reflect"
	"testing"
)

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	if f.Has(ActionConfirm) {
		t.Error("empty frame should have no actions")
	}

	f.Set(ActionConfirm)
	if !f.Has(ActionConfirm) {
		t.Error("Has(Confirm) = false after Set")
	}

	var zero InputFrame
	if zero.Has(ActionBack) {
		t.Error("zero frame should have no actions")
	}
	zero.Set(ActionBack)
	if !zero.Has(ActionBack) {
		t.Error("Set on zero frame should allocate")
	}
}

func TestInputFramePressImpliesHeld(t *testing.T) {
	f := NewInputFrame()
	f.Press("a")

	if !f.IsPressed("a") || !f.IsHeld("a") {
		t.Errorf("Press(a): pressed=%v held=%v, expected both true", f.IsPressed("a"), f.IsHeld("a"))
	}

	f.Hold("d")
	if f.IsPressed("d") {
		t.Error("Hold should not mark the key as pressed")
	}
}

func TestInputFramePressedKeysSorted(t *testing.T) {
	f := NewInputFrame()
	f.Press("w")
	f.Press("a")
	f.Press("space")

	got := f.PressedKeys()
	expected := []string{"a", "space", "w"}
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("PressedKeys() = %v, expected %v", got, expected)
	}
}

func TestInputFrameCloneIsDeep(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Press("up")
	f.Text = append(f.Text, 'x')

	c := f.Clone()
	f.Clear()

	if !c.Has(ActionUp) || !c.IsPressed("up") || string(c.Text) != "x" {
		t.Errorf("clone should survive Clear of the original: %+v", c)
	}
	if f.Has(ActionUp) || f.IsHeld("up") || len(f.Text) != 0 {
		t.Error("Clear should empty the frame")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		a        Action
		expected string
	}{
		{ActionConfirm, "Confirm"},
		{ActionDelete, "Delete"},
		{Action(99), "Unknown"},
	}
	for _, tc := range tests {
		if got := tc.a.String(); got != tc.expected {
			t.Errorf("String() = %q, expected %q", got, tc.expected)
		}
	}
}
