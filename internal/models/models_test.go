package models

import (
	"testing"
)

// TestIsValidKind tests kind validation
func TestIsValidKind(t *testing.T) {
	for _, k := range []ItemKind{"", KindItem, KindContainer} {
		if !IsValidKind(k) {
			t.Errorf("Expected %q to be valid kind", k)
		}
	}
	for _, k := range []ItemKind{"folder", "Item", "group"} {
		if IsValidKind(k) {
			t.Errorf("Expected %q to be invalid kind", k)
		}
	}
}

func TestIsContainer(t *testing.T) {
	if (Item{ID: "a"}).IsContainer() {
		t.Error("item without kind should not be a container")
	}
	if !(Item{ID: "b", Kind: KindContainer}).IsContainer() {
		t.Error("container kind should be a container")
	}
}

func TestIndexOf(t *testing.T) {
	items := []Item{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	if got := IndexOf(items, "b"); got != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", got)
	}
	if got := IndexOf(items, "zz"); got != -1 {
		t.Errorf("IndexOf(zz) = %d, want -1", got)
	}
	if !ContainsID(items, "c") || ContainsID(items, "d") {
		t.Error("ContainsID mismatch")
	}

	ids := IDs(items)
	if len(ids) != 3 || ids[0] != "a" || ids[2] != "c" {
		t.Errorf("IDs = %v", ids)
	}
}

func TestAcceptFuncNilAccepts(t *testing.T) {
	var f AcceptFunc
	if !f.Accepts([]Item{{ID: "a"}}) {
		t.Error("nil AcceptFunc should accept")
	}

	none := AcceptFunc(func([]Item) bool { return false })
	if none.Accepts(nil) {
		t.Error("rejecting AcceptFunc should reject")
	}
}

func TestButtonString(t *testing.T) {
	tests := []struct {
		b    Button
		want string
	}{
		{ButtonNone, "none"},
		{ButtonLeft, "left"},
		{ButtonMiddle, "middle"},
		{ButtonRight, "right"},
	}
	for _, tt := range tests {
		if got := tt.b.String(); got != tt.want {
			t.Errorf("Button(%d).String() = %q, want %q", tt.b, got, tt.want)
		}
	}
}
