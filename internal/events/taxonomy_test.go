package events

import "testing"

func TestNormalizeKind(t *testing.T) {
	tests := []struct {
		in   string
		want Kind
		ok   bool
	}{
		{"drag-start", KindDragStarted, true},
		{"drag_start", KindDragStarted, true},
		{"dragStart", KindDragStarted, true},
		{"drag-started", KindDragStarted, true},
		{"dragmove", KindDragMoved, true},
		{"DRAG_END", KindDragEnded, true},
		{"select", KindSelectionChanged, true},
		{"selection-changed", KindSelectionChanged, true},
		{"drop", KindDrop, true},
		{"reorder", KindReorderIntent, true},
		{"hover", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeKind(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("NormalizeKind(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestIsValidKind(t *testing.T) {
	for k := range AllKinds() {
		if !IsValidKind(string(k)) {
			t.Errorf("IsValidKind(%q) = false", k)
		}
	}
	if IsValidKind("dragStart") {
		t.Error("non-canonical spelling should not be valid")
	}
}

func TestParseKinds(t *testing.T) {
	tests := []struct {
		in      string
		want    []Kind
		wantErr bool
	}{
		{in: "", want: nil},
		{in: "drop", want: []Kind{KindDrop}},
		{in: "drag-start, drop", want: []Kind{KindDragStarted, KindDrop}},
		{in: "reorder-intent,reorder,REORDER", want: []Kind{KindReorderIntent}},
		{in: "select,,dragEnd", want: []Kind{KindSelectionChanged, KindDragEnded}},
		{in: "drop,hover", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseKinds(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseKinds(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if len(got) != len(tt.want) {
			t.Errorf("ParseKinds(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("ParseKinds(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}

func TestPayloadKinds(t *testing.T) {
	tests := []struct {
		e    Event
		want Kind
	}{
		{Selection{ZoneID: "z"}, KindSelectionChanged},
		{Drag{ZoneID: "z", Phase: KindDragMoved}, KindDragMoved},
		{Drop{ZoneID: "z"}, KindDrop},
		{Reorder{ZoneID: "z"}, KindReorderIntent},
	}
	for _, tt := range tests {
		if tt.e.Kind() != tt.want {
			t.Errorf("%T.Kind() = %q, want %q", tt.e, tt.e.Kind(), tt.want)
		}
		if tt.e.Zone() != "z" {
			t.Errorf("%T.Zone() = %q, want z", tt.e, tt.e.Zone())
		}
	}

	if (Drop{}).External() {
		t.Error("drop without target zone should not be external")
	}
	if !(Drop{TargetZone: "b"}).External() {
		t.Error("drop with target zone should be external")
	}
}

func TestDispatcherFiltersByKind(t *testing.T) {
	var d Dispatcher
	var all, drops int

	d.Subscribe(func(Event) { all++ })
	unsub := d.Subscribe(func(Event) { drops++ }, KindDrop)

	d.Emit(Drop{})
	d.Emit(Reorder{})
	d.Emit(Drag{Phase: KindDragStarted})

	if all != 3 {
		t.Errorf("all = %d, want 3", all)
	}
	if drops != 1 {
		t.Errorf("drops = %d, want 1", drops)
	}

	unsub()
	d.Emit(Drop{})
	if drops != 1 {
		t.Errorf("drops after unsubscribe = %d, want 1", drops)
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}

func TestDispatcherUnsubscribeDuringEmit(t *testing.T) {
	var d Dispatcher
	calls := 0
	var unsub func()
	unsub = d.Subscribe(func(Event) {
		calls++
		unsub()
	})
	d.Subscribe(func(Event) { calls++ })

	d.Emit(Drop{})
	d.Emit(Drop{})
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestNilDispatcher(t *testing.T) {
	var d *Dispatcher
	d.Emit(Drop{})
	if d.Len() != 0 {
		t.Error("nil dispatcher should be empty")
	}
}
