package timeslot

import "testing"

func TestSlots(t *testing.T) {
	slots := Slots()
	if len(slots) != 96 {
		t.Fatalf("expected 96 slots, got %d", len(slots))
	}
	if slots[0] != "00:00" {
		t.Errorf("first slot = %q, want 00:00", slots[0])
	}
	if slots[1] != "00:15" {
		t.Errorf("second slot = %q, want 00:15", slots[1])
	}
	if slots[95] != "23:45" {
		t.Errorf("last slot = %q, want 23:45", slots[95])
	}
	// The sequence must be restartable and identical every time.
	again := Slots()
	for i := range slots {
		if slots[i] != again[i] {
			t.Fatalf("slot %d differs between calls: %q vs %q", i, slots[i], again[i])
		}
	}
}

func TestToMinutes(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "00:00", want: 0},
		{in: "06:00", want: 360},
		{in: "22:00", want: 1320},
		{in: "23:45", want: 1425},
		{in: "23:59", want: 1439},
		{in: "09:37", want: 577}, // off the 15-minute grid, still a legal clock time
		{in: "24:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "-1:30", wantErr: true},
		{in: "1230", wantErr: true},
		{in: "12:30:00", wantErr: true},
		{in: "ab:cd", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ToMinutes(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ToMinutes(%q) = %d, want error", tt.in, got)
				}
				if _, ok := err.(*FormatError); !ok {
					t.Fatalf("ToMinutes(%q) error type %T, want *FormatError", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ToMinutes(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ToMinutes(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFromMinutesRoundTrip(t *testing.T) {
	for _, s := range Slots() {
		m, err := ToMinutes(s)
		if err != nil {
			t.Fatalf("slot %q failed to parse: %v", s, err)
		}
		if back := FromMinutes(m); back != s {
			t.Errorf("round trip %q -> %d -> %q", s, m, back)
		}
		if !OnGrid(m) {
			t.Errorf("slot %q (%d min) reported off grid", s, m)
		}
	}
	if OnGrid(577) {
		t.Error("577 minutes should be off grid")
	}
	if OnGrid(-15) || OnGrid(1440) {
		t.Error("out-of-day minutes should be off grid")
	}
}

func TestAddWrapping(t *testing.T) {
	tests := []struct {
		base, delta, want int
	}{
		{1320, -240, 1080}, // 22:00 minus 4h = 18:00
		{120, -240, 1320},  // 02:00 minus 4h wraps to 22:00
		{1425, 30, 15},     // 23:45 plus 30min wraps past midnight
		{0, -1440, 0},
		{0, -1, 1439},
		{360, 0, 360},
	}
	for _, tt := range tests {
		if got := AddWrapping(tt.base, tt.delta); got != tt.want {
			t.Errorf("AddWrapping(%d, %d) = %d, want %d", tt.base, tt.delta, got, tt.want)
		}
	}
}
