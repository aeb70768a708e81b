package models

import (
	"testing"

	"github.com/Lappanawat/flowmind-ranocturia/internal/timeslot"
)

func TestClassifyActivity(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Activity
	}{
		{name: "exact match", raw: "Daytime Void", want: DaytimeVoid},
		{name: "case insensitive", raw: "NIGHTTIME VOID", want: NighttimeVoid},
		{name: "bilingual label", raw: "ตื่นนอน (First Morning Void)", want: FirstMorningVoid},
		{name: "ocr noise around phrase", raw: "xx Bedtime Void |", want: BedtimeVoid},
		{name: "substring of longer text", raw: "the daytime void happened", want: DaytimeVoid},
		{name: "declaration order wins", raw: "Nighttime Void then Daytime Void", want: DaytimeVoid},
		{name: "no match", raw: "Morning Walk", want: ActivityUnknown},
		{name: "empty", raw: "", want: ActivityUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyActivity(tt.raw); got != tt.want {
				t.Errorf("ClassifyActivity(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseLeak(t *testing.T) {
	tests := []struct {
		in   string
		want Leak
	}{
		{"Y", LeakYes},
		{"y", LeakYes},
		{"yes", LeakYes},
		{"N", LeakNo},
		{" n ", LeakNo},
		{"None", LeakUnknown},
		{"", LeakUnknown},
		{"maybe", LeakUnknown},
	}
	for _, tt := range tests {
		if got := ParseLeak(tt.in); got != tt.want {
			t.Errorf("ParseLeak(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDayLogClone(t *testing.T) {
	demo := BuiltinDemoLog()
	clone := demo.Clone()
	clone[0].OutputML = 999
	if demo[0].OutputML == 999 {
		t.Fatal("Clone aliases the original slice")
	}
	var empty DayLog
	if empty.Clone() != nil {
		t.Error("Clone of nil log should stay nil")
	}
}

func TestBuiltinDemoLog(t *testing.T) {
	demo := BuiltinDemoLog()
	if len(demo) != 6 {
		t.Fatalf("demo log has %d rows, want 6", len(demo))
	}
	for i, e := range demo {
		if !e.HasTime() {
			t.Errorf("demo row %d has no time", i)
		}
		if !timeslot.OnGrid(e.Time) {
			t.Errorf("demo row %d time %d is off the slot grid", i, e.Time)
		}
	}
	if demo[5].Activity != NighttimeVoid || demo[5].Leak != LeakYes {
		t.Error("last demo row should be a leaking nighttime void")
	}
}

func TestChartConfigFallbacks(t *testing.T) {
	var cfg *ChartConfig
	if got := cfg.ActivityLabel(DaytimeVoid); got != "Daytime Void" {
		t.Errorf("nil config label = %q, want canonical name", got)
	}
	if len(cfg.DemoLog()) != len(BuiltinDemoLog()) {
		t.Error("nil config should fall back to the built-in demo")
	}

	cfg = &ChartConfig{
		ActivityLabels: map[string]string{"Daytime Void": "ปัสสาวะในระหว่างวัน (Daytime Void)"},
		Demo: []DemoRow{
			{Activity: "Daytime Void", Time: "08:00", IntakeML: 250, OutputML: 200, Leak: "N"},
			{Activity: "garbled", Time: "99:99", IntakeML: 0, OutputML: 0, Leak: "?"},
		},
	}
	if got := cfg.ActivityLabel(DaytimeVoid); got != "ปัสสาวะในระหว่างวัน (Daytime Void)" {
		t.Errorf("configured label = %q", got)
	}
	log := cfg.DemoLog()
	if len(log) != 2 {
		t.Fatalf("configured demo has %d rows, want 2", len(log))
	}
	if log[0].Time != 480 || log[0].Activity != DaytimeVoid {
		t.Errorf("first demo row parsed as %+v", log[0])
	}
	if log[1].HasTime() || log[1].Activity != ActivityUnknown || log[1].Leak != LeakUnknown {
		t.Errorf("malformed demo row should degrade, got %+v", log[1])
	}
}
