package tools

import "testing"

func TestGenerateTimeRangeSingleSlot(t *testing.T) {
	for _, c := range []Clock{{0, 0}, {9, 16}, {12, 0}, {23, 59}} {
		got := GenerateTimeRange(c.Hour, c.Minute, c.Hour, c.Minute)
		if len(got) != 1 || got[0] != c {
			t.Errorf("GenerateTimeRange(%v, %v) = %v, want [%v]", c, c, got, c)
		}
	}
}

func TestGenerateTimeRangeMorningSession(t *testing.T) {
	got := GenerateTimeRange(9, 16, 12, 0)
	if len(got) != 165 {
		t.Fatalf("len = %d, want 165", len(got))
	}
	if got[0] != (Clock{9, 16}) {
		t.Errorf("first = %v, want 09:16", got[0])
	}
	if got[len(got)-1] != (Clock{12, 0}) {
		t.Errorf("last = %v, want 12:00", got[len(got)-1])
	}
	for i := 1; i < len(got); i++ {
		prev := got[i-1].Hour*60 + got[i-1].Minute
		cur := got[i].Hour*60 + got[i].Minute
		if cur-prev != 1 {
			t.Fatalf("gap between %v and %v", got[i-1], got[i])
		}
	}
}

func TestGenerateTimeRangeWrapsMidnight(t *testing.T) {
	got := GenerateTimeRange(23, 50, 0, 10)
	if len(got) != 21 {
		t.Fatalf("len = %d, want 21", len(got))
	}
	if got[0] != (Clock{23, 50}) || got[len(got)-1] != (Clock{0, 10}) {
		t.Errorf("bounds = %v..%v, want 23:50..00:10", got[0], got[len(got)-1])
	}
	crossed := false
	for i, c := range got {
		if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
			t.Fatalf("slot %d out of range: %+v", i, c)
		}
		if c == (Clock{0, 0}) {
			crossed = true
		}
	}
	if !crossed {
		t.Error("sequence never crossed midnight")
	}
}

func TestClockString(t *testing.T) {
	tests := []struct {
		clock Clock
		want  string
	}{
		{Clock{9, 5}, "09:05"},
		{Clock{0, 0}, "00:00"},
		{Clock{12, 30}, "12:30"},
	}
	for _, tt := range tests {
		if got := tt.clock.String(); got != tt.want {
			t.Errorf("%+v.String() = %q, want %q", tt.clock, got, tt.want)
		}
	}
}

func TestSweepTuplesOrder(t *testing.T) {
	times := GenerateTimeRange(9, 16, 9, 17)
	got := SweepTuples(5, 7, times)
	want := []ParameterTuple{
		{5, 9, 16}, {5, 9, 17},
		{6, 9, 16}, {6, 9, 17},
		{7, 9, 16}, {7, 9, 17},
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("tuple %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSweepTuplesFullSweepSize(t *testing.T) {
	got := SweepTuples(5, 100, GenerateTimeRange(9, 16, 12, 0))
	if len(got) != 96*165 {
		t.Errorf("len = %d, want %d", len(got), 96*165)
	}
	if SweepTuples(7, 5, GenerateTimeRange(9, 16, 9, 17)) != nil {
		t.Error("empty SL range should produce no tuples")
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"09:16", Clock{9, 16}, false},
		{"9:16", Clock{9, 16}, false},
		{" 12:00 ", Clock{12, 0}, false},
		{"23:59", Clock{23, 59}, false},
		{"24:00", Clock{}, true},
		{"12:60", Clock{}, true},
		{"12:5", Clock{}, true},
		{"1200", Clock{}, true},
		{"ab:cd", Clock{}, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestValidateStopLossRange(t *testing.T) {
	if err := ValidateStopLossRange(5, 100); err != nil {
		t.Errorf("5..100: %v", err)
	}
	for _, r := range [][2]int{{0, 10}, {5, 101}, {10, 5}} {
		if err := ValidateStopLossRange(r[0], r[1]); err == nil {
			t.Errorf("%d..%d should be rejected", r[0], r[1])
		}
	}
}
