package tools

import "testing"

func observeAll(w *ResultWatcher, views ...string) []bool {
	out := make([]bool, len(views))
	for i, v := range views {
		out[i] = w.Observe(v)
	}
	return out
}

func equalBools(a, b []bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestResultWatcher(t *testing.T) {
	tests := []struct {
		name   string
		before string
		polls  int
		views  []string
		want   []bool
	}{
		{
			name:   "new result needs two matching reads",
			before: "old",
			polls:  4,
			views:  []string{"new", "new"},
			want:   []bool{false, true},
		},
		{
			name:   "still rendering resets the count",
			before: "old",
			polls:  4,
			views:  []string{"partial", "new", "new"},
			want:   []bool{false, false, true},
		},
		{
			name:   "unchanged result waits the full window",
			before: "same",
			polls:  3,
			views:  []string{"same", "same", "same"},
			want:   []bool{false, false, true},
		},
		{
			name:   "previous run's cards are not taken for new results",
			before: "previous",
			polls:  4,
			views:  []string{"previous", "previous", "previous", "previous"},
			want:   []bool{false, false, false, true},
		},
		{
			name:   "empty view never settles",
			before: "",
			polls:  1,
			views:  []string{"", "", ""},
			want:   []bool{false, false, false},
		},
		{
			name:   "first result on a blank page",
			before: "",
			polls:  5,
			views:  []string{"", "r", "r"},
			want:   []bool{false, false, true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := observeAll(NewResultWatcher(tt.before, tt.polls), tt.views...)
			if !equalBools(got, tt.want) {
				t.Errorf("Observe = %v, want %v", got, tt.want)
			}
		})
	}
}
