package tools

// ResultWatcher decides when the result view has settled after a run click.
//
// A view that changed from the pre-run snapshot settles once two consecutive
// polls read the same markup. A view identical to the snapshot settles only
// after unchangedPolls polls, since a run may legitimately reproduce the
// previous metrics.
type ResultWatcher struct {
	before         string
	last           string
	repeats        int
	unchangedPolls int
}

func NewResultWatcher(before string, unchangedPolls int) *ResultWatcher {
	if unchangedPolls < 1 {
		unchangedPolls = 1
	}
	return &ResultWatcher{before: before, unchangedPolls: unchangedPolls}
}

// Observe records one poll of the result view and reports whether it settled
func (w *ResultWatcher) Observe(view string) bool {
	if view == "" {
		w.last, w.repeats = "", 0
		return false
	}
	if view == w.last {
		w.repeats++
	} else {
		w.last, w.repeats = view, 0
	}

	if view != w.before {
		return w.repeats >= 1
	}
	return w.repeats+1 >= w.unchangedPolls
}
