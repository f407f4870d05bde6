package gateway

import "sync/atomic"

// LoadingFlag is the shared "a remote call is in flight" indicator.
// It counts nested calls, so overlapping operations keep it raised until
// the last one finishes. A nil flag is valid and ignored.
type LoadingFlag struct {
	inFlight atomic.Int32
}

func (f *LoadingFlag) Start() {
	if f == nil {
		return
	}
	f.inFlight.Add(1)
}

func (f *LoadingFlag) Done() {
	if f == nil {
		return
	}
	f.inFlight.Add(-1)
}

func (f *LoadingFlag) Loading() bool {
	if f == nil {
		return false
	}
	return f.inFlight.Load() > 0
}

// Track raises the flag and returns the func lowering it.
//
//	defer gateway.Track(loading)()
func Track(f *LoadingFlag) func() {
	f.Start()
	return f.Done
}
