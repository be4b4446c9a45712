package runstate

// Reconcile aligns sig with the persisted offline flag.
//
// Online with offline set moves to Offline; Offline with offline cleared
// moves to Online. Any other combination, including Initializing and
// ShuttingDown, is left alone. It reports the resulting state and whether
// a broadcast was sent.
func Reconcile(offline bool, sig Signal) (RunState, bool) {
	current := sig.Current()

	var next RunState
	switch {
	case offline && current == Online:
		next = Offline
	case !offline && current == Offline:
		next = Online
	default:
		return current, false
	}

	sig.Broadcast(next)
	return next, true
}
