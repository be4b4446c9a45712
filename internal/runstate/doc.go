// Package runstate holds the process-wide run state and the reconciler
// that keeps it in step with the persisted offline setting.
//
// The run state is a broadcast cell: one current value, any number of
// subscribers, and a fire-and-forget Broadcast that succeeds even when
// nobody is listening.
package runstate
