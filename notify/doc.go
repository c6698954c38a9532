// Package notify provides synchronous, in-process fan-out of values to
// registered observers.
//
// A Broadcaster delivers each value to every subscribed Observer in
// subscription order on the caller's goroutine. A failing observer, whether it
// returns an error or panics, never prevents the remaining observers from
// being called:
//
//	b := notify.NewBroadcaster[int]()
//	sub := b.Subscribe(notify.ObserverFunc[int](func(v int) error {
//	    fmt.Println(v)
//	    return nil
//	}))
//	defer sub.Unsubscribe()
//
//	_ = b.Notify(42)
package notify
