package notify

// Observer receives values published by a Broadcaster.
//
// Contract:
//   - Concurrency: OnNext is called synchronously on the publisher's goroutine.
//     Publishers that run concurrently may call it from several goroutines.
//   - Errors: a returned error is reported to the publisher and never stops
//     delivery to other observers.
type Observer[T any] interface {
	OnNext(value T) error
}

// ObserverFunc is an adapter to allow ordinary functions to be used as Observers.
type ObserverFunc[T any] func(value T) error

// OnNext calls f(value).
func (f ObserverFunc[T]) OnNext(value T) error {
	return f(value)
}
