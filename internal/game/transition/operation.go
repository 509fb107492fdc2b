package transition

// Operation is the async outcome handle of a load or forced transition.
// Done is closed when the operation finishes; Err is valid afterwards, nil
// meaning the operation completed and applied its state.
type Operation struct {
	done chan struct{}
	err  error
}

func newOperation() *Operation {
	return &Operation{done: make(chan struct{})}
}

// completedOperation returns an operation that already finished, used for
// requests that resolve synchronously (rejections and diagnostic no-ops).
func completedOperation(err error) *Operation {
	op := newOperation()
	op.complete(err)
	return op
}

func (o *Operation) complete(err error) {
	o.err = err
	close(o.done)
}

// Done returns the completion channel.
func (o *Operation) Done() <-chan struct{} { return o.done }

// Err returns the outcome. Valid only after Done is closed.
func (o *Operation) Err() error { return o.err }

// Finished reports whether the operation already completed.
func (o *Operation) Finished() bool {
	select {
	case <-o.done:
		return true
	default:
		return false
	}
}
