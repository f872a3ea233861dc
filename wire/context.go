package wire

// RecursionLimit bounds how deep nested length-delimited frames may go
// before decoding fails. It protects against stack exhaustion on
// adversarially deep input and cannot be exceeded without an error.
const RecursionLimit = 100

// DecodeContext is passed by value to every merge function. It carries the
// remaining-recursion counter; create a fresh one per top-level decode call
// and derive child contexts with EnterRecursion when descending.
type DecodeContext struct {
	remaining int
}

// NewDecodeContext returns a context with the default recursion budget.
func NewDecodeContext() DecodeContext {
	return DecodeContext{remaining: RecursionLimit}
}

// EnterRecursion returns the decremented child context to use at the next
// nesting level. The caller keeps using its own context at the current level.
func (c DecodeContext) EnterRecursion() DecodeContext {
	return DecodeContext{remaining: c.remaining - 1}
}

// LimitReached returns a decode error once the recursion budget is spent.
// Check it once per nesting level before descending.
func (c DecodeContext) LimitReached() error {
	if c.remaining <= 0 {
		return errRecursionLimit()
	}
	return nil
}
