package object

// ReturnSignal is the control-flow value that unwinds a `return`
// statement up to the nearest UserFunction.Call frame. It implements
// error solely so it can travel through the same (Value, error) plumbing
// as a genuine RuntimeError; UserFunction.Call is the only place that is
// allowed to observe and consume one. A ReturnSignal surfacing anywhere
// else (the top level, a block executed outside any call) indicates a
// resolver bug — `return` outside a function is a static error the
// resolver must have already rejected.
type ReturnSignal struct {
	Value Value
}

func (r *ReturnSignal) Error() string { return "return" }
