package planeshift

// BeginTransaction opens a transaction. Transactions nest: only the
// outermost one talks to the backend, and all changes made until the
// matching EndTransaction are committed together.
func (c *LayerContext) BeginTransaction() {
	c.checkOpen("BeginTransaction")
	if c.level == 0 {
		c.promise = NewPromise[struct{}]()
		c.backend.BeginTransaction()
	}
	c.level++
}

// EndTransaction closes the innermost transaction and returns the promise
// of the outermost one.
//
// When the outermost transaction closes, the backend commits and resolves
// the promise once the changes reach the display. Returning from
// EndTransaction does not imply presentation. It panics if no transaction
// is open.
func (c *LayerContext) EndTransaction() *Promise[struct{}] {
	c.checkOpen("EndTransaction")
	if c.level == 0 {
		panic("planeshift: EndTransaction without BeginTransaction")
	}
	c.level--
	if c.level > 0 {
		return c.promise
	}
	c.backend.EndTransaction(c.promise, c.Components())
	return c.promise
}

// TransactionPromise returns the promise of the open transaction, or of
// the most recent one. Before the first transaction it is resolved.
func (c *LayerContext) TransactionPromise() *Promise[struct{}] {
	return c.promise
}

// InTransaction reports whether a transaction is open.
func (c *LayerContext) InTransaction() bool {
	return c.level > 0
}

// TransactionLevel returns the transaction nesting depth.
func (c *LayerContext) TransactionLevel() int {
	return c.level
}
