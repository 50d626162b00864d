package ast

// SetSpan annotates the node with the provided span.
func SetSpan(node Node, span Span) {
	if node == nil {
		return
	}
	if setter, ok := node.(interface{ setSpan(Span) }); ok {
		setter.setSpan(span)
	}
}

// At is a shorthand for spans that only carry a start position.
func At(line, column int) Span {
	pos := Position{Line: line, Column: column}
	return Span{Start: pos, End: pos}
}

// WithSpan sets the span and returns the node, for use in builders.
func WithSpan[T Node](node T, span Span) T {
	SetSpan(node, span)
	return node
}
