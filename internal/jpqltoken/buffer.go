package jpqltoken

// Buffer is an ordered, unshared sequence of Tokens. Every walker visit
// returns its own Buffer; callers append it into their own.
// The mutations visit methods perform on a Buffer are Push, PushAll,
// Clip, ClipPath, NoSpace, Space, and setting a Token's exported
// Context field once,
// on return, to tag it with the producing grammar production.
type Buffer []Token

// Push appends tok to the buffer.
func (b *Buffer) Push(tok Token) {
	*b = append(*b, tok)
}

// PushAll appends every token of other to the buffer, in order.
func (b *Buffer) PushAll(other Buffer) {
	*b = append(*b, other...)
}

// Clip drops the last token, if any. Total: a no-op on an empty buffer.
func (b *Buffer) Clip() {
	if len(*b) == 0 {
		return
	}
	*b = (*b)[:len(*b)-1]
}

// NoSpace sets the last token's trailing policy to NoSpace, if any.
func (b *Buffer) NoSpace() {
	if len(*b) == 0 {
		return
	}
	(*b)[len(*b)-1].Trailing = NoSpace
}

// Space sets the last token's trailing policy to Space, if any.
func (b *Buffer) Space() {
	if len(*b) == 0 {
		return
	}
	(*b)[len(*b)-1].Trailing = Space
}

// Last returns the last token and true, or the zero Token and false if
// the buffer is empty.
func (b Buffer) Last() (Token, bool) {
	if len(b) == 0 {
		return Token{}, false
	}
	return b[len(b)-1], true
}

// ClipPath forces every token in b to NoSpace, then restores Space on
// the final token. This is the dotted-path whitespace rule: applied
// once by the walker after it finishes emitting a path-style
// production's tokens.
func (b Buffer) ClipPath() {
	for i := range b {
		b[i].Trailing = NoSpace
	}
	if len(b) > 0 {
		b[len(b)-1].Trailing = Space
	}
}
