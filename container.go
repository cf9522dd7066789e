// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

// OffsT is the type used for offset and length used internally in View.
// A 32-bit width since a single parser instance here is expected to
// hold pipelined/streamed data rather than one small bounded message.
type OffsT uint32

// Container is a growable, append-only byte buffer. It is the backing
// store all Views reference by (offset, length) rather than by a raw
// byte slice, so that the buffer can grow (and the underlying Go slice
// reallocate) without invalidating any View created earlier: a View only
// ever dereferences through Container.Bytes() at read time, never caches
// a pointer into the old backing array.
type Container struct {
	buf []byte
}

// NewContainer creates an empty Container, optionally pre-sized.
func NewContainer(capacity int) *Container {
	return &Container{buf: make([]byte, 0, capacity)}
}

// Len returns the number of bytes currently held.
func (c *Container) Len() int {
	if c == nil {
		return 0
	}
	return len(c.buf)
}

// Bytes returns the full backing slice. Callers must not retain it past
// the next mutating call (Append/Resize/Reset), since growth may
// reallocate.
func (c *Container) Bytes() []byte {
	if c == nil {
		return nil
	}
	return c.buf
}

// Append adds p to the end of the container and returns the offset at
// which it was written.
func (c *Container) Append(p []byte) int {
	start := len(c.buf)
	c.buf = append(c.buf, p...)
	return start
}

// Grow extends the container by n zero bytes and returns the start
// offset of the new region, for zero-copy ingress: the caller writes
// directly into Container.Bytes()[offset:offset+n].
func (c *Container) Grow(n int) int {
	start := len(c.buf)
	for i := 0; i < n; i++ {
		c.buf = append(c.buf, 0)
	}
	return start
}

// Truncate shrinks the container to n bytes. n must be <= Len().
func (c *Container) Truncate(n int) {
	if n < 0 || n > len(c.buf) {
		panic("invalid range")
	}
	c.buf = c.buf[:n]
}

// Reset empties the container without releasing its backing array.
func (c *Container) Reset() {
	c.buf = c.buf[:0]
}

// ShiftLeft drops the first n bytes, sliding the remainder down to
// offset 0. Every View still referencing an offset into this container
// is invalidated by this call (offsets before n are gone; offsets at or
// past n now point n bytes too far to the right) -- it is only safe to
// call once every View the caller cares about has already been read.
// Parser uses it to bound memory growth once a message's bytes have
// all been delivered to the acceptor.
func (c *Container) ShiftLeft(n int) {
	if n <= 0 {
		return
	}
	if n >= len(c.buf) {
		c.buf = c.buf[:0]
		return
	}
	copy(c.buf, c.buf[n:])
	c.buf = c.buf[:len(c.buf)-n]
}

// CompactBody drops the consumed body bytes in [keep, dropEnd) while
// re-appending whatever arrived past dropEnd (the start of the next
// pipelined message, or a not-yet-complete tail of a streamed body)
// immediately after keep. Unlike ShiftLeft, every offset below keep is
// left untouched -- so Views into the head line and header block
// (already delivered via OnHead and still referenced by the Message for
// further OnMessage calls of the same streamed/chunked body) stay valid.
// Only the body region moves, and the Parser always resets its body View
// to (keep, 0) right after calling this.
func (c *Container) CompactBody(keep, dropEnd int) {
	if dropEnd >= len(c.buf) {
		c.buf = c.buf[:keep]
		return
	}
	tail := append([]byte(nil), c.buf[dropEnd:]...)
	c.buf = append(c.buf[:keep], tail...)
}

// View is a read-only window (offset, length) into a Container. It
// survives the container growing (reallocating its backing array)
// because it never stores a slice or pointer into the old array --
// only the container reference and an (offset, length) pair, resolved
// against the current backing array on every access.
type View struct {
	c    *Container
	Offs OffsT
	Len  OffsT
}

// NewView creates a View over [start,end) of c.
func NewView(c *Container, start, end int) View {
	var v View
	v.Set(c, start, end)
	return v
}

// Set assigns the view to [start,end) in c. end points one past the
// last included byte.
func (v *View) Set(c *Container, start, end int) {
	if end < start {
		panic("invalid range")
	}
	v.c = c
	v.Offs = OffsT(start)
	v.Len = OffsT(end - start)
}

// Reset clears the view to the empty value (keeping the container ref).
func (v *View) Reset() {
	v.Offs = 0
	v.Len = 0
}

// Extend grows the view's end to newEnd, keeping Offs fixed.
func (v *View) Extend(newEnd int) {
	if newEnd < int(v.Offs) {
		panic("invalid end offset")
	}
	v.Len = OffsT(newEnd) - v.Offs
}

// AdvanceToEnd sets the view's length to cover every byte currently in
// the container from Offs onward. It does not retroactively track
// future growth: call it again after the container grows if the view
// should keep covering "everything so far".
func (v *View) AdvanceToEnd() {
	if v.c == nil {
		return
	}
	n := v.c.Len()
	if int(v.Offs) > n {
		v.Len = 0
		return
	}
	v.Len = OffsT(n) - v.Offs
}

// Resize clamps the view's length to n, but never past the container's
// current end.
func (v *View) Resize(n int) {
	end := int(v.Offs) + n
	if v.c != nil && end > v.c.Len() {
		n = v.c.Len() - int(v.Offs)
		if n < 0 {
			n = 0
		}
	}
	v.Len = OffsT(n)
}

// Empty returns true if the view has zero length.
func (v View) Empty() bool {
	return v.Len == 0
}

// EndOffs returns the offset one past the view's last byte.
func (v View) EndOffs() int {
	return int(v.Offs) + int(v.Len)
}

// OffsIn returns true if offs falls inside [Offs, EndOffs()).
func (v View) OffsIn(offs int) bool {
	return offs >= int(v.Offs) && offs < v.EndOffs()
}

// Get returns the byte slice the view currently references. The slice
// aliases the container's backing array and must not be retained past
// the next mutating call on the container.
func (v View) Get() []byte {
	if v.c == nil || v.Len == 0 {
		return nil
	}
	b := v.c.Bytes()
	o := int(v.Offs)
	return b[o : o+int(v.Len)]
}

// Substr returns a new View starting p bytes into this view and
// extending to the container's current end (not this view's end).
func (v View) Substr(p int) View {
	start := int(v.Offs) + p
	ret := View{c: v.c, Offs: OffsT(start)}
	ret.AdvanceToEnd()
	return ret
}

// SubstrLen returns a new View starting p bytes into this view, with
// length l, clamped to the container's end.
func (v View) SubstrLen(p, l int) View {
	start := int(v.Offs) + p
	ret := View{c: v.c, Offs: OffsT(start)}
	ret.Resize(l)
	return ret
}

// Equal reports whether the view's bytes equal b, length then content.
func (v View) Equal(b []byte) bool {
	if int(v.Len) != len(b) {
		return false
	}
	return string(v.Get()) == string(b)
}

// String renders the view's bytes as a string. Allocates a copy.
func (v View) String() string {
	return string(v.Get())
}
