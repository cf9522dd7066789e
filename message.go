// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

import "github.com/intuitivelabs/bytescase"

// BodyFraming identifies how a message's body is delimited (RFC 7230
// §3.3.3).
type BodyFraming uint8

const (
	BodyNone    BodyFraming = iota // no body allowed, Content-Length ignored
	BodyCLen                       // fixed size, from Content-Length
	BodyChunked                    // chunked transfer-coding
	BodyEOF                        // body runs until the connection closes
)

// Message holds the parsed head (first line + headers) and the body
// framing cached by Framing. The Parser does not fill in Body or
// LastChunk: body bytes reach the Acceptor only through OnMessage. The
// backing Container lives in the Parser, not copied into every message.
type Message struct {
	FL        FirstLine
	HL        HeaderBlock
	Body      View
	LastChunk Chunk

	framing      BodyFraming
	framingKnown bool
}

// Reset clears the message for reuse with a new parse.
func (m *Message) Reset() {
	m.FL.Reset()
	m.HL.Reset()
	m.Body.Reset()
	m.LastChunk.Reset()
	m.framing = BodyNone
	m.framingKnown = false
}

// Request reports whether the message is a request.
func (m *Message) Request() bool {
	return m.FL.Request()
}

// Method returns the request method, or MUndef for a response.
func (m *Message) Method() Method {
	if m.Request() {
		return m.FL.MethodNo
	}
	return MUndef
}

// ContentSize returns the parsed Content-Length value and whether a
// valid one was present.
func (m *Message) ContentSize() (int64, bool) {
	h := m.HL.FindType(HdrCLen)
	if h == nil {
		return 0, false
	}
	v, end, ok := decToU(h.Val.Get(), 0, h.Val.Len.Int())
	if !ok || end != h.Val.Len.Int() {
		return 0, false
	}
	return int64(v), true
}

// TrEncFlags returns the resolved Transfer-Encoding flags and whether
// "chunked" is the last (outermost, RFC 7230 §3.3.1) coding applied.
func (m *Message) TrEncFlags() (flags TrEncT, chunkedIsLast bool) {
	h := m.HL.FindType(HdrTrEncoding)
	if h == nil {
		return TrEncNone, false
	}
	toks := splitComma(h.Val.Get())
	flags = ParseTrEncValues(h.Val.Get())
	if len(toks) > 0 {
		chunkedIsLast = TrEncResolve(toks[len(toks)-1]) == TrEncChunkedF
	}
	return flags, chunkedIsLast
}

// UpgradeHeader returns the Upgrade header, or nil if absent.
func (m *Message) UpgradeHeader() *Header {
	return m.HL.FindType(HdrUpgrade)
}

// UpgradeProtocols resolves the Upgrade header's comma-joined tokens
// into a bitflag, or UProtoNone if no Upgrade header is present.
func (m *Message) UpgradeProtocols() UpgProtoT {
	h := m.UpgradeHeader()
	if h == nil {
		return UProtoNone
	}
	return ParseUpgradeValues(h.Val.Get())
}

// IsChunked reports whether the Transfer-Encoding header value is
// literally, byte-for-byte (case-insensitively) "chunked". TrEncFlags
// offers the fuller multi-token RFC 7230 resolution (coding lists,
// non-final chunked) for callers that need it; the Parser's core loop
// uses this simpler check.
func (m *Message) IsChunked() bool {
	h := m.HL.FindType(HdrTrEncoding)
	if h == nil {
		return false
	}
	return bytescase.CmpEq(h.Val.Get(), []byte("chunked"))
}

// BodyExists reports whether a body is present: a non-zero
// Content-Length, chunked transfer-encoding, or an Upgrade header paired
// with "Connection: upgrade". It is what the Parser's
// Headers→{Body,Finish} transition branches on.
func (m *Message) BodyExists() bool {
	if cl, ok := m.ContentSize(); ok && cl != 0 {
		return true
	}
	if m.IsChunked() {
		return true
	}
	if m.UpgradeHeader() != nil && m.connectionHasToken("upgrade") {
		return true
	}
	return false
}

// connectionHasToken reports whether the Connection header lists token
// (case-insensitively), e.g. "upgrade" or "close".
func (m *Message) connectionHasToken(token string) bool {
	h := m.HL.FindType(HdrConnection)
	if h == nil {
		return false
	}
	for _, t := range splitComma(h.Val.Get()) {
		if asciiEqualFold(t, token) {
			return true
		}
	}
	return false
}

// IsUpgrade reports whether the message negotiates a protocol upgrade:
// an Upgrade header plus "Connection: upgrade". When such a message has
// neither a Content-Length nor chunked framing, the Parser stays in its
// body state for it and reports every later byte through OnMessage with
// tail 0; otherwise its body is framed by those headers as usual.
func (m *Message) IsUpgrade() bool {
	return m.UpgradeHeader() != nil && m.connectionHasToken("upgrade")
}

// bodyAllowed reports whether RFC 7230 §3.3 permits this message to
// carry a body at all, independent of what framing header is present.
// prevMethod is the method of the request this message answers (for a
// response); pass MUndef if unknown.
func (m *Message) bodyAllowed(prevMethod Method) bool {
	if m.Request() {
		return true
	}
	st := m.FL.Status
	if (st > 99 && st < 200) || st == 204 || st == 304 {
		return false
	}
	if prevMethod == MHead {
		return false
	}
	return true
}

// Framing determines how the message body is delimited, following the
// teacher's PMsg.BodyType. prevMethod is the method of the request this
// response answers; pass MUndef for a request or when it is unknown.
func (m *Message) Framing(prevMethod Method) BodyFraming {
	if m.framingKnown {
		return m.framing
	}
	f := m.computeFraming(prevMethod)
	m.framing = f
	m.framingKnown = true
	return f
}

func (m *Message) computeFraming(prevMethod Method) BodyFraming {
	if !m.bodyAllowed(prevMethod) {
		return BodyNone
	}
	if !m.Request() && prevMethod == MConnect &&
		m.FL.Status >= 200 && m.FL.Status <= 299 {
		// successful CONNECT response: body is a tunnel, runs to EOF
		return BodyEOF
	}
	if _, chunkedIsLast := m.TrEncFlags(); m.HL.FindType(HdrTrEncoding) != nil {
		if chunkedIsLast {
			return BodyChunked
		}
		// Transfer-Encoding present but chunked isn't the final coding:
		// there is no reliable frame end other than connection close.
		return BodyEOF
	}
	if _, ok := m.ContentSize(); ok {
		return BodyCLen
	}
	if m.Request() {
		return BodyNone
	}
	return BodyEOF
}

// Int returns v as an int (OffsT is unsigned and narrower than int on
// every supported platform).
func (v OffsT) Int() int {
	return int(v)
}
