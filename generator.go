// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

import (
	"strconv"
)

// genState tracks the three-way body-writing mode a Generator can be
// in: a plain sized body, the first call of a chunked body, and every
// chunked call after that.
type genState uint8

const (
	genSimple genState = iota
	genChunked
	genChunkedProgress
)

// Generator builds a well-formed HTTP/1.1 request or status line plus
// header block, then a body in either sized or chunked framing,
// appending everything into a caller-supplied []byte. There is no
// parsing/container coupling here: a Generator is a pure
// byte-appending builder with a fluent method()/uri()/header()/body()
// chain.
type Generator struct {
	method Method
	head   []byte // rendered start-line (+ Host, for Uri), built eagerly by Uri/Response

	headers [][2]string
	state   genState
}

// NewGenerator creates an empty Generator defaulting to method GET.
func NewGenerator() *Generator {
	return &Generator{method: MGet}
}

// Method sets the method written by a later Uri call. Call it before
// Uri, since Uri renders the request line using the method current at
// the time it is called.
func (g *Generator) Method(m Method) *Generator {
	g.method = m
	return g
}

// Uri parses uri via ParseURI and immediately renders the request line
// -- "METHOD SP request-target SP HTTP/1.1 CRLF", followed by
// "Host: <host> CRLF" when the URI carried an authority -- discarding
// any start-line buffered by an earlier Uri or Response call.
// ErrHdrURIParse is returned (and the Generator left unmodified) for an
// empty uri.
func (g *Generator) Uri(uri []byte) (*Generator, ErrorHdr) {
	if len(uri) == 0 {
		return g, ErrHdrURIParse
	}
	u, err := ParseURI(uri)
	if err != ErrHdrOk {
		return g, err
	}
	head := make([]byte, 0, len(uri)+32)
	head = append(head, g.method.Name()...)
	head = append(head, ' ')
	head = append(head, u.Request()...)
	head = append(head, " HTTP/1.1\r\n"...)
	if len(u.Host) > 0 {
		head = append(head, "Host: "...)
		head = append(head, u.Host...)
		head = append(head, "\r\n"...)
	}
	g.head = head
	return g, ErrHdrOk
}

// Response starts a status line with the given status code and reason
// phrase, marking the generator as building a response. status must be
// in [100,999]; ErrHdrInvalidStatusCode is returned otherwise.
func (g *Generator) Response(status uint16, reason string) (*Generator, ErrorHdr) {
	if status < 100 || status > 999 {
		return g, ErrHdrInvalidStatusCode
	}
	head := make([]byte, 0, len(reason)+16)
	head = append(head, "HTTP/1.1 "...)
	head = strconv.AppendUint(head, uint64(status), 10)
	head = append(head, ' ')
	head = append(head, reason...)
	head = append(head, "\r\n"...)
	g.head = head
	return g, ErrHdrOk
}

// Header appends one header field, writing exactly what's given: no
// normalization, no folding, no de-duplication against earlier calls
// (generation is explicit, the caller owns correctness -- the symmetric
// opposite of the parser's lenient acceptance).
func (g *Generator) Header(name, value string) *Generator {
	g.headers = append(g.headers, [2]string{name, value})
	return g
}

// Chunked marks the generator to produce a chunked body: it appends a
// "Transfer-Encoding: chunked" header and switches Body into
// chunk-framing mode.
func (g *Generator) Chunked() *Generator {
	return g.MakeChunked()
}

// MakeChunked is an alias for Chunked.
func (g *Generator) MakeChunked() *Generator {
	g.headers = append(g.headers, [2]string{"Transfer-Encoding", "chunked"})
	g.state = genChunked
	return g
}

// headBlock renders the request/status line and every header added so
// far, plus the blank line ending the header block. It is called once,
// by the first Body call.
func (g *Generator) headBlock(dst []byte) []byte {
	dst = append(dst, g.head...)
	for _, h := range g.headers {
		dst = append(dst, h[0]...)
		dst = append(dst, ':', ' ')
		dst = append(dst, h[1]...)
		dst = append(dst, "\r\n"...)
	}
	dst = append(dst, "\r\n"...)
	return dst
}

// Body renders the head block (on the first call only) followed by
// body, and returns the result appended to dst (pass nil to allocate a
// fresh slice). In chunked mode every call after the first writes one
// chunk frame; an empty body on that first chunked call produces a body
// with no chunk-frame at all (headers only, ready for more Body calls),
// while an empty body on a later call emits the terminal "0\r\n\r\n"
// chunk, ending the message: two CRLFs, the zero-size chunk's own
// terminator plus the empty trailer block's blank line -- the form
// this package's own ParseChunk needs to finish a chunked body.
func (g *Generator) Body(body []byte) []byte {
	return g.appendBody(nil, body)
}

// BodyReserve behaves like Body but appends into dst, for callers that
// want to reuse a buffer across messages.
func (g *Generator) BodyReserve(dst []byte, body []byte) []byte {
	return g.appendBody(dst, body)
}

func (g *Generator) appendBody(dst []byte, body []byte) []byte {
	switch g.state {
	case genSimple:
		if len(body) > 0 {
			g.headers = append(g.headers, [2]string{"Content-Length", strconv.Itoa(len(body))})
		}
		dst = g.headBlock(dst)
		dst = append(dst, body...)
		return dst
	case genChunked:
		dst = g.headBlock(dst)
		g.state = genChunkedProgress
		if len(body) == 0 {
			return dst
		}
		return appendChunkFrame(dst, body)
	case genChunkedProgress:
		if len(body) == 0 {
			return append(dst, "0\r\n\r\n"...)
		}
		return appendChunkFrame(dst, body)
	}
	return dst
}

// appendChunkFrame writes one chunk: its hex size line, the data, and
// the trailing CRLF (RFC 7230 §4.1).
func appendChunkFrame(dst []byte, body []byte) []byte {
	dst = strconv.AppendUint(dst, uint64(len(body)), 16)
	dst = append(dst, "\r\n"...)
	dst = append(dst, body...)
	dst = append(dst, "\r\n"...)
	return dst
}
