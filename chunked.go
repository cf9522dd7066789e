// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

// Chunk holds one parsed chunk-size line (RFC 7230 §4.1) plus, for the
// zero-size last chunk, any trailer headers that followed it.
type Chunk struct {
	Ext     View // raw chunk-extension bytes, if any (";name=value" tokens)
	Size    int64
	Trailer HeaderBlock

	state uint8
}

const (
	cnkSize = iota
	cnkTrailer
)

// Reset re-initializes the chunk for reparsing the next chunk-size line.
func (ch *Chunk) Reset() {
	ch.Ext.Reset()
	ch.Size = 0
	ch.Trailer.Reset()
	ch.state = cnkSize
}

// More reports whether a non-terminal chunk was parsed (more chunk-data
// follows).
func (ch *Chunk) More() bool {
	return ch.Size > 0
}

// ParseChunk parses one chunk-size line, and -- for the final,
// zero-size chunk -- the optional trailer header block that follows it.
//
// On a normal chunk it returns the offset right after the chunk-size
// line's CRLF (the start of the chunk-data) and the parsed size. The
// caller must skip size+2 bytes from there (the data plus its trailing
// CRLF) to reach the next chunk-size line.
//
// On the terminal (size == 0) chunk, it additionally consumes any
// trailer headers and the blank line ending them, then backs the
// returned offset up by 2 so the same "offset + size(0) + 2" convention
// used for ordinary chunks also lands exactly after the message.
func ParseChunk(c *Container, offs int, ch *Chunk) (int, int64, ErrorHdr) {
	buf := c.Bytes()
	switch ch.state {
	case cnkSize:
		lineEnd, crl, err := skipLine(buf, offs)
		if err != ErrHdrOk {
			return offs, -1, err
		}
		v, digits, ok := hexToU(buf, offs, lineEnd-crl)
		if !ok || digits == offs {
			return offs, -1, ErrHdrChunkFraming
		}
		if digits < lineEnd-crl {
			ch.Ext.Set(c, digits, lineEnd-crl)
		}
		ch.Size = int64(v)
		if ch.Size == 0 {
			ch.state = cnkTrailer
			next, err := parseChunkTrailer(c, lineEnd, ch)
			return next, ch.Size, err
		}
		return lineEnd, ch.Size, ErrHdrOk
	case cnkTrailer:
		next, err := parseChunkTrailer(c, offs, ch)
		return next, ch.Size, err
	}
	return offs, -1, ErrHdrBug
}

// parseChunkTrailer parses the trailer header block and, on completion,
// backs the offset up by 2 per ParseChunk's doc comment.
func parseChunkTrailer(c *Container, offs int, ch *Chunk) (int, ErrorHdr) {
	n, err := ParseHeaders(c, offs, &ch.Trailer)
	if err != ErrHdrOk {
		return n, err
	}
	return n - 2, ErrHdrOk
}
