// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

// This file holds the small set of byte-scanning helpers the first-line,
// header and chunk parsers share: HTTP/1.1 framing only ever needs "scan
// to a delimiter" and "skip one line", so each parser gets its own small
// named helper rather than a generic token/parameter-list engine (see
// DESIGN.md).

// isWS reports whether c is a space or horizontal tab.
func isWS(c byte) bool {
	return c == ' ' || c == '\t'
}

// skipToken advances i past any byte that is not whitespace, CR or LF.
func skipToken(buf []byte, i int) int {
	for i < len(buf) {
		c := buf[i]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			break
		}
		i++
	}
	return i
}

// skipTokenDelim advances i past any byte that is not whitespace, CR, LF
// or delim.
func skipTokenDelim(buf []byte, i int, delim byte) int {
	for i < len(buf) {
		c := buf[i]
		if c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == delim {
			break
		}
		i++
	}
	return i
}

// skipWS advances i past spaces and tabs only (no line folding).
func skipWS(buf []byte, i int) int {
	for i < len(buf) && isWS(buf[i]) {
		i++
	}
	return i
}

// skipCRLF consumes a line terminator (CRLF, or a bare CR/LF) at i. It
// returns the offset right after the terminator and the terminator's
// length (1 or 2), or ErrHdrMoreBytes if buf ends exactly at a lone '\r'
// (more bytes are needed to know if a '\n' follows).
func skipCRLF(buf []byte, i int) (int, int, ErrorHdr) {
	if i >= len(buf) {
		return i, 0, ErrHdrMoreBytes
	}
	switch buf[i] {
	case '\r':
		if i+1 >= len(buf) {
			return i, 0, ErrHdrMoreBytes
		}
		if buf[i+1] == '\n' {
			return i + 2, 2, ErrHdrOk
		}
		return i + 1, 1, ErrHdrOk
	case '\n':
		return i + 1, 1, ErrHdrOk
	default:
		return i, 0, ErrHdrBadChar
	}
}

// skipLWS consumes folded linear whitespace: zero or more SP/HTAB, or a
// CRLF (or bare CR/LF) followed by at least one SP/HTAB (a header value
// continuation line). It returns the new offset and the length of the
// line-terminator it just consumed (0 if none), or:
//   - ErrHdrEOH if a line terminator was found NOT followed by SP/HTAB
//     (end of the header value)
//   - ErrHdrMoreBytes if more input is needed to decide (the returned
//     offset then points at the undecided line terminator, so a later
//     call resumes there)
func skipLWS(buf []byte, i int, crl int) (int, int, ErrorHdr) {
	for {
		if i >= len(buf) {
			return i, crl, ErrHdrMoreBytes
		}
		switch buf[i] {
		case ' ', '\t':
			i++
			crl = 0
		case '\r', '\n':
			n, l, err := skipCRLF(buf, i)
			if err != ErrHdrOk {
				return i, crl, err
			}
			if n >= len(buf) {
				return i, crl, ErrHdrMoreBytes
			}
			if !isWS(buf[n]) {
				return i, l, ErrHdrEOH
			}
			i = n
			crl = l
		default:
			return i, crl, ErrHdrOk
		}
	}
}

// skipLine advances past the rest of the current line, returning the
// offset right after the terminating CRLF and the terminator's length.
func skipLine(buf []byte, i int) (int, int, ErrorHdr) {
	for i < len(buf) {
		if buf[i] == '\r' || buf[i] == '\n' {
			return skipCRLF(buf, i)
		}
		i++
	}
	return i, 0, ErrHdrMoreBytes
}

// decToU parses an unsigned decimal number from buf[i:end). It stops at
// the first non-digit. Returns the parsed value, the offset of the first
// non-digit byte, and false if no digit was found at all or the value
// overflowed.
func decToU(buf []byte, i, end int) (uint64, int, bool) {
	start := i
	var v uint64
	for i < end && buf[i] >= '0' && buf[i] <= '9' {
		d := uint64(buf[i] - '0')
		if v > (^uint64(0)-d)/10 {
			return 0, i, false
		}
		v = v*10 + d
		i++
	}
	if i == start {
		return 0, i, false
	}
	return v, i, true
}

// hexToU parses an unsigned hex number from buf[i:end), stopping at the
// first non-hex-digit byte (which, for a chunk-size line, is usually
// ';' introducing chunk extensions, or CR).
func hexToU(buf []byte, i, end int) (uint64, int, bool) {
	start := i
	var v uint64
	for i < end {
		c := buf[i]
		var d uint64
		switch {
		case c >= '0' && c <= '9':
			d = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			d = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			d = uint64(c-'A') + 10
		default:
			goto done
		}
		{
			nv := v*16 + d
			if nv < v {
				return 0, i, false
			}
			v = nv
		}
		i++
	}
done:
	if i == start {
		return 0, i, false
	}
	return v, i, true
}
