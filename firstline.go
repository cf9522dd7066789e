// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

import "github.com/intuitivelabs/bytescase"

// FirstLine holds the parsed request line or status line of a message.
// Request() reports which of the two it is.
type FirstLine struct {
	Status     uint16 // reply status code, 0 for requests
	MethodNo   Method
	Method     View // request method token, empty in responses
	URI        View // request-target, empty in responses
	Version    View // "HTTP/1.1" (or whatever version token was seen)
	StatusCode View // reply status as a 3-digit token, empty in requests
	Reason     View // reply reason phrase

	state uint8
}

// internal parser states
const (
	flInit uint8 = iota
	flReqMethod
	flReqURI
	flReqVer
	flRplStatus
	flRplReason
	flCRLF
	flFIN
)

var httpVerPref = []byte("HTTP/")
var httpVerSP = []byte("HTTP/1.0 ")

// Reset re-initializes the first line to be reparsed.
func (fl *FirstLine) Reset() {
	*fl = FirstLine{}
}

// Request reports whether the parsed line was a request line.
func (fl *FirstLine) Request() bool {
	return fl.Status == 0
}

// Parsed reports whether parsing has run to completion.
func (fl *FirstLine) Parsed() bool {
	return fl.state == flFIN
}

// ParseFLine parses the request/status line starting at offs in c. It
// returns the offset right after the line's terminating CRLF and
// ErrHdrOk, or ErrHdrMoreBytes if c does not yet hold the whole line (in
// which case ParseFLine can be called again with the same fl once more
// bytes have been appended to c).
func ParseFLine(c *Container, offs int, fl *FirstLine) (int, ErrorHdr) {
	buf := c.Bytes()
	i := offs
	switch fl.state {
	case flInit:
		if (len(buf) - i) < (len(httpVerSP) + 3 + 3) {
			goto moreBytes
		}
		if l, match := bytescase.Prefix(httpVerPref, buf[i:]); match {
			majorEnd := -1
			l += i
		verloop:
			for ; l < len(buf); l++ {
				switch buf[l] {
				case '.':
					if majorEnd < 0 {
						majorEnd = l
						if l+1 >= len(buf) {
							goto moreBytes
						}
					} else {
						return l, ErrHdrBadChar
					}
				case ' ':
					if majorEnd < 0 {
						majorEnd = l
					}
					break verloop
				case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
				default:
					return l, ErrHdrBadChar
				}
			}
			fl.Version.Set(c, i, l)
			fl.state = flRplStatus
			if l+1 >= len(buf) {
				goto moreBytes
			}
			i = l + 1
			if i+3 >= len(buf) {
				goto moreBytes
			}
			if buf[i+3] != ' ' ||
				!((buf[i] >= '0' && buf[i] <= '9') &&
					(buf[i+1] >= '0' && buf[i+1] <= '9') &&
					(buf[i+2] >= '0' && buf[i+2] <= '9')) {
				return i, ErrHdrBadChar
			}
			fl.StatusCode.Set(c, i, i+3)
			fl.Status = uint16(buf[i]-'0')*100 + uint16(buf[i+1]-'0')*10 +
				uint16(buf[i+2]-'0')
			i += 4
			fl.Reason.Set(c, i, i)
			fl.state = flRplReason
			n, crl, err := skipLine(buf, i)
			if err != ErrHdrOk {
				return n, err
			}
			i = n
			fl.Reason.Extend(i - crl)
			goto endOk
		}
		fl.state = flReqMethod
		fl.Method.Set(c, i, i)
		fallthrough
	case flReqMethod:
		i = skipToken(buf, i)
		if i >= len(buf) {
			goto moreBytes
		}
		if buf[i] != ' ' {
			return i, ErrHdrBadChar
		}
		fl.Method.Extend(i)
		if fl.Method.Empty() {
			return i, ErrHdrBadChar
		}
		fl.MethodNo = ParseMethod(fl.Method.Get())
		i++
		fl.state = flReqURI
		fl.URI.Set(c, i, i)
		fallthrough
	case flReqURI:
		i = skipToken(buf, i)
		if i >= len(buf) {
			goto moreBytes
		}
		if buf[i] != ' ' {
			return i, ErrHdrBadChar
		}
		fl.URI.Extend(i)
		if fl.URI.Empty() {
			return i, ErrHdrBadChar
		}
		i++
		fl.state = flReqVer
		fl.Version.Set(c, i, i)
		fallthrough
	case flReqVer:
		i = skipToken(buf, i)
		if i >= len(buf) {
			goto moreBytes
		}
		if buf[i] != '\r' && buf[i] != '\n' {
			return i, ErrHdrBadChar
		}
		fl.Version.Extend(i)
		if fl.Version.Empty() {
			return i, ErrHdrBadChar
		}
		fl.state = flCRLF
		fallthrough
	case flCRLF:
		n, _, err := skipCRLF(buf, i)
		if err != ErrHdrOk {
			return n, err
		}
		i = n
		goto endOk
	case flRplReason:
		n, crl, err := skipLine(buf, i)
		if err != ErrHdrOk {
			return n, err
		}
		i = n
		fl.Reason.Extend(i - crl)
	}
endOk:
	fl.state = flFIN
	return i, ErrHdrOk
moreBytes:
	return i, ErrHdrMoreBytes
}
