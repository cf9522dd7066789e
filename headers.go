// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

import "github.com/intuitivelabs/bytescase"

// HdrT identifies a recognized header name.
type HdrT uint16

// Recognized header types. HdrOther covers every header name this
// library does not special-case; it is still stored and retrievable by
// name through HeaderBlock.Find.
const (
	HdrNone HdrT = iota
	HdrCLen
	HdrTrEncoding
	HdrUpgrade
	HdrConnection
	HdrHost
	HdrOther
)

var hdrTStr = [...]string{
	HdrNone:       "nil",
	HdrCLen:       "Content-Length",
	HdrTrEncoding: "Transfer-Encoding",
	HdrUpgrade:    "Upgrade",
	HdrConnection: "Connection",
	HdrHost:       "Host",
	HdrOther:      "generic",
}

// String implements the Stringer interface.
func (t HdrT) String() string {
	if int(t) >= len(hdrTStr) {
		return "invalid"
	}
	return hdrTStr[t]
}

type hdr2Type struct {
	n []byte
	t HdrT
}

// always lowercase; compared case-insensitively via bytescase
var hdrName2Type = [...]hdr2Type{
	{n: []byte("content-length"), t: HdrCLen},
	{n: []byte("transfer-encoding"), t: HdrTrEncoding},
	{n: []byte("upgrade"), t: HdrUpgrade},
	{n: []byte("connection"), t: HdrConnection},
	{n: []byte("host"), t: HdrHost},
}

const (
	hnBitsLen   uint = 2
	hnBitsFChar uint = 5
)

var hdrNameLookup [1 << (hnBitsLen + hnBitsFChar)][]hdr2Type

func hashHdrName(n []byte) int {
	const (
		mC = (1 << hnBitsFChar) - 1
		mL = (1 << hnBitsLen) - 1
	)
	return (int(bytescase.ByteToLower(n[0])) & mC) |
		((len(n) & mL) << hnBitsFChar)
}

func init() {
	for _, h := range hdrName2Type {
		i := hashHdrName(h.n)
		hdrNameLookup[i] = append(hdrNameLookup[i], h)
	}
}

// GetHdrType returns the HdrT for name, or HdrOther if not recognized.
func GetHdrType(name []byte) HdrT {
	if len(name) == 0 {
		return HdrOther
	}
	i := hashHdrName(name)
	for _, h := range hdrNameLookup[i] {
		if bytescase.CmpEq(name, h.n) {
			return h.t
		}
	}
	return HdrOther
}

// Header holds one parsed header-field's name and value as views into
// the parser's container.
type Header struct {
	Type HdrT
	Name View
	Val  View

	state uint8
}

// internal ParseHeader states: name, the space after the colon, value,
// and the blank-line finish.
const (
	hInit uint8 = iota
	hName
	hNameEnd
	hBodyStart
	hVal
	hValEnd
	hFIN
)

// Reset clears a Header for reuse.
func (h *Header) Reset() {
	*h = Header{}
}

// HeaderBlock collects every header parsed for one message.
type HeaderBlock struct {
	Hdrs []Header

	// shortcuts to the first occurrence of a recognized type, indexed by
	// HdrT-1 (HdrNone and HdrOther are never stored here)
	first [int(HdrOther)]Header
	set   [int(HdrOther)]bool

	hdr Header // scratch header reused across ParseHeaders calls
}

// Reset clears the block for reparsing.
func (hl *HeaderBlock) Reset() {
	hdrs := hl.Hdrs[:0]
	*hl = HeaderBlock{Hdrs: hdrs}
}

// shortcut returns the first header of type t, or nil if none was seen.
func (hl *HeaderBlock) shortcut(t HdrT) *Header {
	if t > HdrNone && int(t) <= len(hl.set) && hl.set[t-1] {
		return &hl.first[t-1]
	}
	return nil
}

func (hl *HeaderBlock) setShortcut(h *Header) {
	if h.Type > HdrNone && int(h.Type) <= len(hl.set) && !hl.set[h.Type-1] {
		hl.first[h.Type-1] = *h
		hl.set[h.Type-1] = true
	}
}

// Find returns the first header with the given byte-exact name, or nil.
// Header-name comparison is byte-exact by default: names are stored
// exactly as seen on the wire. Use FindFold for a case-insensitive
// lookup.
func (hl *HeaderBlock) Find(name []byte) *Header {
	for i := range hl.Hdrs {
		if hl.Hdrs[i].Name.Equal(name) {
			return &hl.Hdrs[i]
		}
	}
	return nil
}

// FindFold is like Find but compares the header name case-insensitively,
// the common expectation for HTTP header lookups.
func (hl *HeaderBlock) FindFold(name []byte) *Header {
	for i := range hl.Hdrs {
		if bytescase.CmpEq(hl.Hdrs[i].Name.Get(), name) {
			return &hl.Hdrs[i]
		}
	}
	return nil
}

// FindType returns the first header of the given recognized type.
func (hl *HeaderBlock) FindType(t HdrT) *Header {
	return hl.shortcut(t)
}

// ParseHeaderLine parses one header-field starting at offs, in the
// literal name/space/value/finish shape described by the original
// source's headers_parser.hpp, folded line continuations collapsed via
// skipLWS. Returns ErrHdrEmpty (and the offset past the CRLF) when the
// end-of-headers blank line is seen.
func ParseHeaderLine(c *Container, offs int, h *Header) (int, ErrorHdr) {
	buf := c.Bytes()
	i := offs
	var crl int
	for i < len(buf) {
		switch h.state {
		case hInit:
			if buf[i] == '\r' {
				if i+1 >= len(buf) {
					goto moreBytes
				}
				h.state = hFIN
				if buf[i+1] == '\n' {
					return i + 2, ErrHdrEmpty
				}
				return i + 1, ErrHdrEmpty
			} else if buf[i] == '\n' {
				h.state = hFIN
				return i + 1, ErrHdrEmpty
			}
			h.state = hName
			h.Name.Set(c, i, i)
			fallthrough
		case hName:
			i = skipTokenDelim(buf, i, ':')
			if i >= len(buf) {
				goto moreBytes
			}
			if buf[i] == ' ' || buf[i] == '\t' {
				h.state = hNameEnd
				h.Name.Extend(i)
				if h.Name.Empty() {
					goto errBadChar
				}
				i++
			} else if buf[i] == ':' {
				h.state = hBodyStart
				h.Name.Extend(i)
				if h.Name.Empty() {
					goto errBadChar
				}
				h.Type = GetHdrType(h.Name.Get())
				i++
			} else {
				goto errBadChar
			}
		case hNameEnd:
			i = skipWS(buf, i)
			if i >= len(buf) {
				goto moreBytes
			}
			if buf[i] != ':' {
				goto errBadChar
			}
			h.state = hBodyStart
			h.Type = GetHdrType(h.Name.Get())
			i++
		case hBodyStart:
			var err ErrorHdr
			i, crl, err = skipLWS(buf, i, 0)
			switch err {
			case ErrHdrOk:
				h.state = hVal
				h.Val.Set(c, i, i)
				crl = 0
				i++
			case ErrHdrEOH:
				goto endOfHdr
			default:
				return i, err
			}
		case hVal:
			i = skipToken(buf, i)
			if i >= len(buf) {
				goto moreBytes
			}
			h.Val.Extend(i)
			h.state = hValEnd
			fallthrough
		case hValEnd:
			var err ErrorHdr
			i, crl, err = skipLWS(buf, i, 0)
			switch err {
			case ErrHdrOk:
				h.state = hVal
				crl = 0
				i++
			case ErrHdrEOH:
				goto endOfHdr
			default:
				return i, err
			}
		default:
			return i, ErrHdrBug
		}
	}
moreBytes:
	return i, ErrHdrMoreBytes
endOfHdr:
	h.state = hFIN
	return i + crl, ErrHdrOk
errBadChar:
	return i, ErrHdrBadChar
}

// ParseHeaders parses header-fields from offs until the end-of-headers
// blank line, appending each to hl.Hdrs. It returns the offset right
// after the blank line and ErrHdrOk on success.
func ParseHeaders(c *Container, offs int, hl *HeaderBlock) (int, ErrorHdr) {
	i := offs
	for {
		n, err := ParseHeaderLine(c, i, &hl.hdr)
		switch err {
		case ErrHdrOk:
			hl.Hdrs = append(hl.Hdrs, hl.hdr)
			hl.setShortcut(&hl.hdr)
			hl.hdr.Reset()
			i = n
		case ErrHdrEmpty:
			return n, ErrHdrOk
		default:
			return n, err
		}
	}
}
