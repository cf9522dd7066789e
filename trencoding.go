// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

import "github.com/intuitivelabs/bytescase"

// TrEncT is a bitflag for a recognized Transfer-Encoding / TE token.
type TrEncT uint

// Transfer-Encoding flag values, see RFC 7230 §4 and the IANA HTTP
// transfer-coding registry.
const (
	TrEncNone     TrEncT = 0
	TrEncChunkedF TrEncT = 1 << iota
	TrEncCompressF
	TrEncDeflateF
	TrEncGzipF
	TrEncIdentityF
	TrEncOtherF
)

// TrEncResolve maps an encoding token to its flag, trimmed to the
// codings this library actually branches on: the core parser only
// needs to distinguish "chunked" from everything else.
func TrEncResolve(n []byte) TrEncT {
	switch {
	case bytescase.CmpEq(n, []byte("chunked")):
		return TrEncChunkedF
	case bytescase.CmpEq(n, []byte("compress")):
		return TrEncCompressF
	case bytescase.CmpEq(n, []byte("deflate")):
		return TrEncDeflateF
	case bytescase.CmpEq(n, []byte("gzip")):
		return TrEncGzipF
	case bytescase.CmpEq(n, []byte("identity")):
		return TrEncIdentityF
	}
	return TrEncOtherF
}

// ParseTrEncValues splits a (fully captured, already line-unfolded)
// Transfer-Encoding header value on commas and resolves each token.
// It runs over a value that ParseHeaders has already assembled in
// full: HeaderBlock always holds a complete Val view by the time the
// header block finishes, so there is no ErrHdrMoreBytes case to thread
// through here (see DESIGN.md).
func ParseTrEncValues(val []byte) TrEncT {
	var flags TrEncT
	for _, tok := range splitComma(val) {
		flags |= TrEncResolve(tok)
	}
	return flags
}

// splitComma splits b on ',' and trims surrounding linear whitespace
// from each piece, dropping empty pieces.
func splitComma(b []byte) [][]byte {
	var toks [][]byte
	start := 0
	for i := 0; i <= len(b); i++ {
		if i == len(b) || b[i] == ',' {
			tok := trimWS(b[start:i])
			if len(tok) > 0 {
				toks = append(toks, tok)
			}
			start = i + 1
		}
	}
	return toks
}

// trimWS trims leading/trailing spaces and tabs.
func trimWS(b []byte) []byte {
	i, j := 0, len(b)
	for i < j && isWS(b[i]) {
		i++
	}
	for j > i && isWS(b[j-1]) {
		j--
	}
	return b[i:j]
}
