// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

import (
	"bytes"

	"github.com/intuitivelabs/bytescase"
)

// Method is the numeric type for the HTTP/1.1 request methods this
// library recognizes.
type Method uint8

// Recognized methods; MOther covers anything else seen on the wire (the
// parser is lenient about unknown methods, the generator is not).
const (
	MUndef Method = iota
	MGet
	MHead
	MPost
	MPut
	MDelete
	MConnect
	MOptions
	MTrace
	MPatch
	MOther // must stay last
)

// methodNames maps a Method to its wire-format ASCII spelling.
var methodNames = [MOther + 1][]byte{
	MUndef:   []byte(""),
	MGet:     []byte("GET"),
	MHead:    []byte("HEAD"),
	MPost:    []byte("POST"),
	MPut:     []byte("PUT"),
	MDelete:  []byte("DELETE"),
	MConnect: []byte("CONNECT"),
	MOptions: []byte("OPTIONS"),
	MTrace:   []byte("TRACE"),
	MPatch:   []byte("PATCH"),
	MOther:   []byte("OTHER"),
}

// Name returns the wire-format ASCII method name.
func (m Method) Name() []byte {
	if m > MOther {
		return methodNames[MUndef]
	}
	return methodNames[m]
}

// String implements the Stringer interface.
func (m Method) String() string {
	return string(m.Name())
}

// a tiny perfect-enough hash over (lowercased first char, length) avoids
// a linear scan for the handful of methods in common use, without
// pulling in a map.
const (
	methodHashCharBits uint = 3
	methodHashLenBits  uint = 2
)

type methodEntry struct {
	name []byte
	m    Method
}

var methodLookup [1 << (methodHashCharBits + methodHashLenBits)][]methodEntry

func methodHash(n []byte) int {
	const (
		charMask = (1 << methodHashCharBits) - 1
		lenMask  = (1 << methodHashLenBits) - 1
	)
	return (int(bytescase.ByteToLower(n[0])) & charMask) |
		((len(n) & lenMask) << methodHashCharBits)
}

func init() {
	for m := MUndef + 1; m < MOther; m++ {
		h := methodHash(methodNames[m])
		methodLookup[h] = append(methodLookup[h], methodEntry{methodNames[m], m})
	}
}

// ParseMethod converts an ASCII method token to its numeric Method,
// returning MOther for anything not in the recognized set (the request
// line parser accepts arbitrary method tokens; only the generator
// restricts itself to the named set).
func ParseMethod(tok []byte) Method {
	if len(tok) == 0 {
		return MUndef
	}
	h := methodHash(tok)
	for _, e := range methodLookup[h] {
		if bytes.Equal(tok, e.name) {
			return e.m
		}
	}
	return MOther
}
