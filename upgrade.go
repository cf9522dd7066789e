// Copyright 2021 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

import "github.com/intuitivelabs/bytescase"

// UpgProtoT is a bitflag for a recognized Upgrade protocol token.
type UpgProtoT uint

// Upgrade protocol flag values, see the IANA HTTP Upgrade Token
// Registry.
const (
	UProtoNone   UpgProtoT = 0
	UProtoWSockF UpgProtoT = 1 << iota
	UProtoHTTP2F
	UProtoOtherF
)

// UpgProtoResolve maps a protocol token to its flag.
func UpgProtoResolve(n []byte) UpgProtoT {
	switch {
	case bytescase.CmpEq(n, []byte("websocket")):
		return UProtoWSockF
	case bytescase.CmpEq(n, []byte("h2c")), bytescase.CmpEq(n, []byte("http/2.0")):
		return UProtoHTTP2F
	}
	return UProtoOtherF
}

// ParseUpgradeValues splits a fully captured Upgrade header value on
// commas and resolves each protocol token, the same simplification
// ParseTrEncValues makes (see DESIGN.md).
func ParseUpgradeValues(val []byte) UpgProtoT {
	var flags UpgProtoT
	for _, tok := range splitComma(val) {
		flags |= UpgProtoResolve(tok)
	}
	return flags
}
