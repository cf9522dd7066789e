// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a BSD-style license
// that can be found in the LICENSE_BSD.txt file in the root of the source
// tree.

package http1sp

import "bytes"

// URI holds the result of parsing an absolute or relative URI into its
// component slices, all of them sub-slices of the original input.
// Parsing is an explicit left-to-right scan with named phases rather
// than a function-pointer-table state machine.
type URI struct {
	Scheme   []byte
	User     []byte
	Password []byte
	Host     []byte
	Port     []byte // raw digits, empty if not present in the URI
	Path     []byte // empty if the URI has no path; see PathOrDefault
	Query    []byte
	Anchor   []byte

	raw     []byte
	pathPos int
}

// defaultPath is returned by PathOrDefault() when the URI carried none.
var defaultPath = []byte("/")

// ParseURI parses raw as an absolute or relative URI. On success it
// returns ErrHdrOk; a URI that degenerates into only a path (e.g. a
// bare request-target "*") is not an error -- ParseURI only fails
// (ErrHdrURIParse) if raw is empty.
func ParseURI(raw []byte) (URI, ErrorHdr) {
	var u URI
	if len(raw) == 0 {
		return u, ErrHdrURIParse
	}
	u.raw = raw

	rest := raw
	consumed := 0

	// scheme: leading [A-Za-z]+ immediately followed by ':'
	i := 0
	for i < len(rest) && isSchemeChar(rest[i]) {
		i++
	}
	if i > 0 && i < len(rest) && rest[i] == ':' {
		u.Scheme = rest[:i]
		rest = rest[i+1:]
		consumed += i + 1
	}

	// authority: only present after "//"
	if len(rest) >= 2 && rest[0] == '/' && rest[1] == '/' {
		rest = rest[2:]
		consumed += 2
		authEnd := len(rest)
		for j, c := range rest {
			if c == '/' || c == '?' || c == '#' {
				authEnd = j
				break
			}
		}
		authority := rest[:authEnd]
		if at := bytes.IndexByte(authority, '@'); at >= 0 {
			userinfo := authority[:at]
			authority = authority[at+1:]
			if col := bytes.IndexByte(userinfo, ':'); col >= 0 {
				u.User = userinfo[:col]
				u.Password = userinfo[col+1:]
			} else {
				u.User = userinfo
			}
		}
		if col := bytes.IndexByte(authority, ':'); col >= 0 {
			u.Host = authority[:col]
			u.Port = authority[col+1:]
		} else {
			u.Host = authority
		}
		rest = rest[authEnd:]
		consumed += authEnd
	}

	u.pathPos = consumed

	// path: up to '?', '#' or end
	pathEnd := len(rest)
	for j, c := range rest {
		if c == '?' || c == '#' {
			pathEnd = j
			break
		}
	}
	u.Path = rest[:pathEnd]
	rest = rest[pathEnd:]

	if len(rest) > 0 && rest[0] == '?' {
		rest = rest[1:]
		qEnd := len(rest)
		for j, c := range rest {
			if c == '#' {
				qEnd = j
				break
			}
		}
		u.Query = rest[:qEnd]
		rest = rest[qEnd:]
	}
	if len(rest) > 0 && rest[0] == '#' {
		u.Anchor = rest[1:]
	}
	return u, ErrHdrOk
}

func isSchemeChar(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// PathPos returns the byte offset of the path within the original URI.
func (u URI) PathPos() int {
	return u.pathPos
}

// PathOrDefault returns the parsed path, or "/" if the URI had none.
func (u URI) PathOrDefault() []byte {
	if len(u.Path) == 0 {
		return defaultPath
	}
	return u.Path
}

// Request returns path + ("?"+query if query is non-empty), the form
// written on a generated request line.
func (u URI) Request() []byte {
	p := u.PathOrDefault()
	if len(u.Query) == 0 {
		return p
	}
	out := make([]byte, 0, len(p)+1+len(u.Query))
	out = append(out, p...)
	out = append(out, '?')
	out = append(out, u.Query...)
	return out
}

// PortNum returns the numeric port: the parsed port if present, else
// 443 if the scheme is ascii-"https", else 80.
func (u URI) PortNum() uint16 {
	if len(u.Port) > 0 {
		n := uint16(0)
		for _, c := range u.Port {
			if c < '0' || c > '9' {
				break
			}
			n = n*10 + uint16(c-'0')
		}
		return n
	}
	if asciiEqualFold(u.Scheme, "https") {
		return 443
	}
	return 80
}

// Param scans the query string for name=value pairs separated by '&'.
// It returns (value, true) if name is present (value empty for a bare
// key), or (nil, false) if name does not appear.
func (u URI) Param(name []byte) ([]byte, bool) {
	data := u.Query
	for begin := 0; begin < len(data); {
		amp := bytes.IndexByte(data[begin:], '&')
		var segEnd int
		if amp < 0 {
			segEnd = len(data)
		} else {
			segEnd = begin + amp
		}
		seg := data[begin:segEnd]
		if eq := bytes.IndexByte(seg, '='); eq >= 0 {
			if bytes.Equal(seg[:eq], name) {
				return seg[eq+1:], true
			}
		} else if bytes.Equal(seg, name) {
			return nil, true
		}
		begin = segEnd + 1
	}
	return nil, false
}

// asciiEqualFold compares b against the ASCII literal s, case-insensitively.
func asciiEqualFold(b []byte, s string) bool {
	if len(b) != len(s) {
		return false
	}
	for i := 0; i < len(b); i++ {
		c := b[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != s[i] {
			return false
		}
	}
	return true
}
