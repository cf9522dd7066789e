// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

import "testing"

func TestParseHeadersBasic(t *testing.T) {
	c := NewContainer(0)
	c.Append([]byte("Host: example.com\r\nContent-Length: 5\r\n\r\n"))
	var hl HeaderBlock
	n, err := ParseHeaders(c, 0, &hl)
	if err != ErrHdrOk {
		t.Fatalf("ParseHeaders: %s", err)
	}
	if n != c.Len() {
		t.Fatalf("expected offset %d, got %d", c.Len(), n)
	}
	if len(hl.Hdrs) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(hl.Hdrs))
	}
	h := hl.FindType(HdrHost)
	if h == nil || !h.Val.Equal([]byte("example.com")) {
		t.Fatalf("Host: got %v", h)
	}
	cl := hl.FindType(HdrCLen)
	if cl == nil || !cl.Val.Equal([]byte("5")) {
		t.Fatalf("Content-Length: got %v", cl)
	}
}

func TestParseHeadersEmptyBlock(t *testing.T) {
	c := NewContainer(0)
	c.Append([]byte("\r\n"))
	var hl HeaderBlock
	n, err := ParseHeaders(c, 0, &hl)
	if err != ErrHdrOk {
		t.Fatalf("ParseHeaders: %s", err)
	}
	if n != 2 {
		t.Fatalf("expected offset 2, got %d", n)
	}
	if len(hl.Hdrs) != 0 {
		t.Fatalf("expected 0 headers, got %d", len(hl.Hdrs))
	}
}

func TestParseHeadersFoldedValue(t *testing.T) {
	c := NewContainer(0)
	c.Append([]byte("X-Custom: first\r\n second\r\n\r\n"))
	var hl HeaderBlock
	_, err := ParseHeaders(c, 0, &hl)
	if err != ErrHdrOk {
		t.Fatalf("ParseHeaders: %s", err)
	}
	h := hl.Find([]byte("X-Custom"))
	if h == nil {
		t.Fatalf("expected X-Custom header")
	}
	if !h.Val.Equal([]byte("first\r\n second")) {
		t.Fatalf("got %q", h.Val.Get())
	}
}

func TestParseHeadersSplitAcrossFeeds(t *testing.T) {
	whole := "A: 1\r\nBB: 22\r\n\r\n"
	c := NewContainer(0)
	var hl HeaderBlock
	offs := 0
	for i := 0; i < len(whole); i++ {
		c.Append([]byte{whole[i]})
		n, err := ParseHeaders(c, offs, &hl)
		if err == ErrHdrMoreBytes {
			offs = n
			continue
		}
		if err != ErrHdrOk {
			t.Fatalf("ParseHeaders at byte %d: %s", i, err)
		}
	}
	if len(hl.Hdrs) != 2 {
		t.Fatalf("expected 2 headers, got %d", len(hl.Hdrs))
	}
}

func TestHeaderBlockFindFoldCaseInsensitive(t *testing.T) {
	c := NewContainer(0)
	c.Append([]byte("X-Thing: value\r\n\r\n"))
	var hl HeaderBlock
	ParseHeaders(c, 0, &hl)
	if hl.Find([]byte("x-thing")) != nil {
		t.Fatalf("Find should be byte-exact, found lowercase match unexpectedly")
	}
	if hl.FindFold([]byte("x-thing")) == nil {
		t.Fatalf("FindFold should match case-insensitively")
	}
}

// TestParseHeadersWhitespaceAndCaseFuzz drives ParseHeaders with
// randomized optional whitespace before the colon, randomized folded
// linear whitespace before the value, and randomized header-name case,
// the same fuzzing style as the teacher's TestParseHdrLine: a handful of
// fixed whitespace patterns first, then randWS/randLWS/randCase for the
// remaining rounds. GetHdrType (and so HeaderBlock.FindType) must keep
// resolving the header regardless of name case or surrounding
// whitespace, per spec.md §4.4.
func TestParseHeadersWhitespaceAndCaseFuzz(t *testing.T) {
	tests := []struct {
		name string
		val  string
		typ  HdrT
	}{
		{"Content-Length", "12345", HdrCLen},
		{"Transfer-Encoding", "chunked", HdrTrEncoding},
		{"Upgrade", "websocket", HdrUpgrade},
		{"Connection", "upgrade", HdrConnection},
		{"Host", "foo.bar", HdrHost},
		{"X-Custom", "generic header", HdrOther},
	}

	fixedWS := [...][2]string{
		{"", ""},
		{"", " "},
		{" ", " "},
	}

	const randRounds = 10
	for round := 0; round < len(fixedWS)+randRounds; round++ {
		for _, tc := range tests {
			var ws1, lws string
			if round < len(fixedWS) {
				ws1 = fixedWS[round][0]
				lws = fixedWS[round][1]
			} else {
				ws1 = randWS()
				lws = randLWS()
			}
			name := tc.name
			if round%2 == 1 {
				name = randCase(tc.name)
			}

			line := name + ws1 + ":" + lws + tc.val + "\r\n\r\n"
			c := NewContainer(0)
			c.Append([]byte(line))
			var hl HeaderBlock
			if _, err := ParseHeaders(c, 0, &hl); err != ErrHdrOk {
				t.Fatalf("round %d %q: ParseHeaders: %s", round, line, err)
			}
			if len(hl.Hdrs) != 1 {
				t.Fatalf("round %d %q: expected 1 header, got %d", round, line, len(hl.Hdrs))
			}
			h := &hl.Hdrs[0]
			if h.Type != tc.typ {
				t.Fatalf("round %d %q: expected type %v, got %v", round, line, tc.typ, h.Type)
			}
			if !h.Val.Equal([]byte(tc.val)) {
				t.Fatalf("round %d %q: expected value %q, got %q", round, line, tc.val, h.Val.Get())
			}
		}
	}
}

func TestParseHeaderLineBadChar(t *testing.T) {
	c := NewContainer(0)
	c.Append([]byte(": novalue\r\n"))
	var h Header
	_, err := ParseHeaderLine(c, 0, &h)
	if err != ErrHdrBadChar {
		t.Fatalf("expected ErrHdrBadChar for an empty header name, got %s", err)
	}
}
