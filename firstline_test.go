// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

import "testing"

func TestParseFLineRequest(t *testing.T) {
	c := NewContainer(0)
	c.Append([]byte("GET /index.html HTTP/1.1\r\n"))
	var fl FirstLine
	n, err := ParseFLine(c, 0, &fl)
	if err != ErrHdrOk {
		t.Fatalf("ParseFLine: %s", err)
	}
	if n != c.Len() {
		t.Fatalf("expected offset %d, got %d", c.Len(), n)
	}
	if !fl.Request() {
		t.Fatalf("expected a request line")
	}
	if fl.MethodNo != MGet {
		t.Fatalf("expected MGet, got %v", fl.MethodNo)
	}
	if !fl.URI.Equal([]byte("/index.html")) {
		t.Fatalf("URI: got %q", fl.URI.Get())
	}
	if !fl.Version.Equal([]byte("HTTP/1.1")) {
		t.Fatalf("Version: got %q", fl.Version.Get())
	}
}

func TestParseFLineResponse(t *testing.T) {
	c := NewContainer(0)
	c.Append([]byte("HTTP/1.1 404 Not Found\r\n"))
	var fl FirstLine
	_, err := ParseFLine(c, 0, &fl)
	if err != ErrHdrOk {
		t.Fatalf("ParseFLine: %s", err)
	}
	if fl.Request() {
		t.Fatalf("expected a response line")
	}
	if fl.Status != 404 {
		t.Fatalf("expected status 404, got %d", fl.Status)
	}
	if !fl.Reason.Equal([]byte("Not Found")) {
		t.Fatalf("Reason: got %q", fl.Reason.Get())
	}
}

func TestParseFLineSplitAcrossFeeds(t *testing.T) {
	whole := "POST /submit HTTP/1.1\r\n"
	c := NewContainer(0)
	var fl FirstLine
	offs := 0
	for i := 0; i < len(whole); i++ {
		c.Append([]byte{whole[i]})
		n, err := ParseFLine(c, offs, &fl)
		if err == ErrHdrMoreBytes {
			offs = n
			continue
		}
		if err != ErrHdrOk {
			t.Fatalf("ParseFLine at byte %d: %s", i, err)
		}
		if i != len(whole)-1 {
			t.Fatalf("finished early at byte %d", i)
		}
	}
	if fl.MethodNo != MPost {
		t.Fatalf("expected MPost, got %v", fl.MethodNo)
	}
}

func TestParseFLineBadChar(t *testing.T) {
	c := NewContainer(0)
	// no SP between the request-target and the version token
	c.Append([]byte("GET /no-version-sep\r\n"))
	var fl FirstLine
	_, err := ParseFLine(c, 0, &fl)
	if err != ErrHdrBadChar {
		t.Fatalf("expected ErrHdrBadChar, got %s", err)
	}
}
