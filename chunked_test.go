// Copyright 2022 Intuitive Labs GmbH. All rights reserved.
//
// Use of this source code is governed by a source-available license
// that can be found in the LICENSE.txt file in the root of the source
// tree.

package http1sp

import "testing"

func TestParseChunkOneChunk(t *testing.T) {
	c := NewContainer(0)
	c.Append([]byte("5\r\nhello\r\n"))
	var ch Chunk
	dataOffs, size, err := ParseChunk(c, 0, &ch)
	if err != ErrHdrOk {
		t.Fatalf("ParseChunk: %s", err)
	}
	if size != 5 {
		t.Fatalf("expected size 5, got %d", size)
	}
	data := c.Bytes()[dataOffs : dataOffs+int(size)]
	if string(data) != "hello" {
		t.Fatalf("got %q", data)
	}
}

func TestParseChunkWithExtension(t *testing.T) {
	c := NewContainer(0)
	c.Append([]byte("3;foo=bar\r\nxyz\r\n"))
	var ch Chunk
	dataOffs, size, err := ParseChunk(c, 0, &ch)
	if err != ErrHdrOk {
		t.Fatalf("ParseChunk: %s", err)
	}
	if size != 3 {
		t.Fatalf("expected size 3, got %d", size)
	}
	if string(c.Bytes()[dataOffs:dataOffs+3]) != "xyz" {
		t.Fatalf("got %q", c.Bytes()[dataOffs:dataOffs+3])
	}
	if ch.Ext.Empty() {
		t.Fatalf("expected a non-empty chunk extension")
	}
}

func TestParseChunkTerminal(t *testing.T) {
	c := NewContainer(0)
	c.Append([]byte("0\r\n\r\n"))
	var ch Chunk
	n, size, err := ParseChunk(c, 0, &ch)
	if err != ErrHdrOk {
		t.Fatalf("ParseChunk: %s", err)
	}
	if size != 0 {
		t.Fatalf("expected size 0, got %d", size)
	}
	// n+size+2 must land exactly at the end of the buffer, the same
	// formula used for every ordinary chunk.
	if n+int(size)+2 != c.Len() {
		t.Fatalf("expected n+size+2 == %d, got %d", c.Len(), n+int(size)+2)
	}
}

func TestParseChunkTerminalWithTrailer(t *testing.T) {
	c := NewContainer(0)
	c.Append([]byte("0\r\nX-Trailer: done\r\n\r\n"))
	var ch Chunk
	n, size, err := ParseChunk(c, 0, &ch)
	if err != ErrHdrOk {
		t.Fatalf("ParseChunk: %s", err)
	}
	if n+int(size)+2 != c.Len() {
		t.Fatalf("expected n+size+2 == %d, got %d", c.Len(), n+int(size)+2)
	}
	h := ch.Trailer.Find([]byte("X-Trailer"))
	if h == nil || !h.Val.Equal([]byte("done")) {
		t.Fatalf("expected trailer header X-Trailer: done, got %v", h)
	}
}

func TestParseChunkBadFraming(t *testing.T) {
	c := NewContainer(0)
	c.Append([]byte("zz\r\ndata\r\n"))
	var ch Chunk
	_, _, err := ParseChunk(c, 0, &ch)
	if err != ErrHdrChunkFraming {
		t.Fatalf("expected ErrHdrChunkFraming, got %s", err)
	}
}

func TestParseChunkSplitAcrossFeeds(t *testing.T) {
	raw := "7\r\nchunked\r\n"
	c := NewContainer(0)
	var ch Chunk
	offs := 0
	for i := 0; i < len(raw); i++ {
		c.Append([]byte{raw[i]})
		n, _, err := ParseChunk(c, offs, &ch)
		if err == ErrHdrMoreBytes {
			offs = n
			continue
		}
		if err != ErrHdrOk {
			t.Fatalf("ParseChunk at byte %d: %s", i, err)
		}
	}
	if ch.Size != 7 {
		t.Fatalf("expected size 7, got %d", ch.Size)
	}
}
