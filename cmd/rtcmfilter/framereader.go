/*------------------------------------------------------------------------------
* framereader.go : minimal rtcm3 preamble-synced frame reader for the cli
*
*          Copyright (C) 2022-2026 by feng xuebin, All rights reserved.
*
* The library itself is explicitly a single-message transcoder (see
* SPEC_FULL.md §1 Non-goals: no stream framing, no resync). This reader is
* outer-layer plumbing so the CLI can feed it one frame at a time from a raw
* byte stream; it is not exported by the rtcmmsm package.
*-----------------------------------------------------------------------------*/
package main

import (
	"bufio"
	"errors"
	"io"
)

var errBadFrame = errors.New("rtcmfilter: malformed rtcm3 frame")

type frameReader struct {
	r *bufio.Reader
}

func newFrameReader(r io.Reader) *frameReader {
	return &frameReader{r: bufio.NewReader(r)}
}

// next scans forward to the next 0xD3 preamble byte and returns one complete
// frame (header, payload, CRC), or io.EOF once the stream is exhausted.
func (f *frameReader) next() ([]byte, error) {
	for {
		b, err := f.r.ReadByte()
		if err != nil {
			return nil, err
		}
		if b != 0xD3 {
			continue
		}
		header := make([]byte, 3)
		header[0] = b
		if _, err := io.ReadFull(f.r, header[1:]); err != nil {
			return nil, err
		}
		payloadLen := int(header[1]&0x3)<<8 | int(header[2])
		body := make([]byte, payloadLen+3)
		if _, err := io.ReadFull(f.r, body); err != nil {
			return nil, err
		}
		return append(header, body...), nil
	}
}
