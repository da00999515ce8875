// Copyright 2025 Airgap Kit
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cbor_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/airgapkit/go-ur/cbor"
	"github.com/airgapkit/go-ur/internal/test"
)

type wrapTestDefinition struct {
	PayloadLen int
	Header     []byte
}

var wrapTests = []wrapTestDefinition{
	// Lengths up to 23 fold into the header byte
	{
		PayloadLen: 1,
		Header:     test.DecodeHexString("41"),
	},
	{
		PayloadLen: 5,
		Header:     test.DecodeHexString("45"),
	},
	{
		PayloadLen: 23,
		Header:     test.DecodeHexString("57"),
	},
	// 1-byte length argument
	{
		PayloadLen: 24,
		Header:     test.DecodeHexString("5818"),
	},
	{
		PayloadLen: 255,
		Header:     test.DecodeHexString("58ff"),
	},
	// 2-byte length argument
	{
		PayloadLen: 256,
		Header:     test.DecodeHexString("590100"),
	},
	{
		PayloadLen: 65535,
		Header:     test.DecodeHexString("59ffff"),
	},
	// Historical 4-byte form
	{
		PayloadLen: 65536,
		Header:     test.DecodeHexString("6000010000"),
	},
}

func TestWrap(t *testing.T) {
	for _, test := range wrapTests {
		payload := bytes.Repeat([]byte{0xab}, test.PayloadLen)
		wrapped, err := cbor.Wrap(payload)
		if err != nil {
			t.Fatalf("failed to wrap %d bytes: %s", test.PayloadLen, err)
		}
		if len(wrapped) != len(test.Header)+test.PayloadLen {
			t.Fatalf(
				"unexpected wrapped length for %d byte payload: %d",
				test.PayloadLen,
				len(wrapped),
			)
		}
		if !bytes.Equal(wrapped[:len(test.Header)], test.Header) {
			t.Fatalf(
				"did not get expected header for %d byte payload\n  got: %x\n  wanted: %x",
				test.PayloadLen,
				wrapped[:len(test.Header)],
				test.Header,
			)
		}
		unwrapped, err := cbor.Unwrap(wrapped)
		if err != nil {
			t.Fatalf("failed to unwrap %d byte payload: %s", test.PayloadLen, err)
		}
		if !bytes.Equal(unwrapped, payload) {
			t.Fatalf("round trip mismatch for %d byte payload", test.PayloadLen)
		}
	}
}

func TestWrapKnownBytes(t *testing.T) {
	wrapped, err := cbor.Wrap([]byte{0x01})
	if err != nil {
		t.Fatalf("failed to wrap: %s", err)
	}
	if !bytes.Equal(wrapped, test.DecodeHexString("4101")) {
		t.Fatalf("unexpected wrapped bytes: %x", wrapped)
	}
}

func TestWrapEmptyPayload(t *testing.T) {
	if _, err := cbor.Wrap(nil); !errors.Is(err, cbor.ErrLengthOutOfRange) {
		t.Fatalf("expected length error for nil payload, got: %v", err)
	}
	if _, err := cbor.Wrap([]byte{}); !errors.Is(err, cbor.ErrLengthOutOfRange) {
		t.Fatalf("expected length error for empty payload, got: %v", err)
	}
}

type unwrapErrorTestDefinition struct {
	Data []byte
	Err  error
}

var unwrapErrorTests = []unwrapErrorTestDefinition{
	// Empty input
	{
		Data: []byte{},
		Err:  cbor.ErrTruncated,
	},
	// Zero length folded into the header byte
	{
		Data: test.DecodeHexString("40"),
		Err:  cbor.ErrLengthOutOfRange,
	},
	// Declared zero length
	{
		Data: test.DecodeHexString("5800"),
		Err:  cbor.ErrLengthOutOfRange,
	},
	{
		Data: test.DecodeHexString("590000"),
		Err:  cbor.ErrLengthOutOfRange,
	},
	// Standard CBOR 4-byte length header is not part of this envelope
	{
		Data: test.DecodeHexString("5a00010000"),
		Err:  cbor.ErrHeaderByte,
	},
	// Indefinite length byte string
	{
		Data: test.DecodeHexString("5f"),
		Err:  cbor.ErrHeaderByte,
	},
	// Unsigned integer header
	{
		Data: test.DecodeHexString("00"),
		Err:  cbor.ErrHeaderByte,
	},
	// One past the 4-byte form
	{
		Data: test.DecodeHexString("61"),
		Err:  cbor.ErrHeaderByte,
	},
	// Fewer payload bytes than declared
	{
		Data: test.DecodeHexString("4201"),
		Err:  cbor.ErrTruncated,
	},
	// Missing length argument bytes
	{
		Data: test.DecodeHexString("58"),
		Err:  cbor.ErrTruncated,
	},
	{
		Data: test.DecodeHexString("59ff"),
		Err:  cbor.ErrTruncated,
	},
	{
		Data: test.DecodeHexString("60000100"),
		Err:  cbor.ErrTruncated,
	},
	// Bytes beyond the declared length
	{
		Data: test.DecodeHexString("410102"),
		Err:  cbor.ErrTrailingData,
	},
}

func TestUnwrapErrors(t *testing.T) {
	for _, test := range unwrapErrorTests {
		_, err := cbor.Unwrap(test.Data)
		if err == nil {
			t.Fatalf("expected error unwrapping %x, got none", test.Data)
		}
		if !errors.Is(err, test.Err) {
			t.Fatalf(
				"did not get expected error for %x\n  got: %s\n  wanted: %s",
				test.Data,
				err,
				test.Err,
			)
		}
	}
}

// Longer length forms than the payload requires stay decodable
func TestUnwrapNonMinimal(t *testing.T) {
	payload := []byte("hello")
	encodings := [][]byte{
		test.DecodeHexString("4568656c6c6f"),
		test.DecodeHexString("580568656c6c6f"),
		test.DecodeHexString("59000568656c6c6f"),
		test.DecodeHexString("600000000568656c6c6f"),
	}
	for _, data := range encodings {
		unwrapped, err := cbor.Unwrap(data)
		if err != nil {
			t.Fatalf("failed to unwrap %x: %s", data, err)
		}
		if !bytes.Equal(unwrapped, payload) {
			t.Fatalf(
				"did not get expected payload for %x\n  got: %x\n  wanted: %x",
				data,
				unwrapped,
				payload,
			)
		}
	}
}

// For lengths below the divergence point the envelope must agree byte for
// byte with a standard CBOR byte string
func TestWrapMatchesStandardCbor(t *testing.T) {
	for _, size := range []int{1, 23, 24, 255, 256, 65535} {
		payload := bytes.Repeat([]byte{0x7e}, size)
		wrapped, err := cbor.Wrap(payload)
		if err != nil {
			t.Fatalf("failed to wrap %d bytes: %s", size, err)
		}
		standard, err := cbor.Encode(payload)
		if err != nil {
			t.Fatalf("failed to encode %d bytes as CBOR: %s", size, err)
		}
		if !bytes.Equal(wrapped, standard) {
			t.Fatalf(
				"envelope disagrees with standard CBOR for %d byte payload",
				size,
			)
		}
	}
}

// The 4-byte length form is the single point where the envelope departs from
// standard CBOR
func TestWrapDivergesAtUint32Length(t *testing.T) {
	payload := make([]byte, 65536)
	wrapped, err := cbor.Wrap(payload)
	if err != nil {
		t.Fatalf("failed to wrap: %s", err)
	}
	standard, err := cbor.Encode(payload)
	if err != nil {
		t.Fatalf("failed to encode as CBOR: %s", err)
	}
	if wrapped[0] != 0x60 {
		t.Fatalf("expected envelope header 0x60, got 0x%02x", wrapped[0])
	}
	if standard[0] != 0x5a {
		t.Fatalf("expected standard header 0x5a, got 0x%02x", standard[0])
	}
	if !bytes.Equal(wrapped[1:], standard[1:]) {
		t.Fatal("envelope and standard CBOR differ beyond the header byte")
	}
	// The standard form is rejected while the historical form round trips
	if _, err := cbor.Unwrap(standard); !errors.Is(err, cbor.ErrHeaderByte) {
		t.Fatalf("expected header byte error for standard form, got: %v", err)
	}
	unwrapped, err := cbor.Unwrap(wrapped)
	if err != nil {
		t.Fatalf("failed to unwrap: %s", err)
	}
	if !bytes.Equal(unwrapped, payload) {
		t.Fatal("round trip mismatch for 4-byte length form")
	}
}
