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

package cbor

import (
	"encoding/binary"
	"math"
)

const (
	// Byte string major type with the length encoded in the header itself
	CborTypeByteString uint8 = 0x40
	// Byte string major type with a 1-byte length argument
	CborTypeByteStringUint8 uint8 = 0x58
	// Byte string major type with a 2-byte big-endian length argument
	CborTypeByteStringUint16 uint8 = 0x59
	// Byte string form with a 4-byte big-endian length argument. Standard
	// CBOR assigns this form 0x5a, but the established wire format shipped
	// with 0x60 and both sides must keep using it.
	CborTypeByteStringUint32 uint8 = 0x60

	// Max value able to be stored in the header byte without a length
	// argument
	CborMaxUintSimple uint8 = 0x17
)

// Wrap prefixes payload with a self-describing byte string header declaring
// its length. The header form is chosen by the payload size: lengths up to 23
// are folded into the header byte, larger lengths get a 1, 2 or 4 byte
// big-endian length argument. Empty payloads and payloads of 2^32 bytes or
// more are rejected.
func Wrap(payload []byte) ([]byte, error) {
	size := uint64(len(payload))
	var header []byte
	switch {
	case size == 0:
		return nil, LengthOutOfRangeError{Length: size}
	case size <= uint64(CborMaxUintSimple):
		header = []byte{CborTypeByteString + uint8(size)}
	case size <= math.MaxUint8:
		header = []byte{CborTypeByteStringUint8, uint8(size)}
	case size <= math.MaxUint16:
		header = make([]byte, 3)
		header[0] = CborTypeByteStringUint16
		binary.BigEndian.PutUint16(header[1:], uint16(size))
	case size <= math.MaxUint32:
		header = make([]byte, 5)
		header[0] = CborTypeByteStringUint32
		binary.BigEndian.PutUint32(header[1:], uint32(size))
	default:
		return nil, LengthOutOfRangeError{Length: size}
	}
	ret := make([]byte, 0, len(header)+len(payload))
	ret = append(ret, header...)
	return append(ret, payload...), nil
}

// Unwrap removes the byte string header added by Wrap and returns the
// payload. The byte count must match the declared length exactly: missing
// bytes and trailing bytes are both rejected, as is a declared length of
// zero. Non-minimal headers, where a longer form declares a length a shorter
// form could hold, are accepted.
func Unwrap(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, TruncatedError{Expected: 1, Actual: 0}
	}
	header := data[0]
	var size uint64
	var offset uint64
	switch {
	case header == CborTypeByteString:
		return nil, LengthOutOfRangeError{Length: 0}
	case header > CborTypeByteString &&
		header <= CborTypeByteString+CborMaxUintSimple:
		size = uint64(header - CborTypeByteString)
		offset = 1
	case header == CborTypeByteStringUint8:
		offset = 2
		if uint64(len(data)) < offset {
			return nil, TruncatedError{
				Expected: offset,
				Actual:   uint64(len(data)),
			}
		}
		size = uint64(data[1])
	case header == CborTypeByteStringUint16:
		offset = 3
		if uint64(len(data)) < offset {
			return nil, TruncatedError{
				Expected: offset,
				Actual:   uint64(len(data)),
			}
		}
		size = uint64(binary.BigEndian.Uint16(data[1:3]))
	case header == CborTypeByteStringUint32:
		offset = 5
		if uint64(len(data)) < offset {
			return nil, TruncatedError{
				Expected: offset,
				Actual:   uint64(len(data)),
			}
		}
		size = uint64(binary.BigEndian.Uint32(data[1:5]))
	default:
		return nil, HeaderByteError{Byte: header}
	}
	if size == 0 {
		return nil, LengthOutOfRangeError{Length: 0}
	}
	expected := offset + size
	actual := uint64(len(data))
	if actual < expected {
		return nil, TruncatedError{Expected: expected, Actual: actual}
	}
	if actual > expected {
		return nil, TrailingDataError{Extra: actual - expected}
	}
	return data[offset:], nil
}
