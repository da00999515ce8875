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
	"errors"
	"fmt"
)

// LengthOutOfRangeError indicates a payload length outside the supported
// 1 to 2^32-1 range
type LengthOutOfRangeError struct {
	Length uint64
}

func (e LengthOutOfRangeError) Error() string {
	return fmt.Sprintf("payload length %d out of range", e.Length)
}

// Sentinel error for out of range lengths so callers can use errors.Is
var ErrLengthOutOfRange = errors.New("payload length out of range")

func (LengthOutOfRangeError) Is(target error) bool {
	return target == ErrLengthOutOfRange
}

// HeaderByteError indicates an envelope header byte outside the recognized
// byte string forms
type HeaderByteError struct {
	Byte byte
}

func (e HeaderByteError) Error() string {
	return fmt.Sprintf("unrecognized envelope header byte 0x%02x", e.Byte)
}

var ErrHeaderByte = errors.New("unrecognized envelope header byte")

func (HeaderByteError) Is(target error) bool {
	return target == ErrHeaderByte
}

// TruncatedError indicates fewer bytes than the envelope header declares
type TruncatedError struct {
	Expected uint64
	Actual   uint64
}

func (e TruncatedError) Error() string {
	return fmt.Sprintf(
		"truncated envelope: need %d bytes, have %d",
		e.Expected,
		e.Actual,
	)
}

var ErrTruncated = errors.New("truncated envelope")

func (TruncatedError) Is(target error) bool {
	return target == ErrTruncated
}

// TrailingDataError indicates bytes beyond the declared payload length
type TrailingDataError struct {
	Extra uint64
}

func (e TrailingDataError) Error() string {
	return fmt.Sprintf("%d trailing bytes after envelope payload", e.Extra)
}

var ErrTrailingData = errors.New("trailing bytes after envelope payload")

func (TrailingDataError) Is(target error) bool {
	return target == ErrTrailingData
}
