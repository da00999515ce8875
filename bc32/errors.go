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

package bc32

import (
	"errors"
	"fmt"
)

// InvalidCharError indicates a character outside the encoding alphabet
type InvalidCharError struct {
	Char byte
	Pos  int
}

func (e InvalidCharError) Error() string {
	return fmt.Sprintf("invalid character %q at position %d", e.Char, e.Pos)
}

// Sentinel error for invalid characters so callers can use errors.Is
var ErrInvalidChar = errors.New("invalid character")

func (InvalidCharError) Is(target error) bool {
	return target == ErrInvalidChar
}

// MixedCaseError indicates a string using both upper and lower case
type MixedCaseError struct{}

func (MixedCaseError) Error() string {
	return "string must not mix upper and lower case"
}

var ErrMixedCase = errors.New("mixed case string")

func (MixedCaseError) Is(target error) bool {
	return target == ErrMixedCase
}

// ChecksumError indicates a failed checksum verification
type ChecksumError struct{}

func (ChecksumError) Error() string {
	return "checksum verification failed"
}

var ErrChecksum = errors.New("checksum verification failed")

func (ChecksumError) Is(target error) bool {
	return target == ErrChecksum
}

// InvalidLengthError indicates an encoded string whose length violates the
// limits for its form
type InvalidLengthError struct {
	Length int
}

func (e InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid encoded string length %d", e.Length)
}

var ErrInvalidLength = errors.New("invalid encoded string length")

func (InvalidLengthError) Is(target error) bool {
	return target == ErrInvalidLength
}

// InvalidTagError indicates a missing or malformed human-readable tag
type InvalidTagError struct {
	Tag string
}

func (e InvalidTagError) Error() string {
	return fmt.Sprintf("invalid tag %q", e.Tag)
}

var ErrInvalidTag = errors.New("invalid tag")

func (InvalidTagError) Is(target error) bool {
	return target == ErrInvalidTag
}

// InvalidDataValueError indicates an input value that does not fit the
// declared bit width
type InvalidDataValueError struct {
	Value int
	Pos   int
}

func (e InvalidDataValueError) Error() string {
	return fmt.Sprintf(
		"invalid data value %d at position %d",
		e.Value,
		e.Pos,
	)
}

var ErrInvalidDataValue = errors.New("invalid data value")

func (InvalidDataValueError) Is(target error) bool {
	return target == ErrInvalidDataValue
}

// BitWidthError indicates a bit group size outside the supported 1-8 range
type BitWidthError struct {
	FromBits uint8
	ToBits   uint8
}

func (e BitWidthError) Error() string {
	return fmt.Sprintf(
		"bit group sizes must be 1-8: from %d to %d",
		e.FromBits,
		e.ToBits,
	)
}

var ErrInvalidBitWidth = errors.New("invalid bit group size")

func (BitWidthError) Is(target error) bool {
	return target == ErrInvalidBitWidth
}

// IncompleteGroupError indicates residual bits that cannot be regrouped
// without loss in strict (non-padding) mode
type IncompleteGroupError struct {
	Bits uint8
}

func (e IncompleteGroupError) Error() string {
	return fmt.Sprintf("incomplete group of %d residual bits", e.Bits)
}

var ErrIncompleteGroup = errors.New("incomplete bit group")

func (IncompleteGroupError) Is(target error) bool {
	return target == ErrIncompleteGroup
}
