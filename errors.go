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

package ur

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// MalformedFragmentError indicates a fragment string that does not match the
// wire format: wrong segment count, bad header, or a bad sequence marker
type MalformedFragmentError struct {
	Reason string
}

func (e MalformedFragmentError) Error() string {
	return fmt.Sprintf("malformed fragment: %s", e.Reason)
}

// Sentinel error for malformed fragments so callers can use errors.Is
var ErrMalformedFragment = errors.New("malformed fragment")

func (MalformedFragmentError) Is(target error) bool {
	return target == ErrMalformedFragment
}

// SequenceInconsistencyError indicates a fragment that contradicts the
// message state built from previously accepted fragments
type SequenceInconsistencyError struct {
	Reason string
}

func (e SequenceInconsistencyError) Error() string {
	return fmt.Sprintf("sequence inconsistency: %s", e.Reason)
}

var ErrSequenceInconsistency = errors.New("sequence inconsistency")

func (SequenceInconsistencyError) Is(target error) bool {
	return target == ErrSequenceInconsistency
}

// DigestMismatchError indicates a reassembled payload whose hash disagrees
// with the digest declared in the fragments
type DigestMismatchError struct {
	Expected []byte
	Actual   []byte
}

func (e DigestMismatchError) Error() string {
	return fmt.Sprintf(
		"digest mismatch: declared %s, computed %s",
		hex.EncodeToString(e.Expected),
		hex.EncodeToString(e.Actual),
	)
}

var ErrDigestMismatch = errors.New("digest mismatch")

func (DigestMismatchError) Is(target error) bool {
	return target == ErrDigestMismatch
}

// IncompleteError indicates an attempt to read the payload before every
// fragment has arrived
type IncompleteError struct {
	Received int
	Total    int
}

func (e IncompleteError) Error() string {
	return fmt.Sprintf(
		"message incomplete: %d of %d fragments",
		e.Received,
		e.Total,
	)
}

var ErrIncomplete = errors.New("message incomplete")

func (IncompleteError) Is(target error) bool {
	return target == ErrIncomplete
}

// InvalidCapacityError indicates a fragment capacity of zero or less
type InvalidCapacityError struct {
	Capacity int
}

func (e InvalidCapacityError) Error() string {
	return fmt.Sprintf("invalid fragment capacity %d", e.Capacity)
}

var ErrInvalidCapacity = errors.New("invalid fragment capacity")

func (InvalidCapacityError) Is(target error) bool {
	return target == ErrInvalidCapacity
}

// InvalidTypeError indicates a payload type tag unusable in a fragment
// header
type InvalidTypeError struct {
	Type string
}

func (e InvalidTypeError) Error() string {
	return fmt.Sprintf("invalid payload type %q", e.Type)
}

var ErrInvalidType = errors.New("invalid payload type")

func (InvalidTypeError) Is(target error) bool {
	return target == ErrInvalidType
}

// ErrNoFragments is returned when decoding an empty fragment set
var ErrNoFragments = errors.New("no fragments to decode")
