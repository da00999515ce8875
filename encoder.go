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
	"crypto/sha256"

	"github.com/airgapkit/go-ur/bc32"
	"github.com/airgapkit/go-ur/cbor"
)

// Encoder turns payloads into fragment strings. The zero value is not usable,
// use NewEncoder. An Encoder is stateless across calls and may be reused for
// any number of payloads.
type Encoder struct {
	urType           string
	fragmentCapacity int
}

// EncoderOptionFunc is a type that represents functions that modify the
// Encoder config
type EncoderOptionFunc func(*Encoder)

// WithEncoderType specifies the payload type tag placed in every fragment
// header. The default is DefaultType.
func WithEncoderType(urType string) EncoderOptionFunc {
	return func(e *Encoder) {
		e.urType = urType
	}
}

// WithFragmentCapacity specifies the largest number of body characters per
// fragment. The default is DefaultFragmentCapacity.
func WithFragmentCapacity(capacity int) EncoderOptionFunc {
	return func(e *Encoder) {
		e.fragmentCapacity = capacity
	}
}

// NewEncoder returns a new Encoder with the provided options applied
func NewEncoder(options ...EncoderOptionFunc) *Encoder {
	e := &Encoder{
		urType:           DefaultType,
		fragmentCapacity: DefaultFragmentCapacity,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Encode converts payload into an ordered list of fragment strings. The
// payload is wrapped in its length envelope, text encoded as a single
// checksummed string, and the string is split into capacity sized chunks. One
// chunk yields a single bare fragment. More than one chunk yields sequenced
// fragments that each carry the digest of the wrapped payload.
func (e *Encoder) Encode(payload []byte) ([]string, error) {
	if e.fragmentCapacity <= 0 {
		return nil, InvalidCapacityError{Capacity: e.fragmentCapacity}
	}
	urType, err := normalizeType(e.urType)
	if err != nil {
		return nil, err
	}
	wrapped, err := cbor.Wrap(payload)
	if err != nil {
		return nil, err
	}
	body, err := bc32.EncodeBytes(wrapped)
	if err != nil {
		return nil, err
	}
	chunks := chunkString(body, e.fragmentCapacity)
	if len(chunks) == 1 {
		return composeFragments(urType, "", chunks), nil
	}
	digestBytes := sha256.Sum256(wrapped)
	digest, err := bc32.EncodeBytes(digestBytes[:])
	if err != nil {
		return nil, err
	}
	return composeFragments(urType, digest, chunks), nil
}

// Encode converts payload into fragment strings using the default type and
// fragment capacity
func Encode(payload []byte) ([]string, error) {
	return NewEncoder().Encode(payload)
}

// chunkString splits s into consecutive pieces of at most size characters.
// The last piece holds the remainder.
func chunkString(s string, size int) []string {
	chunks := make([]string, 0, (len(s)+size-1)/size)
	for len(s) > size {
		chunks = append(chunks, s[:size])
		s = s[size:]
	}
	return append(chunks, s)
}
