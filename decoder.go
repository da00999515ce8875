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
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"strings"

	"github.com/airgapkit/go-ur/bc32"
	"github.com/airgapkit/go-ur/cbor"

	"github.com/creachadair/mds/mapset"
)

// Decoder accumulates fragments for one logical message until every part has
// arrived, then reassembles the payload. Fragments may arrive in any order
// and the same fragment may be delivered any number of times, as happens when
// a camera keeps scanning a repeating animation. A Decoder tracks exactly one
// message: create a fresh one for the next message or after a failure. It is
// not safe for concurrent use, a caller feeding it from several goroutines
// must serialize Add calls.
type Decoder struct {
	urType string
	logger *slog.Logger

	total     int
	digest    []byte
	fragments map[int]string
	seen      mapset.Set[string]
	payload   []byte
}

// DecoderOptionFunc is a type that represents functions that modify the
// Decoder config
type DecoderOptionFunc func(*Decoder)

// WithDecoderType specifies the payload type tag every fragment header must
// carry. The default is DefaultType.
func WithDecoderType(urType string) DecoderOptionFunc {
	return func(d *Decoder) {
		d.urType = urType
	}
}

// WithLogger specifies the logger for accumulation progress. The default is
// slog.Default().
func WithLogger(logger *slog.Logger) DecoderOptionFunc {
	return func(d *Decoder) {
		d.logger = logger
	}
}

// NewDecoder returns a new Decoder with the provided options applied
func NewDecoder(options ...DecoderOptionFunc) *Decoder {
	d := &Decoder{
		urType:    DefaultType,
		fragments: map[int]string{},
		seen:      mapset.New[string](),
	}
	for _, option := range options {
		option(d)
	}
	if d.logger == nil {
		d.logger = slog.Default()
	}
	return d
}

// Add feeds one fragment string into the accumulator and reports whether the
// message is now complete. The first accepted fragment fixes the expected
// total and digest, and later fragments must agree with them. Re-delivery of
// an already accepted fragment is a no-op. When the final fragment arrives,
// Add reassembles and verifies the whole message before reporting
// completion, so a corrupt message surfaces its error here. Fragments added
// after completion are ignored.
func (d *Decoder) Add(fragment string) (bool, error) {
	if d.payload != nil {
		return true, nil
	}
	urType, err := normalizeType(d.urType)
	if err != nil {
		return false, err
	}
	frag, err := ParseFragment(fragment, urType)
	if err != nil {
		return false, err
	}
	normalized := strings.ToLower(fragment)
	if d.seen.Has(normalized) {
		return false, nil
	}
	if d.total == 0 {
		d.total = frag.Total
		d.digest = frag.Digest
	} else {
		if frag.Total != d.total {
			return false, SequenceInconsistencyError{
				Reason: fmt.Sprintf(
					"fragment declares %d parts, message has %d",
					frag.Total,
					d.total,
				),
			}
		}
		if frag.Digest != nil && d.digest != nil &&
			!bytes.Equal(frag.Digest, d.digest) {
			return false, SequenceInconsistencyError{
				Reason: "digest disagrees with previously recorded digest",
			}
		}
	}
	if existing, ok := d.fragments[frag.Index]; ok {
		if existing != frag.Body {
			return false, SequenceInconsistencyError{
				Reason: fmt.Sprintf(
					"index %d already holds different content",
					frag.Index,
				),
			}
		}
		return false, nil
	}
	d.seen.Add(normalized)
	d.fragments[frag.Index] = frag.Body
	d.logger.Debug(
		"fragment accepted",
		"type",
		urType,
		"index",
		frag.Index,
		"received",
		len(d.fragments),
		"total",
		d.total,
	)
	if len(d.fragments) < d.total {
		return false, nil
	}
	payload, err := d.assemble()
	if err != nil {
		return false, err
	}
	d.payload = payload
	return true, nil
}

// Complete returns whether the payload has been fully reassembled
func (d *Decoder) Complete() bool {
	return d.payload != nil
}

// Received returns the number of distinct fragments accumulated so far
func (d *Decoder) Received() int {
	return len(d.fragments)
}

// Total returns the expected fragment count, or 0 before the first fragment
// has been accepted
func (d *Decoder) Total() int {
	return d.total
}

// Payload returns the reassembled payload. Before every fragment has arrived
// it returns an IncompleteError carrying the current progress.
func (d *Decoder) Payload() ([]byte, error) {
	if d.payload != nil {
		return d.payload, nil
	}
	if d.total == 0 || len(d.fragments) < d.total {
		return nil, IncompleteError{
			Received: len(d.fragments),
			Total:    d.total,
		}
	}
	payload, err := d.assemble()
	if err != nil {
		return nil, err
	}
	d.payload = payload
	return payload, nil
}

// assemble joins the accumulated bodies in index order, decodes the full
// text encoding, checks the declared digest when one was recorded, and
// removes the length envelope
func (d *Decoder) assemble() ([]byte, error) {
	var sb strings.Builder
	for i := 1; i <= d.total; i++ {
		body, ok := d.fragments[i]
		if !ok {
			return nil, IncompleteError{
				Received: len(d.fragments),
				Total:    d.total,
			}
		}
		sb.WriteString(body)
	}
	wrapped, err := bc32.DecodeBytes(sb.String())
	if err != nil {
		return nil, err
	}
	if d.digest != nil {
		actual := sha256.Sum256(wrapped)
		if !bytes.Equal(actual[:], d.digest) {
			return nil, DigestMismatchError{
				Expected: d.digest,
				Actual:   actual[:],
			}
		}
	}
	return cbor.Unwrap(wrapped)
}

// Decode reassembles a payload from a complete fragment set using the
// default payload type. Fragments may be in any order. Use a Decoder
// directly for custom payload types or incremental arrival.
func Decode(fragments []string) ([]byte, error) {
	if len(fragments) == 0 {
		return nil, ErrNoFragments
	}
	d := NewDecoder()
	for _, fragment := range fragments {
		if _, err := d.Add(fragment); err != nil {
			return nil, err
		}
	}
	return d.Payload()
}
