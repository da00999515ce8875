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
	"fmt"
	"strconv"
	"strings"

	"github.com/airgapkit/go-ur/bc32"
)

const schemePrefix = "ur:"

// Fragment is the parsed form of one wire format string. Index and Total are
// 1-based and both 1 for an unsequenced fragment. Digest is nil when the
// fragment carries none.
type Fragment struct {
	Type   string
	Index  int
	Total  int
	Digest []byte
	Body   string
}

// ParseFragment parses and validates a single fragment string against the
// expected payload type. Case is normalized once here: the input may be all
// upper or all lower case, and every field of the result is lower case. The
// digest segment, when present, is fully decoded and checked. The body is
// checked against the encoding alphabet but not decoded, since the body of a
// sequenced fragment is only a slice of the full encoded string.
func ParseFragment(fragment string, urType string) (*Fragment, error) {
	urType, err := normalizeType(urType)
	if err != nil {
		return nil, err
	}
	var hasLower, hasUpper bool
	for i := 0; i < len(fragment); i++ {
		c := fragment[i]
		if c >= 'a' && c <= 'z' {
			hasLower = true
		} else if c >= 'A' && c <= 'Z' {
			hasUpper = true
		}
	}
	if hasLower && hasUpper {
		return nil, bc32.MixedCaseError{}
	}
	fragment = strings.ToLower(fragment)
	parts := strings.Split(fragment, "/")
	if len(parts) < 2 || len(parts) > 4 {
		return nil, MalformedFragmentError{
			Reason: fmt.Sprintf("expected 2 to 4 segments, found %d", len(parts)),
		}
	}
	expectedHeader := schemePrefix + urType
	if parts[0] != expectedHeader {
		return nil, MalformedFragmentError{
			Reason: fmt.Sprintf(
				"header %q does not match %q",
				parts[0],
				expectedHeader,
			),
		}
	}
	ret := &Fragment{
		Type:  urType,
		Index: 1,
		Total: 1,
		Body:  parts[len(parts)-1],
	}
	if err := bc32.ValidChars(ret.Body); err != nil {
		return nil, err
	}
	switch len(parts) {
	case 3:
		if err := ret.decodeDigest(parts[1]); err != nil {
			return nil, err
		}
	case 4:
		index, total, err := parseSequenceMarker(parts[1])
		if err != nil {
			return nil, err
		}
		ret.Index = index
		ret.Total = total
		if err := ret.decodeDigest(parts[2]); err != nil {
			return nil, err
		}
	}
	return ret, nil
}

func (f *Fragment) decodeDigest(encoded string) error {
	digest, err := bc32.DecodeBytes(encoded)
	if err != nil {
		return err
	}
	if len(digest) != sha256.Size {
		return MalformedFragmentError{
			Reason: fmt.Sprintf(
				"digest is %d bytes, expected %d",
				len(digest),
				sha256.Size,
			),
		}
	}
	f.Digest = digest
	return nil
}

// parseSequenceMarker splits a marker of the shape <index>of<total> into its
// two counters. The index is 1-based and must not exceed the total.
func parseSequenceMarker(marker string) (int, int, error) {
	pieces := strings.Split(marker, "of")
	if len(pieces) != 2 || !allDigits(pieces[0]) || !allDigits(pieces[1]) {
		return 0, 0, MalformedFragmentError{
			Reason: fmt.Sprintf("bad sequence marker %q", marker),
		}
	}
	index, err := strconv.Atoi(pieces[0])
	if err != nil {
		return 0, 0, MalformedFragmentError{
			Reason: fmt.Sprintf("bad sequence marker %q", marker),
		}
	}
	total, err := strconv.Atoi(pieces[1])
	if err != nil {
		return 0, 0, MalformedFragmentError{
			Reason: fmt.Sprintf("bad sequence marker %q", marker),
		}
	}
	if index < 1 || total < 1 || index > total {
		return 0, 0, MalformedFragmentError{
			Reason: fmt.Sprintf("sequence marker %q out of range", marker),
		}
	}
	return index, total, nil
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// composeFragments renders body chunks as fragment strings. A single chunk
// produces the short digest-free form in lower case. Multiple chunks each
// carry a sequence marker and the digest, and are upper cased for denser QR
// encoding.
func composeFragments(urType string, digest string, chunks []string) []string {
	if len(chunks) == 1 {
		return []string{schemePrefix + urType + "/" + chunks[0]}
	}
	ret := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		fragment := fmt.Sprintf(
			"%s%s/%dof%d/%s/%s",
			schemePrefix,
			urType,
			i+1,
			len(chunks),
			digest,
			chunk,
		)
		ret = append(ret, strings.ToUpper(fragment))
	}
	return ret
}

// normalizeType folds a payload type tag to lower case and validates it for
// use in a fragment header. Types use letters, digits and hyphens.
func normalizeType(urType string) (string, error) {
	if urType == "" {
		return "", InvalidTypeError{Type: urType}
	}
	urType = strings.ToLower(urType)
	for i := 0; i < len(urType); i++ {
		c := urType[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' {
			continue
		}
		return "", InvalidTypeError{Type: urType}
	}
	return urType, nil
}
