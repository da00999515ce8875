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

// Package bc32 implements the checksummed base-32 text encoding used for
// fragment bodies and digests. It supports both the tagged form, where a
// human-readable tag and a separator prefix the data, and the tagless form
// used for raw payload chunks. The two forms finalize their checksums with
// different constants, so a string produced by one never verifies as the
// other.
package bc32

import (
	"strings"
)

const (
	charset        = "qpzry9x8gf2tvdw0s3jn54khce6mua7l"
	separator      = '1'
	checksumLength = 6
	// Tagged strings carry the tag, separator, data and checksum within
	// this combined limit
	maxTaggedLength = 90

	minTagChar = 33
	maxTagChar = 126
)

// Encoding identifies the checksum finalization constant for one of the two
// supported string forms
type Encoding uint32

const (
	// EncodingBech32 finalizes checksums for tagged strings
	EncodingBech32 Encoding = 1
	// EncodingBC32 finalizes checksums for tagless strings
	EncodingBC32 Encoding = 0x3fffffff
)

var generator = [5]uint32{
	0x3b6a57b2,
	0x26508e6d,
	0x1ea119fa,
	0x3d4233dd,
	0x2a1462b3,
}

// Reverse alphabet lookup, -1 for characters outside the charset
var charsetRev [128]int8

func init() {
	for i := range charsetRev {
		charsetRev[i] = -1
	}
	for i := 0; i < len(charset); i++ {
		charsetRev[charset[i]] = int8(i)
	}
}

// polymod runs the BCH checksum state machine over values, starting from the
// initial state of 1
func polymod(values []byte) uint32 {
	chk := uint32(1)
	for _, v := range values {
		b := chk >> 25
		chk = (chk&0x1ffffff)<<5 ^ uint32(v)
		for i := 0; i < 5; i++ {
			if (b>>uint(i))&1 == 1 {
				chk ^= generator[i]
			}
		}
	}
	return chk
}

// expandTag turns a tag into checksum input: the high halves of each
// character, a zero, then the low halves. An empty tag degenerates to a
// single zero
func expandTag(tag string) []byte {
	ret := make([]byte, 0, len(tag)*2+1)
	for i := 0; i < len(tag); i++ {
		ret = append(ret, tag[i]>>5)
	}
	ret = append(ret, 0)
	for i := 0; i < len(tag); i++ {
		ret = append(ret, tag[i]&31)
	}
	return ret
}

func createChecksum(tag string, data []byte, enc Encoding) []byte {
	values := append(expandTag(tag), data...)
	values = append(values, 0, 0, 0, 0, 0, 0)
	mod := polymod(values) ^ uint32(enc)
	ret := make([]byte, checksumLength)
	for i := range ret {
		ret[i] = byte(mod>>uint(5*(checksumLength-1-i))) & 31
	}
	return ret
}

func verifyChecksum(tag string, values []byte, enc Encoding) bool {
	return polymod(append(expandTag(tag), values...)) == uint32(enc)
}

// Encode converts data, a sequence of 5-bit values, into a checksummed
// string finalized with enc. A non-empty tag is prefixed along with the
// separator and folded to lower case before the checksum is computed. Tag
// characters must be printable ASCII.
func Encode(tag string, data []byte, enc Encoding) (string, error) {
	for i := 0; i < len(tag); i++ {
		if tag[i] < minTagChar || tag[i] > maxTagChar {
			return "", InvalidTagError{Tag: tag}
		}
	}
	tag = strings.ToLower(tag)
	for i, v := range data {
		if v > 31 {
			return "", InvalidDataValueError{Value: int(v), Pos: i}
		}
	}
	var sb strings.Builder
	sb.Grow(len(tag) + 1 + len(data) + checksumLength)
	if tag != "" {
		sb.WriteString(tag)
		sb.WriteByte(separator)
	}
	for _, v := range data {
		sb.WriteByte(charset[v])
	}
	for _, v := range createChecksum(tag, data, enc) {
		sb.WriteByte(charset[v])
	}
	return sb.String(), nil
}

// Decode parses a checksummed string and returns its tag and data as 5-bit
// values, with the checksum symbols stripped. The form is inferred from the
// presence of a separator: tagless strings verify against the tagless
// constant, tagged strings against the tagged one. Upper and lower case are
// both accepted but must not be mixed, and results are reported in lower
// case.
func Decode(encoded string) (string, []byte, error) {
	var hasLower, hasUpper bool
	for i := 0; i < len(encoded); i++ {
		c := encoded[i]
		if c < minTagChar || c > maxTagChar {
			return "", nil, InvalidCharError{Char: c, Pos: i}
		}
		if c >= 'a' && c <= 'z' {
			hasLower = true
		} else if c >= 'A' && c <= 'Z' {
			hasUpper = true
		}
	}
	if hasLower && hasUpper {
		return "", nil, MixedCaseError{}
	}
	encoded = strings.ToLower(encoded)
	tag := ""
	data := encoded
	enc := EncodingBC32
	// The last separator splits tag from data. Earlier separators are
	// legal tag characters.
	if sep := strings.LastIndexByte(encoded, separator); sep != -1 {
		if sep == 0 {
			return "", nil, InvalidTagError{Tag: ""}
		}
		if len(encoded) > maxTaggedLength {
			return "", nil, InvalidLengthError{Length: len(encoded)}
		}
		tag = encoded[:sep]
		data = encoded[sep+1:]
		enc = EncodingBech32
	}
	if len(data) < checksumLength {
		return "", nil, InvalidLengthError{Length: len(encoded)}
	}
	offset := len(encoded) - len(data)
	values := make([]byte, len(data))
	for i := 0; i < len(data); i++ {
		v := charsetRev[data[i]]
		if v == -1 {
			return "", nil, InvalidCharError{
				Char: data[i],
				Pos:  offset + i,
			}
		}
		values[i] = byte(v)
	}
	if !verifyChecksum(tag, values, enc) {
		return "", nil, ChecksumError{}
	}
	return tag, values[:len(values)-checksumLength], nil
}

// ValidChars reports the first character of s outside the encoding alphabet
// as an error. Case is folded before the check.
func ValidChars(s string) error {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c >= 128 || charsetRev[c] == -1 {
			return InvalidCharError{Char: s[i], Pos: i}
		}
	}
	return nil
}

// EncodeBytes encodes raw bytes as a tagless string. The bytes are regrouped
// into 5-bit values, padding the final group with zero bits.
func EncodeBytes(raw []byte) (string, error) {
	conv, err := ConvertBits(raw, 8, 5, true)
	if err != nil {
		return "", err
	}
	return Encode("", conv, EncodingBC32)
}

// DecodeBytes reverses EncodeBytes, regrouping the 5-bit values back into
// bytes in strict mode. Tagged input is rejected.
func DecodeBytes(encoded string) ([]byte, error) {
	tag, data, err := Decode(encoded)
	if err != nil {
		return nil, err
	}
	if tag != "" {
		return nil, InvalidTagError{Tag: tag}
	}
	return ConvertBits(data, 5, 8, false)
}
