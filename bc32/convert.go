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

// ConvertBits regroups data from fromBits-wide values into toBits-wide
// values, accumulating bits most significant first. Both widths must be
// between 1 and 8, and every input value must fit in fromBits. With pad set,
// residual bits are flushed as a final value padded with zero bits on the
// right. Without pad, the residue must be shorter than fromBits and all
// zero, which holds exactly when the input was produced by a padded
// conversion in the other direction.
func ConvertBits(data []byte, fromBits, toBits uint8, pad bool) ([]byte, error) {
	if fromBits < 1 || fromBits > 8 || toBits < 1 || toBits > 8 {
		return nil, BitWidthError{FromBits: fromBits, ToBits: toBits}
	}
	var acc uint32
	var bits uint8
	maxv := byte(1<<toBits - 1)
	ret := make([]byte, 0, (len(data)*int(fromBits)+int(toBits)-1)/int(toBits))
	for i, v := range data {
		if uint32(v)>>fromBits != 0 {
			return nil, InvalidDataValueError{Value: int(v), Pos: i}
		}
		acc = acc<<fromBits | uint32(v)
		bits += fromBits
		for bits >= toBits {
			bits -= toBits
			ret = append(ret, byte(acc>>bits)&maxv)
		}
	}
	if pad {
		if bits > 0 {
			ret = append(ret, byte(acc<<(toBits-bits))&maxv)
		}
	} else if bits >= fromBits || byte(acc<<(toBits-bits))&maxv != 0 {
		return nil, IncompleteGroupError{Bits: bits}
	}
	return ret, nil
}
