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
	"bytes"
	"fmt"
)

// DumpStructure generates an indented string representing a decoded payload
// structure for debugging purposes. Byte strings are summarized by length
// rather than dumped in full.
func DumpStructure(data any, prefix string) string {
	var ret bytes.Buffer
	switch v := data.(type) {
	case int, uint, int16, uint16, int32, uint32, int64, uint64:
		return fmt.Sprintf("%s0x%x (%d),\n", prefix, v, v)
	case string:
		return fmt.Sprintf("%s%q,\n", prefix, v)
	case []uint8:
		return fmt.Sprintf("%s<bytes> (length %d),\n", prefix, len(v))
	case []any:
		ret.WriteString(prefix + "[\n")
		for _, val := range v {
			ret.WriteString(DumpStructure(val, prefix+"  "))
		}
		ret.WriteString(prefix + "],\n")
	case map[any]any:
		ret.WriteString(prefix + "{\n")
		for key, val := range v {
			ret.WriteString(fmt.Sprintf("%s%#v =>\n", prefix+"  ", key))
			ret.WriteString(DumpStructure(val, prefix+"    "))
		}
		ret.WriteString(prefix + "},\n")
	default:
		return fmt.Sprintf("%s%#v,\n", prefix, v)
	}
	return ret.String()
}
