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

// Package ur transports binary payloads through text-only channels such as
// animated QR codes, using the legacy uniform resource wire format.
//
// Encoding wraps the payload in a self-describing length envelope, text
// encodes the result as a single checksummed base-32 string, and splits that
// string into fragments of the shape
//
//	ur:<type>/<body>
//	ur:<type>/<digest>/<body>
//	ur:<type>/<index>of<total>/<digest>/<body>
//
// where the digest is the text encoded SHA-256 hash of the enveloped
// payload. A payload that fits one fragment uses the first shape. Larger
// payloads use the third shape for every fragment, so a receiver can collect
// them in any order and verify the reassembled whole. The second shape is
// accepted on decode only.
//
// Fragment strings are case-insensitive but never mix cases. Multi-part
// fragments are emitted in upper case, which QR encoders store in the denser
// alphanumeric mode.
//
// All operations are synchronous and CPU-bound. An Encoder is stateless. A
// Decoder holds the accumulation state for one message and expects one
// caller, see its documentation for details.
package ur

const (
	// DefaultType is the payload type tag used when none is configured
	DefaultType = "bytes"
	// DefaultFragmentCapacity is the largest number of body characters per
	// fragment when no capacity is configured. At this size a multi-part
	// fragment stays well within a version 16 QR code in alphanumeric mode.
	DefaultFragmentCapacity = 200
)
