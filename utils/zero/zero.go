// Copyright 2022 Piprate Limited
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

// Package zero wipes secret byte buffers before they're dropped, so stray
// copies of key material don't linger on the heap any longer than necessary.
package zero

// Bytes overwrites b in place with zeroes. It is a no-op for a nil or empty
// slice.
func Bytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
