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

// Package canonical produces the deterministic byte string that sign/verify
// treat as the signed payload. It replaces JSON-LD dataset normalization
// with a self-contained, key-sorted, type-tagged serialization that needs no
// external context documents: object keys sort lexicographically, every
// value is framed by a tag identifying its JSON kind, and strings/arrays are
// length-prefixed so that no ambiguity about where one value ends and the
// next begins can creep in. Two JSON values with equal logical content
// always serialize to identical bytes, regardless of source key order or
// insignificant whitespace.
package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/bytedance/sonic/decoder"
	"github.com/sovereignkit/agentcore/apperrors"
)

// Tag bytes identifying the JSON kind of the value that follows.
const (
	tagObject byte = 'o'
	tagArray  byte = 'a'
	tagString byte = 's'
	tagInt    byte = 'i'
	tagFloat  byte = 'f'
	tagBool   byte = 'b'
	tagNull   byte = 'n'
)

// Serialize parses doc as a JSON object and returns its canonical byte
// serialization. It fails with apperrors.InvalidStructure if doc does not
// parse as a JSON object.
func Serialize(doc []byte) ([]byte, error) {
	v, err := decodeObject(doc)
	if err != nil {
		return nil, err
	}
	return SerializeValue(v), nil
}

// SerializeMap canonicalizes an already-decoded JSON object (e.g. one with a
// field removed before re-serializing, as verify does with "signature").
func SerializeMap(m map[string]any) []byte {
	var buf bytes.Buffer
	writeObject(&buf, m)
	return buf.Bytes()
}

// SerializeValue canonicalizes an arbitrary decoded JSON value.
func SerializeValue(v any) []byte {
	var buf bytes.Buffer
	writeValue(&buf, v)
	return buf.Bytes()
}

func decodeObject(doc []byte) (map[string]any, error) {
	d := decoder.NewDecoder(string(doc))
	d.UseNumber()

	var v map[string]any
	if err := d.Decode(&v); err != nil {
		return nil, apperrors.InvalidStructure("message is not a JSON object", err)
	}
	if v == nil {
		return nil, apperrors.InvalidStructure("message is not a JSON object", nil)
	}
	return v, nil
}

func writeValue(buf *bytes.Buffer, v any) {
	switch val := v.(type) {
	case nil:
		buf.WriteByte(tagNull)
	case bool:
		buf.WriteByte(tagBool)
		if val {
			buf.WriteByte('1')
		} else {
			buf.WriteByte('0')
		}
	case json.Number:
		writeNumber(buf, string(val))
	case string:
		writeString(buf, val)
	case []any:
		writeArray(buf, val)
	case map[string]any:
		writeObject(buf, val)
	default:
		// Defensive: any caller-constructed value (e.g. assembled in Go code
		// rather than parsed from JSON) falls back to its fmt representation
		// tagged as a string.
		writeString(buf, fmt.Sprintf("%v", val))
	}
}

func writeNumber(buf *bytes.Buffer, lit string) {
	if _, err := strconv.ParseInt(lit, 10, 64); err == nil {
		buf.WriteByte(tagInt)
		buf.WriteString(lit)
		return
	}
	buf.WriteByte(tagFloat)
	buf.WriteString(lit)
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte(tagString)
	buf.WriteString(strconv.Itoa(len(s)))
	buf.WriteByte(':')
	buf.WriteString(s)
}

func writeArray(buf *bytes.Buffer, arr []any) {
	buf.WriteByte(tagArray)
	buf.WriteString(strconv.Itoa(len(arr)))
	buf.WriteByte(':')
	for _, elem := range arr {
		writeValue(buf, elem)
	}
}

func writeObject(buf *bytes.Buffer, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf.WriteByte(tagObject)
	buf.WriteString(strconv.Itoa(len(keys)))
	buf.WriteByte(':')
	for _, k := range keys {
		writeString(buf, k)
		writeValue(buf, m[k])
	}
}
