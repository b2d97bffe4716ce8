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

package model_test

import (
	"testing"

	. "github.com/sovereignkit/agentcore/model"
	"github.com/stretchr/testify/assert"
)

func TestMyDid_Zero(t *testing.T) {
	d := &MyDid{
		SignKey: "secret-sign-key",
		SK:      "secret-sk",
		VerKey:  "public-ver-key",
	}
	d.Zero()

	assert.Empty(t, d.SignKey)
	assert.Empty(t, d.SK)
	assert.Equal(t, "public-ver-key", d.VerKey)
}
