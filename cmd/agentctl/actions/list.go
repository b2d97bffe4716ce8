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

package actions

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v2"
)

// ListMyDids prints every DID saved under the wallet directory.
func ListMyDids(c *cli.Context) error {
	dir, err := ConfigDir(c)
	if err != nil {
		return exitErr(err)
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		entries = nil
	} else if err != nil {
		return exitErr(err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"DID", "File"})
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		did := strings.TrimSuffix(e.Name(), ".json")
		table.Append([]string{did, filepath.Join(dir, e.Name())})
	}
	table.Render()

	return nil
}
