// This file is part of SoftVGA.
//
// SoftVGA is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// SoftVGA is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with SoftVGA.  If not, see <https://www.gnu.org/licenses/>.

// Package diagnostics renders the live driver structure as a graphviz
// graph. Occasionally useful when chasing ownership bugs: the picture
// shows exactly which component is holding which buffer or peripheral.
package diagnostics

import (
	"io"
	"os"

	"github.com/bradleyjkemp/memviz"

	"github.com/jetsetilly/softvga/logger"
)

// Dump writes a graphviz rendering of the data reachable from root.
// Process the output with dot:
//
//	softvga run -dump state.dot ...
//	dot -Tsvg state.dot > state.svg
func Dump(output io.Writer, root interface{}) {
	memviz.Map(output, root)
}

// DumpToFile is a convenience for Dump.
func DumpToFile(path string, root interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	Dump(f, root)
	logger.Logf("diagnostics", "structure graph written to %s", path)

	return nil
}
