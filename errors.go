/*
Copyright © 2020 the GLAMCollate authors.
This file is part of GLAMCollate.

GLAMCollate is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GLAMCollate is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GLAMCollate.  If not, see <http://www.gnu.org/licenses/>.
*/

package glamcollate

import "fmt"

// An ArgumentError reports invalid input supplied by the user: a bad
// directory layout, an out-of-range worker count, or a scenario name that is
// not in the enumeration tables. It is always raised before any assembly
// work starts.
type ArgumentError struct {
	Msg string
}

func (e *ArgumentError) Error() string { return "glamcollate: " + e.Msg }

// A FileReadError reports a missing or unparseable raw table. It is fatal
// to the whole run: no partial ensemble output is produced.
type FileReadError struct {
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("glamcollate: reading table %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// A MergeError reports a failure of the concatenation step that joins
// per-year files into the final series file. Scratch files are left on disk
// for manual inspection; no cleanup or retry is attempted.
type MergeError struct {
	Err error
}

func (e *MergeError) Error() string {
	return fmt.Sprintf("glamcollate: merging year files: %v", e.Err)
}

func (e *MergeError) Unwrap() error { return e.Err }
