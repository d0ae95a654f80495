// Copyright 2024 The Erigon Authors
// This file is part of Erigon.
//
// Erigon is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Erigon is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Erigon. If not, see <http://www.gnu.org/licenses/>.

// Package dbg holds environment-gated debug toggles. They are read once at
// startup and are meant for tests and bug hunts, not for production tuning.
package dbg

import (
	"os"
	"strconv"
)

var assertEnabled = EnvBool("RANGEDICT_ASSERT", false)

// AssertEnabled reports whether expensive internal consistency checks are on;
// ranges.Dict then sweeps its invariants after every Mark. Enabled with
// RANGEDICT_ASSERT=1.
func AssertEnabled() bool { return assertEnabled }

// EnvBool reads a boolean environment variable, falling back to defaultVal
// when unset or unparsable.
func EnvBool(name string, defaultVal bool) bool {
	v, ok := os.LookupEnv(name)
	if !ok {
		return defaultVal
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return defaultVal
	}
	return b
}
