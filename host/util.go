// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"fmt"
	"strings"
)

func stringToBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "0", "false":
		return false, nil
	case "1", "true":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bool value '%s'", s)
	}
}

// parseFlag interprets an assert command's per-flag argument: "0"
// clears the flag, "1" sets it, "-" records no change.
func parseFlag(s string) (*bool, error) {
	switch s {
	case "-":
		return nil, nil
	case "0":
		v := false
		return &v, nil
	case "1":
		v := true
		return &v, nil
	default:
		return nil, fmt.Errorf("invalid flag value '%s' (want 0, 1, or -)", s)
	}
}
