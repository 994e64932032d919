package utils

import (
	"fmt"
)

const (
	Version = "0.3"
)

// Used in the header of the debug traces and by the command line tool.
var VersionString = fmt.Sprintf("Go-InlineLayout %s", Version)
