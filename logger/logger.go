package logger

import (
	"log"
	"os"
)

// ProgressLogger logs the main steps of the layout, like
// font loading or the number of lines produced.
var ProgressLogger = log.New(os.Stdout, "inlinelayout.progress: ", log.LstdFlags)

// WarningLogger emits a warning for each non fatal error, like unsupported CSS
// properties, invalid markup or a collaborator returning an empty result.
var WarningLogger = log.New(os.Stdout, "inlinelayout.warning: ", log.Lmsgprefix)
