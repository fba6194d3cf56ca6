package logger

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// Init initializes the default logger.  Only warnings and errors are logged
// unless verbose is set.
func Init(verbose, noColor bool) {
	log.SetDefault(log.NewWithOptions(os.Stderr,
		log.Options{
			ReportCaller:    verbose,
			ReportTimestamp: false,
			Prefix:          "asmbridge",
		}))

	log.SetLevel(log.WarnLevel)
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	log.SetColorProfile(termenv.ANSI256)
	if noColor {
		log.SetColorProfile(termenv.Ascii)
	}
}
