package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pattyshack/gt/parseutil"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"

	"github.com/pattyshack/asmbridge/asmfile"
	"github.com/pattyshack/asmbridge/internal/logger"
)

var (
	verbose bool
	noColor bool

	stdout = bufio.NewWriter(os.Stdout)
)

var rootCmd = &cobra.Command{
	Use:   "asmbridge",
	Short: "Lowers portable inline assembly descriptions into gnu extended asm",
	Long: `asmbridge reads yaml assembly descriptions (functions containing inline
assembly blocks, plus module level assembly) and lowers them into gnu c
extended asm statements for the description's target architecture.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(verbose, noColor)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Log debug messages")
	rootCmd.PersistentFlags().BoolVar(
		&noColor,
		"no-color",
		false,
		"Disable colored log output")
}

// loadFile returns nil if the file can't be read or its description is
// unusable.  Diagnostics are reported to the emitter.
func loadFile(fileName string, emitter *parseutil.Emitter) *asmfile.File {
	content, err := os.ReadFile(fileName)
	if err != nil {
		log.Error("cannot read file", "file", fileName, "error", err)
		return nil
	}

	log.Debug("loading", "file", fileName)
	return asmfile.Load(fileName, content, emitter)
}

func reportErrors(fileName string, emitter *parseutil.Emitter) error {
	errs := emitter.Errors()
	for _, err := range errs {
		log.Error(err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("found %d errors in %s", len(errs), fileName)
	}
	return nil
}

func main() {
	atexit.Register(func() {
		err := stdout.Flush()
		if err != nil {
			log.Error("cannot flush output", "error", err)
		}
	})

	err := rootCmd.Execute()
	if err != nil {
		log.Error(err.Error())
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
