package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pattyshack/gt/parseutil"
	"github.com/spf13/cobra"

	"github.com/pattyshack/asmbridge/gnuc"
	"github.com/pattyshack/asmbridge/lowering"
)

var printTables bool

var lowerCmd = &cobra.Command{
	Use:   "lower FILE...",
	Short: "Lower assembly descriptions into gnu c",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		errs := []error{}
		for _, fileName := range args {
			err := lowerFile(fileName)
			if err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	},
}

func init() {
	lowerCmd.Flags().BoolVar(
		&printTables,
		"table",
		false,
		"Print the operand table of every lowered asm statement")
	rootCmd.AddCommand(lowerCmd)
}

func lowerFile(fileName string) error {
	emitter := &parseutil.Emitter{}
	file := loadFile(fileName, emitter)
	if file == nil {
		err := reportErrors(fileName, emitter)
		if err == nil {
			err = fmt.Errorf("cannot load %s", fileName)
		}
		return err
	}

	log.Debug(
		"lowering",
		"file", fileName,
		"target", file.Platform.ArchitectureName(),
		"features", file.Platform.Features().Sorted(),
		"entries", len(file.Entries))

	module := gnuc.NewModule(file.Platform.ArchitectureName())
	lowering.LowerModule(file.Platform, file, module, file.Entries, emitter)

	for _, asm := range module.Asms() {
		for _, name := range asm.Dropped {
			log.Debug(
				"dropped clobber of register unavailable under enabled features",
				"file", fileName,
				"register", name)
		}
	}

	err := reportErrors(fileName, emitter)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "// %s\n", fileName)

	flags := module.CompilerFlags()
	if len(flags) > 0 {
		log.Info(
			"lowered asm requires compiler flags",
			"file", fileName,
			"flags", flags)
		fmt.Fprintf(stdout, "// cflags: %s\n", strings.Join(flags, " "))
	}
	fmt.Fprint(stdout, module.String())

	if printTables {
		for _, function := range module.Functions {
			for idx, asm := range function.Asms {
				fmt.Fprintln(stdout)
				fmt.Fprintln(
					stdout,
					operandTable(
						fmt.Sprintf("%s asm #%d", function.Definition.Name, idx),
						asm))
			}
		}
	}

	return nil
}
