package main

import (
	"errors"
	"fmt"

	"github.com/pattyshack/gt/parseutil"
	"github.com/spf13/cobra"

	"github.com/pattyshack/asmbridge/ast"
)

var treeCmd = &cobra.Command{
	Use:   "tree FILE...",
	Short: "Print the parsed assembly description trees",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		errs := []error{}
		for _, fileName := range args {
			err := printTree(fileName)
			if err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	},
}

func init() {
	rootCmd.AddCommand(treeCmd)
}

func printTree(fileName string) error {
	emitter := &parseutil.Emitter{}
	file := loadFile(fileName, emitter)
	if file == nil {
		err := reportErrors(fileName, emitter)
		if err == nil {
			err = fmt.Errorf("cannot load %s", fileName)
		}
		return err
	}

	fmt.Fprintln(stdout, "=====================")
	fmt.Fprintln(stdout, "File name:", fileName)
	fmt.Fprintln(stdout, "Target:", file.Platform.ArchitectureName())
	fmt.Fprintln(stdout, "---------------------")

	for idx, entry := range file.Entries {
		ast.Validate(entry, emitter)

		fmt.Fprintf(stdout, "Entry %d:\n", idx)
		fmt.Fprintln(stdout, ast.TreeString(entry, "  "))
	}

	return reportErrors(fileName, emitter)
}
