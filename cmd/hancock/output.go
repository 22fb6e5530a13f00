package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

const (
	outputAuto  = "auto"
	outputJSON  = "json"
	outputTable = "table"
)

// writeJSON encodes v as indented JSON to the command's stdout.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// wantJSON resolves the output mode. "auto" prints tables on a terminal and JSON otherwise.
func wantJSON(cmd *cobra.Command, mode string) (bool, error) {
	switch mode {
	case outputJSON:
		return true, nil
	case outputTable:
		return false, nil
	case outputAuto, "":
		return !isTerminal(cmd.OutOrStdout()), nil
	default:
		return false, fmt.Errorf("unknown output format %q (want auto, json or table)", mode)
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
