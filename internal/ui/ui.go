// Package ui holds shared terminal output helpers.
package ui

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
)

// PrintTable renders tabular data with the first row as the header.
func PrintTable(data [][]string, writer io.Writer) {
	table := pterm.DefaultTable
	table.Boxed = true

	str, err := table.WithHasHeader().WithData(data).Srender()
	if err != nil {
		pterm.Error.Printfln("Failed to output table: %s", err.Error())
		return
	}

	fmt.Fprintln(writer, str)
}

func Green(a any) string {
	return pterm.Green(a)
}

func Red(a any) string {
	return pterm.Red(a)
}
