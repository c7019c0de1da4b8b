package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// printJSON writes v as indented JSON when the output flag asks for it and
// reports whether it did.
func printJSON(w io.Writer, v any) (bool, error) {
	if output != "json" {
		return false, nil
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return true, fmt.Errorf("encode json: %w", err)
	}
	fmt.Fprintln(w, string(data))
	return true, nil
}

func printRule(w io.Writer, width int) {
	fmt.Fprintln(w, strings.Repeat("-", width))
}
