package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sigreer/rootdiskid/internal/diskid"
)

// PrintJSON outputs the resolution as JSON
func PrintJSON(w io.Writer, res diskid.Resolution) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// PrintTable outputs the resolution as a formatted table
func PrintTable(w io.Writer, res diskid.Resolution) {
	fmt.Fprintf(w, "%-20s %s\n", "STEP", "VALUE")
	fmt.Fprintln(w, strings.Repeat("-", 60))

	printField(w, "Root Device", res.RootDevice)
	printField(w, "FS Type", res.FSType)
	printField(w, "Disk Device", res.DiskDevice)
	printField(w, "Source", string(res.Source))

	lookup := "unavailable"
	if res.VolumeLookup {
		lookup = "available"
	}
	printField(w, "Volume Lookup", lookup)

	identifier := res.Identifier
	if identifier == "" {
		identifier = "(unresolved)"
	}
	printField(w, "Identifier", identifier)
}

// printField prints a field if value is non-empty
func printField(w io.Writer, label, value string) {
	if value != "" {
		fmt.Fprintf(w, "%-20s %s\n", label, value)
	}
}

// PrintQuiet outputs only the identifier; unresolved prints an empty line
func PrintQuiet(w io.Writer, res diskid.Resolution) {
	fmt.Fprintln(w, res.Identifier)
}
