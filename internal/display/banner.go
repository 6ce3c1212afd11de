package display

import (
	"fmt"
	"io"

	"github.com/backmassage/wsi2fiona/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner(w io.Writer) {
	fmt.Fprint(w, term.Magenta)
	fmt.Fprint(w, `         _ ___  __ _
__ __ __(_)_  )/ _(_)___ _ _  __ _
\ V  V (_-</ /|  _| / _ \ ' \/ _`+"`"+` |
 \_/\_//__/___|_| |_\___/_||_\__,_|
`)
	if term.Enabled() {
		fmt.Fprintln(w, term.NC)
	}
}
