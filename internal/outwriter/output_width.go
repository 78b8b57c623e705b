package outwriter

import (
	"os"

	"github.com/huangsam/gitfolio/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for author names in
// table output based on terminal width and the number of numeric columns.
func GetMaxTableNameWidth(cfg *contract.Config, numericColumns int) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank column, every numeric column, then borders and padding
	baseWidth := 8 + numericColumns*11 + 10

	available := termWidth - baseWidth
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
