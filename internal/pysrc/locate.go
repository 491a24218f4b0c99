package pysrc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FindLocation scans filePath line by line and returns the 1-based index of
// the first line containing the literal defining text for name. This is a
// textual heuristic rather than a structural lookup: it still answers after
// the file has drifted since indexing, and reports ok=false (never an error)
// when the file is unreadable or the symbol is gone.
func FindLocation(filePath, name string, kind Kind) (int, bool) {
	var needle string
	switch kind {
	case KindClass:
		needle = "class " + name
	default:
		needle = "def " + name
	}

	f, err := os.Open(filePath)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	row := 0
	for scanner.Scan() {
		row++
		if strings.Contains(scanner.Text(), needle) {
			return row, true
		}
	}
	return 0, false
}

// EditorLink formats a vscode:// deep link for a file position, used by the
// CLI to point the operator at the paste target.
func EditorLink(filePath string, row int) string {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		abs = filePath
	}
	return fmt.Sprintf("vscode://file//%s:%d", abs, row)
}
