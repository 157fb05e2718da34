package scan

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Stdin is the path value standing in for standard input.
const Stdin = "-"

// Walk expands a list of paths into scannable inputs: files pass
// through, directories are walked recursively, and "-" (standard input)
// is passed through at most once. A nonexistent path is an error.
func Walk(paths []string) ([]string, error) {
	var out []string
	sawStdin := false

	for _, p := range paths {
		if p == Stdin {
			if sawStdin {
				return nil, fmt.Errorf("scan: %q given more than once", Stdin)
			}
			sawStdin = true
			out = append(out, Stdin)
			continue
		}

		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}

		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.Type().IsRegular() {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scan: walk %s: %w", p, err)
		}
	}

	return out, nil
}
