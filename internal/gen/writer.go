package gen

import (
	"bytes"
	"fmt"
	"os"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to their directories, creating the
// directories if they don't exist. Files whose content is unchanged are left
// untouched; the names of written files are returned.
func WriteFiles(files []GeneratedFile) ([]string, error) {
	var written []string

	for i := range files {
		file := &files[i]

		err := os.MkdirAll(file.Dir, dirPerm)
		if err != nil {
			return written, fmt.Errorf("creating output directory: %w", err)
		}

		outputPath := file.Path()

		existing, err := os.ReadFile(outputPath)
		if err == nil && bytes.Equal(existing, file.Content) {
			continue
		}

		err = os.WriteFile(outputPath, file.Content, filePerm)
		if err != nil {
			return written, fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		written = append(written, outputPath)
	}

	return written, nil
}

// Stale returns the generated files whose content differs from what is on
// disk, including files that do not exist yet.
func Stale(files []GeneratedFile) []string {
	var stale []string

	for i := range files {
		existing, err := os.ReadFile(files[i].Path())
		if err != nil || !bytes.Equal(existing, files[i].Content) {
			stale = append(stale, files[i].Path())
		}
	}

	return stale
}
