// Package assets holds the files compiled into the binary: the default word
// list and word statistics, and the SQL migrations for the run store.
package assets

import (
	"embed"
	"io/fs"
	"sort"
	"strings"
)

//go:embed words.txt stats.tsv sql/*.sql
var FS embed.FS

// Migrations returns the embedded migration file names in lexical order.
func Migrations() ([]string, error) {
	var out []string
	err := fs.WalkDir(FS, "sql", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".sql") {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// ReadFile returns the contents of an embedded file.
func ReadFile(name string) ([]byte, error) {
	return FS.ReadFile(name)
}
