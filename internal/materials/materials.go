// Package materials pre-filters files before they are uploaded. The
// backend remains the authority on what it accepts.
package materials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize is the largest accepted file, in bytes (10 MB).
const MaxFileSize int64 = 10 * 1024 * 1024

// WarningMessage is shown when a selection drops files.
const WarningMessage = "Some files were ignored. Only PDF and PPTX files up to 10MB are accepted."

var allowedExt = map[string]bool{
	".pdf":  true,
	".pptx": true,
}

// File is a candidate for upload.
type File struct {
	Path string
	Name string
	Size int64
}

// Rejection is a file that did not pass the filter.
type Rejection struct {
	File   File
	Reason string
}

// Selection is the result of Filter.
type Selection struct {
	Accepted []File
	Rejected []Rejection
}

// Warning returns WarningMessage when anything was rejected, else "".
func (s Selection) Warning() string {
	if len(s.Rejected) == 0 {
		return ""
	}
	return WarningMessage
}

// Check reports why f would be rejected, or "" when it is acceptable.
func Check(f File) string {
	ext := strings.ToLower(filepath.Ext(f.Name))
	if !allowedExt[ext] {
		return fmt.Sprintf("unsupported type %q", ext)
	}
	if f.Size > MaxFileSize {
		return fmt.Sprintf("larger than %d MB", MaxFileSize/(1024*1024))
	}
	return ""
}

// Filter splits files into accepted and rejected, keeping input order.
func Filter(files []File) Selection {
	var sel Selection
	for _, f := range files {
		if reason := Check(f); reason != "" {
			sel.Rejected = append(sel.Rejected, Rejection{File: f, Reason: reason})
			continue
		}
		sel.Accepted = append(sel.Accepted, f)
	}
	return sel
}

// Stat builds File values from paths on disk. Directories and unreadable
// paths are errors.
func Stat(paths []string) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, p := range paths {
		p = expandHome(strings.TrimSpace(p))
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%s is a directory", p)
		}
		files = append(files, File{Path: p, Name: info.Name(), Size: info.Size()})
	}
	return files, nil
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(p, "~"))
		}
	}
	return p
}

// TotalSize sums the sizes of files.
func TotalSize(files []File) int64 {
	var n int64
	for _, f := range files {
		n += f.Size
	}
	return n
}

// HumanSize formats a byte count as "1.5 MB".
func HumanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
