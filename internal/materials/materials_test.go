package materials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	tests := []struct {
		name     string
		file     File
		accepted bool
	}{
		{"pdf", File{Name: "aula.pdf", Size: 1024}, true},
		{"uppercase pptx", File{Name: "SLIDES.PPTX", Size: 1024}, true},
		{"exactly 10MB", File{Name: "big.pdf", Size: 10485760}, true},
		{"docx", File{Name: "notes.docx", Size: 10}, false},
		{"too large", File{Name: "huge.pdf", Size: 11_000_000}, false},
		{"no extension", File{Name: "README", Size: 10}, false},
		{"ppt", File{Name: "old.ppt", Size: 10}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sel := Filter([]File{tt.file})
			if tt.accepted {
				assert.Equal(t, []File{tt.file}, sel.Accepted)
				assert.Empty(t, sel.Warning())
			} else {
				assert.Empty(t, sel.Accepted)
				require.Len(t, sel.Rejected, 1)
				assert.NotEmpty(t, sel.Rejected[0].Reason)
				assert.Equal(t, WarningMessage, sel.Warning())
			}
		})
	}
}

func TestFilterMixed(t *testing.T) {
	files := []File{
		{Name: "a.pdf", Size: 100},
		{Name: "b.docx", Size: 100},
		{Name: "c.pptx", Size: 200},
		{Name: "d.pdf", Size: 11_000_000},
	}
	sel := Filter(files)

	assert.Equal(t, []File{files[0], files[2]}, sel.Accepted)
	require.Len(t, sel.Rejected, 2)
	assert.Equal(t, "b.docx", sel.Rejected[0].File.Name)
	assert.Contains(t, sel.Rejected[0].Reason, "unsupported")
	assert.Equal(t, "d.pdf", sel.Rejected[1].File.Name)
	assert.Contains(t, sel.Rejected[1].Reason, "larger than 10 MB")
	assert.Equal(t, WarningMessage, sel.Warning())
	assert.Equal(t, int64(300), TotalSize(sel.Accepted))
}

func TestStat(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "aula.pdf")
	require.NoError(t, os.WriteFile(p, []byte("%PDF-1.4 hello"), 0o644))

	files, err := Stat([]string{p})
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "aula.pdf", files[0].Name)
	assert.Equal(t, int64(14), files[0].Size)
	assert.Equal(t, p, files[0].Path)

	_, err = Stat([]string{filepath.Join(dir, "missing.pdf")})
	assert.Error(t, err)

	_, err = Stat([]string{dir})
	assert.Error(t, err)
}

func TestHumanSize(t *testing.T) {
	assert.Equal(t, "512 B", HumanSize(512))
	assert.Equal(t, "1.5 KB", HumanSize(1536))
	assert.Equal(t, "10.0 MB", HumanSize(MaxFileSize))
}
