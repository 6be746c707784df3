package resolver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverEmpty(t *testing.T) {
	f := newFixture(t)
	assert.Empty(t, f.resolver.Discover())

	root := t.TempDir()
	r := New(StandardPaths(filepath.Join(root, "missing-cwd"), filepath.Join(root, "missing-home")))
	assert.Empty(t, r.Discover())
}

func TestDiscoverOnlyGlobal(t *testing.T) {
	root := t.TempDir()
	home := filepath.Join(root, "home")
	writeFile(t, filepath.Join(home, DirName, CommandsDir, "global-only.md"), "# Global Only\n\nGlobal command.")

	r := New(StandardPaths(filepath.Join(root, "nonexistent"), home))
	got := r.Discover()
	require.Len(t, got, 1)
	assert.Equal(t, "global-only", got[0].Name)
	assert.Equal(t, SourceGlobal, got[0].Source)
	assert.Equal(t, "Global Only", got[0].Description)
}

func TestDiscoverReportsDuplicatesProjectFirst(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.projectDir, "duplicate.md"), "# Local Duplicate\n\nLocal version.")
	writeFile(t, filepath.Join(f.globalDir, "duplicate.md"), "# Global Duplicate\n\nGlobal version.")
	writeFile(t, filepath.Join(f.projectDir, "local-only.md"), "# Local Only")
	writeFile(t, filepath.Join(f.globalDir, "a-global.md"), "# A Global")

	got := f.resolver.Discover()
	require.Len(t, got, 4)

	names := make([]string, len(got))
	for i, c := range got {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"a-global", "duplicate", "duplicate", "local-only"}, names)
	assert.Equal(t, SourceProject, got[1].Source)
	assert.Equal(t, "Local Duplicate", got[1].Description)
	assert.Equal(t, SourceGlobal, got[2].Source)
	assert.Equal(t, "Global Duplicate", got[2].Description)
}

func TestDiscoverIgnoresNonTemplates(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.projectDir, "notes.txt"), "not a template")
	writeFile(t, filepath.Join(f.projectDir, "bad name.md"), "unreachable")
	require.NoError(t, os.Mkdir(filepath.Join(f.projectDir, "nested.md"), 0o755))
	writeFile(t, filepath.Join(f.projectDir, "ok.md"), "ok")

	got := f.resolver.Discover()
	require.Len(t, got, 1)
	assert.Equal(t, "ok", got[0].Name)
}

func TestDiscoverKeepsBrokenTemplates(t *testing.T) {
	f := newFixture(t)
	writeFile(t, filepath.Join(f.projectDir, "valid.md"), "# Valid\n")
	writeFile(t, filepath.Join(f.projectDir, "empty.md"), "")
	writeFile(t, filepath.Join(f.projectDir, "blank.md"), "   \n\t\n   ")
	require.NoError(t, os.WriteFile(filepath.Join(f.projectDir, "binary.md"), []byte{0x00, 0x01, 0xff, 0xfe}, 0o644))

	got := f.resolver.Discover()
	require.Len(t, got, 4)
	for _, c := range got {
		if c.Name == "valid" {
			assert.Equal(t, "Valid", c.Description)
			continue
		}
		assert.Equal(t, NoDescription, c.Description, c.Name)
	}
}

func TestDiscoverSortsManyTemplates(t *testing.T) {
	f := newFixture(t)
	for i := 99; i >= 0; i-- {
		writeFile(t, filepath.Join(f.projectDir, fmt.Sprintf("cmd%03d.md", i)), fmt.Sprintf("# Command %d", i))
	}

	got := f.resolver.Discover()
	require.Len(t, got, 100)
	assert.Equal(t, "cmd000", got[0].Name)
	assert.Equal(t, "cmd099", got[99].Name)
}

func TestExtractDescription(t *testing.T) {
	cases := []struct {
		content string
		want    string
	}{
		{"# Simple Header\n\nBody", "Simple Header"},
		{"## Double Hash", "Double Hash"},
		{"###### Hexa Hash", "Hexa Hash"},
		{"####### Too Many", "####### Too Many"},
		{"#NoSpace", "#NoSpace"},
		{"\n\n# After Empty Lines", "After Empty Lines"},
		{"Plain text first line\n# Then Header", "Plain text first line"},
		{"   Leading spaces   \n# Header", "Leading spaces"},
		{"<!-- HTML Comment -->\n# Header", "<!-- HTML Comment -->"},
		{"# **Bold** and `code`", "**Bold** and `code`"},
		{"# 漢字 with émôjî😊", "漢字 with émôjî😊"},
		{"---\ndescription: From frontmatter\n---\n# Header", "From frontmatter"},
		{"---\r\ndescription: CRLF frontmatter\r\n---\r\n# Header", "CRLF frontmatter"},
		{"---\ntitle: No description key\n---\n# Header", "Header"},
		{"---\n: : not yaml\n---\n# Header", "Header"},
		{"---\nmodel: gpt\nagent: build\n---\n\n# Deploy the service\nBody", "Deploy the service"},
		{"---\n---\n# Empty frontmatter\n", "Empty frontmatter"},
		{"---\r\nagent: build\r\n---\r\nCRLF body line\r\n", "CRLF body line"},
		{"---\ndescription: At EOF\n---", "At EOF"},
		{"---\nagent: build\n---\n", NoDescription},
		{"---\ndescription: Not closed\n----\n---foo\n", "---"},
		{"--- \ndescription: Loose opener\n---\n", "---"},
		{"# Title\n---\ndescription: Not at start\n---\n", "Title"},
		{"", NoDescription},
	}

	dir := t.TempDir()
	for i, tc := range cases {
		path := filepath.Join(dir, fmt.Sprintf("case%d.md", i))
		writeFile(t, path, tc.content)
		assert.Equal(t, tc.want, ExtractDescription(path), "content %q", tc.content)
	}
}

func TestExtractDescriptionLongLine(t *testing.T) {
	long := strings.Repeat("Very ", 100)
	path := filepath.Join(t.TempDir(), "long.md")
	writeFile(t, path, "# "+long+"\n\nContent.")

	got := ExtractDescription(path)
	assert.True(t, strings.HasPrefix(got, "Very Very Very"))
	assert.Greater(t, len(got), 400)
}

func TestSplitFrontmatter(t *testing.T) {
	meta, body, ok := splitFrontmatter("---\nagent: build\nmodel: gpt\n---\n# Body\n")
	require.True(t, ok)
	assert.Equal(t, "agent: build\nmodel: gpt", meta)
	assert.Equal(t, "# Body\n", body)

	_, body, ok = splitFrontmatter("---\nagent: build\n----\n")
	assert.False(t, ok, "---- must not close the block")
	assert.Equal(t, "---\nagent: build\n----\n", body)

	meta, body, ok = splitFrontmatter("---\n---\n")
	require.True(t, ok)
	assert.Empty(t, meta)
	assert.Empty(t, body)
}

func TestExtractDescriptionMissingFile(t *testing.T) {
	assert.Equal(t, NoDescription, ExtractDescription(filepath.Join(t.TempDir(), "gone.md")))
}
