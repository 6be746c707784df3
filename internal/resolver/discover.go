package resolver

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// NoDescription is reported for templates without a usable first line.
const NoDescription = "No description available"

// CommandInfo describes one template found by Discover.
type CommandInfo struct {
	Name        string
	Path        string
	Source      Source
	Description string
}

// Discover lists every template in every search path. A name present in
// several directories is reported once per directory. Results are sorted by
// name; entries with the same name keep search-path order, so the one that
// Resolve would pick comes first.
func (r *Resolver) Discover() []CommandInfo {
	var out []CommandInfo
	for _, sp := range r.paths {
		entries, err := os.ReadDir(sp.Dir)
		if err != nil {
			if !os.IsNotExist(err) {
				r.log.Debug().Err(err).Str("dir", sp.Dir).Msg("skipping unreadable commands directory")
			}
			continue
		}

		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), Extension) {
				continue
			}
			name := strings.TrimSuffix(e.Name(), Extension)
			if ValidateName(name) != nil {
				r.log.Debug().Str("file", e.Name()).Msg("skipping template with unsupported name")
				continue
			}
			path := filepath.Join(sp.Dir, e.Name())
			if !isRegularFile(path) {
				continue
			}
			out = append(out, CommandInfo{
				Name:        name,
				Path:        path,
				Source:      sp.Source,
				Description: ExtractDescription(path),
			})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// ExtractDescription returns a one-line summary of the template at path.
// A "description" key in YAML frontmatter wins; otherwise the first
// non-blank line after any frontmatter is used with its markdown heading
// marker removed.
func ExtractDescription(path string) string {
	data, err := os.ReadFile(path)
	if err != nil || !utf8.Valid(data) {
		return NoDescription
	}

	meta, body, ok := splitFrontmatter(string(data))
	if ok {
		if desc := frontmatterDescription(meta); desc != "" {
			return desc
		}
	}
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		return stripHeading(line)
	}
	return NoDescription
}

const frontmatterDelim = "---"

// splitFrontmatter separates a leading "---" block from the rest of text.
// Both delimiters must be whole lines. ok is false when text does not open
// with a closed block, in which case body is all of text.
func splitFrontmatter(text string) (meta, body string, ok bool) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	first, rest, found := strings.Cut(text, "\n")
	if !found || first != frontmatterDelim {
		return "", text, false
	}

	var fm []string
	for {
		line, next, more := strings.Cut(rest, "\n")
		if line == frontmatterDelim {
			return strings.Join(fm, "\n"), next, true
		}
		if !more {
			return "", text, false
		}
		fm = append(fm, line)
		rest = next
	}
}

type frontmatter struct {
	Description string `yaml:"description"`
}

func frontmatterDescription(meta string) string {
	var fm frontmatter
	if err := yaml.Unmarshal([]byte(meta), &fm); err != nil {
		return ""
	}
	return strings.TrimSpace(fm.Description)
}

// stripHeading removes an ATX heading marker: one to six '#' followed by
// whitespace.
func stripHeading(line string) string {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	if n == 0 || n > 6 || n == len(line) || (line[n] != ' ' && line[n] != '\t') {
		return line
	}
	if s := strings.TrimSpace(line[n:]); s != "" {
		return s
	}
	return line
}
