package vault

import (
	"bufio"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseFrontmatter extracts YAML front matter from document content into out.
// Front matter must be delimited by "---" on its own line at the start of the
// file. Missing or malformed front matter leaves out untouched; parsing is
// best-effort like every reader in the vault.
func ParseFrontmatter(content string, out any) bool {
	scanner := bufio.NewScanner(strings.NewReader(content))

	// First line must be "---"
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != "---" {
		return false
	}

	var lines []string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "---" {
			break
		}
		lines = append(lines, line)
	}

	if len(lines) == 0 {
		return false
	}

	return yaml.Unmarshal([]byte(strings.Join(lines, "\n")), out) == nil
}
