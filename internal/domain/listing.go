package domain

import (
	"strconv"
	"strings"
)

// listingFields is perms, links, owner, group, size, three date parts, name.
const listingFields = 9

// ParseListing turns `ls -la` output into entries. Lines that do not carry
// enough fields are skipped. Fields are space separated, so names containing
// newlines, or names whose spacing matters, do not survive; symlink entries
// keep their " -> target" suffix in Name.
func ParseListing(output string) []FileEntry {
	entries := make([]FileEntry, 0)

	for _, line := range strings.Split(output, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "total") {
			continue
		}

		parts := splitFields(trimmed, listingFields)
		if len(parts) < listingFields {
			continue
		}

		name := parts[8]
		if name == "." || name == ".." {
			continue
		}

		size, err := strconv.ParseInt(parts[4], 10, 64)
		if err != nil {
			size = 0
		}

		entries = append(entries, FileEntry{
			Name:        name,
			Kind:        KindFromPermissions(parts[0]),
			Size:        size,
			Permissions: parts[0],
		})
	}

	return entries
}

// splitFields splits on runs of spaces into at most limit parts; the last
// part keeps the remainder verbatim.
func splitFields(s string, limit int) []string {
	parts := make([]string, 0, limit)
	rest := s

	for len(parts) < limit-1 {
		rest = strings.TrimLeft(rest, " ")
		if rest == "" {
			return parts
		}

		idx := strings.IndexByte(rest, ' ')
		if idx < 0 {
			return append(parts, rest)
		}

		parts = append(parts, rest[:idx])
		rest = rest[idx:]
	}

	rest = strings.TrimLeft(rest, " ")
	if rest != "" {
		parts = append(parts, rest)
	}

	return parts
}
