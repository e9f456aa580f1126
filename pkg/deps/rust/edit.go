package rust

import (
	"regexp"
	"strings"
)

var (
	headerRe  = regexp.MustCompile(`^\s*\[\[?\s*([^\]]+?)\s*\]\]?\s*(?:#.*)?$`)
	versionRe = regexp.MustCompile(`^\s*version\s*=\s*["']([^"']*)["']`)
)

// memberRe matches a dependency line in either the string or the inline
// table form and captures the version string.
func memberRe(key string) *regexp.Regexp {
	k := regexp.QuoteMeta(key)
	return regexp.MustCompile(`^\s*(?:` + k + `|"` + k + `")\s*=\s*(?:\{[^}]*?\bversion\s*=\s*)?["']([^"']*)["']`)
}

// parseHeader splits a table header such as [dependencies.serde] into
// "dependencies" and "serde".
func parseHeader(line string) (table, sub string, ok bool) {
	m := headerRe.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return "", "", false
	}
	table, sub, _ = strings.Cut(m[1], ".")
	return strings.TrimSpace(table), strings.Trim(strings.TrimSpace(sub), `"'`), true
}

// setValue replaces the first string captured by re on a line inside a
// table accepted by in. Every other byte of data is kept.
func setValue(data []byte, in func(table, sub string) bool, re *regexp.Regexp, value string) ([]byte, bool) {
	lines := strings.SplitAfter(string(data), "\n")
	var table, sub string
	for i, line := range lines {
		if t, s, ok := parseHeader(line); ok {
			table, sub = t, s
			continue
		}
		if !in(table, sub) {
			continue
		}
		if loc := re.FindStringSubmatchIndex(line); loc != nil {
			lines[i] = line[:loc[2]] + value + line[loc[3]:]
			return []byte(strings.Join(lines, "")), true
		}
	}
	return data, false
}

// setRequirement rewrites the version of dependency key in section.
func setRequirement(data []byte, section, key, value string) ([]byte, bool) {
	if out, ok := setValue(data, func(t, s string) bool {
		return t == section && s == ""
	}, memberRe(key), value); ok {
		return out, true
	}
	return setValue(data, func(t, s string) bool {
		return t == section && s == key
	}, versionRe, value)
}

// setPackageVersion rewrites version in the [package] table.
func setPackageVersion(data []byte, value string) ([]byte, bool) {
	return setValue(data, func(t, s string) bool {
		return t == "package" && s == ""
	}, versionRe, value)
}
