package libgl

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/exp/slices"
)

var shaderMetaPattern = regexp.MustCompile(`(?m)^\/\/meta:(\w+)(.+)$`)
var shaderDefinePattern = regexp.MustCompile(`(?m)^[ \t]*(\/\/)?[ \t]*#define (\w+) ?(.*)$`)
var shaderVersionPattern = regexp.MustCompile(`(?m)^\s*#version.+$`)

// SourceName returns the value of a "//meta:name" line, or fallback.
func SourceName(source, fallback string) string {
	for _, match := range shaderMetaPattern.FindAllStringSubmatch(source, -1) {
		key, value := match[1], strings.TrimSpace(match[2])
		if strings.EqualFold(key, "name") && value != "" {
			return value
		}
	}
	return fallback
}

// Preprocess sets the given defines in source. Existing "#define NAME ..."
// lines (also commented out ones) are rewritten in place, unknown names are
// inserted right after the #version line. A boolean define is turned off
// with the value "false", which comments it out, and on with "true".
func Preprocess(source string, defines map[string]string) (string, error) {
	loc := shaderVersionPattern.FindStringIndex(source)
	if loc == nil {
		return "", fmt.Errorf("shader source has no #version directive")
	}
	if len(defines) == 0 {
		return source, nil
	}

	lower := make(map[string]string, len(defines))
	for name := range defines {
		lower[strings.ToLower(name)] = name
	}

	seen := map[string]bool{}
	source = shaderDefinePattern.ReplaceAllStringFunc(source, func(line string) string {
		match := shaderDefinePattern.FindStringSubmatch(line)
		key := strings.ToLower(match[2])
		orig, ok := lower[key]
		if !ok || seen[key] {
			return line
		}
		seen[key] = true
		return defineLine(match[2], defines[orig], strings.TrimSpace(match[3]) == "")
	})

	// insertion order must not depend on map iteration
	var missing []string
	for key, name := range lower {
		if !seen[key] {
			missing = append(missing, name)
		}
	}
	slices.Sort(missing)

	var inserted strings.Builder
	for _, name := range missing {
		inserted.WriteString("\n")
		value := defines[name]
		inserted.WriteString(defineLine(name, value, value == "true" || value == "false"))
	}

	loc = shaderVersionPattern.FindStringIndex(source)
	return source[:loc[1]] + inserted.String() + source[loc[1]:], nil
}

func defineLine(name, value string, boolean bool) string {
	if boolean {
		if value == "false" {
			return "// #define " + name
		}
		return "#define " + name
	}
	return fmt.Sprintf("#define %v %v", name, value)
}
