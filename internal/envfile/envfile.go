// Package envfile reads and edits dotenv-style key/value files.
package envfile

import (
	"bufio"
	"fmt"
	"strings"
)

// Parse reads env file content into a key/value map. Blank lines and comments
// are ignored; an optional "export " prefix is accepted.
func Parse(content string) (map[string]string, error) {
	env := make(map[string]string)
	if content == "" {
		return env, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !ok {
			continue
		}
		env[key] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read env content: %w", err)
	}
	return env, nil
}

// Set returns content with key set to value. The first existing assignment of
// key is rewritten in place; otherwise a new line is appended. Comments and
// unrelated lines are preserved verbatim.
func Set(content string, key string, value string) string {
	var lines []string
	if content != "" {
		lines = strings.Split(content, "\n")
	}

	for i, line := range lines {
		k, _, ok, err := parseLine(line)
		if err != nil || !ok {
			continue
		}
		if k == key {
			lines[i] = fmt.Sprintf("%s=%s", key, encodeValue(value))
			return strings.Join(lines, "\n")
		}
	}

	if len(lines) > 0 && lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	lines = append(lines, fmt.Sprintf("%s=%s", key, encodeValue(value)))
	return strings.Join(lines, "\n")
}

// HasKey reports whether content assigns key, regardless of its value.
func HasKey(content string, key string) bool {
	env, err := Parse(content)
	if err != nil {
		// Malformed lines are skipped by the caller's guard semantics; fall
		// back to a conservative textual scan.
		return strings.Contains(content, key+"=")
	}
	_, ok := env[key]
	return ok
}

// parseLine splits one line into key and value. ok is false for blank lines
// and comments.
func parseLine(line string) (string, string, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", "", false, nil
	}
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))
	idx := strings.Index(trimmed, "=")
	if idx <= 0 {
		return "", "", false, fmt.Errorf("expected KEY=VALUE")
	}
	key := strings.TrimSpace(trimmed[:idx])
	value := strings.TrimSpace(trimmed[idx+1:])
	if strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) && len(value) >= 2 {
		value = unquote(value[1 : len(value)-1])
	} else if strings.HasPrefix(value, `'`) && strings.HasSuffix(value, `'`) && len(value) >= 2 {
		value = value[1 : len(value)-1]
	}
	return key, value, true, nil
}

// encodeValue quotes a value when it contains characters that would change
// meaning in an env file.
func encodeValue(val string) string {
	if strings.ContainsAny(val, " \t#\"\n") {
		val = strings.ReplaceAll(val, `\`, `\\`)
		val = strings.ReplaceAll(val, `"`, `\"`)
		val = strings.ReplaceAll(val, "\n", `\n`)
		return fmt.Sprintf(`"%s"`, val)
	}
	return val
}

func unquote(escaped string) string {
	var b strings.Builder
	b.Grow(len(escaped))
	for i := 0; i < len(escaped); i++ {
		if escaped[i] == '\\' && i+1 < len(escaped) {
			switch escaped[i+1] {
			case '\\', '"':
				b.WriteByte(escaped[i+1])
				i++
				continue
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			}
		}
		b.WriteByte(escaped[i])
	}
	return b.String()
}
