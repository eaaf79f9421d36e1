package traverse

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// RootPath is the path of the traversal root.
const RootPath = "$"

// Step is one segment of a path: an object member name or an array index.
type Step struct {
	Name  string
	Index int
	Elem  bool
}

// Key returns the step for an object member.
func Key(name string) Step {
	return Step{Name: name}
}

// Elem returns the step for an array item.
func Elem(index int) Step {
	return Step{Index: index, Elem: true}
}

// String renders the step as it appears inside a path.
// Examples:
//   - ".properties" for an identifier-like member name
//   - `["meta:enum"]` for any other member name
//   - "[3]" for an array index
func (s Step) String() string {
	if s.Elem {
		return "[" + strconv.Itoa(s.Index) + "]"
	}

	if isIdent(s.Name) {
		return "." + s.Name
	}

	q, _ := json.Marshal(s.Name)

	return "[" + string(q) + "]"
}

// Join appends a step to an existing path.
func Join(base string, s Step) string {
	return base + s.String()
}

// FormatPath renders a full path from the root.
func FormatPath(steps []Step) string {
	var b strings.Builder

	b.WriteString(RootPath)

	for _, s := range steps {
		b.WriteString(s.String())
	}

	return b.String()
}

// ParsePath parses a path produced by FormatPath back into its steps.
func ParsePath(path string) ([]Step, error) {
	if !strings.HasPrefix(path, RootPath) {
		return nil, fmt.Errorf("invalid path %q: must start with %q", path, RootPath)
	}

	var steps []Step

	rest := path[len(RootPath):]
	for rest != "" {
		switch rest[0] {
		case '.':
			end := 1
			for end < len(rest) && rest[end] != '.' && rest[end] != '[' {
				end++
			}

			name := rest[1:end]
			if !isIdent(name) {
				return nil, fmt.Errorf("invalid path %q: invalid identifier %q", path, name)
			}

			steps = append(steps, Key(name))
			rest = rest[end:]
		case '[':
			step, n, err := parseBracket(rest)
			if err != nil {
				return nil, fmt.Errorf("invalid path %q: %w", path, err)
			}

			steps = append(steps, step)
			rest = rest[n:]
		default:
			return nil, fmt.Errorf("invalid path %q: unexpected %q", path, rest[0])
		}
	}

	return steps, nil
}

// parseBracket parses a leading `[N]` or `["key"]` and returns the number of
// bytes consumed.
func parseBracket(s string) (Step, int, error) {
	if len(s) < 3 {
		return Step{}, 0, errors.New("unterminated bracket")
	}

	if s[1] != '"' {
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return Step{}, 0, errors.New("unterminated bracket")
		}

		idx, err := strconv.Atoi(s[1:end])
		if err != nil || idx < 0 || s[1] == '+' {
			return Step{}, 0, fmt.Errorf("invalid index %q", s[1:end])
		}

		return Elem(idx), end + 1, nil
	}

	// find the closing quote, honouring backslash escapes
	i := 2
	for ; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}

		if s[i] == '"' {
			break
		}
	}

	if i+1 >= len(s) || s[i+1] != ']' {
		return Step{}, 0, errors.New("unterminated quoted key")
	}

	var name string
	if err := json.Unmarshal([]byte(s[1:i+1]), &name); err != nil {
		return Step{}, 0, fmt.Errorf("invalid quoted key: %w", err)
	}

	return Key(name), i + 2, nil
}

// isIdent reports whether s can be written in dotted form.
func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || r == '$':
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}

	return true
}
