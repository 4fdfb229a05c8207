package rakefile

import (
	"regexp"
	"strings"
)

// Header is a task declaration found in a rake file.
type Header struct {
	// Line is 0-based.
	Line int
	Name string
}

// A header is `task` followed by the name as a symbol, a quoted string or a
// bare identifier, and then something that ends the name: a colon (hash
// style dependencies), `=>`, `,`, `(`, `{`, `do`, or the end of the line.
const headerDelimiter = `(?:\s*(?::|=>|,|\(|\{)|\s+do\b|\s*$)`

var anyHeaderPattern = regexp.MustCompile(
	`^\s*task\s+(?::([A-Za-z0-9_]+)|"([A-Za-z0-9_]+)"|'([A-Za-z0-9_]+)'|([A-Za-z0-9_]+))` + headerDelimiter,
)

func headerPattern(taskName string) *regexp.Regexp {
	name := regexp.QuoteMeta(taskName)
	return regexp.MustCompile(
		`^\s*task\s+(?::` + name + `|"` + name + `"|'` + name + `'|` + name + `)` + headerDelimiter,
	)
}

// FindHeaders returns every task header in lines, in source order.
func FindHeaders(lines []string) []Header {
	var headers []Header
	for i, line := range lines {
		m := anyHeaderPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		for _, name := range m[1:] {
			if name != "" {
				headers = append(headers, Header{Line: i, Name: name})
				break
			}
		}
	}
	return headers
}

// SplitLines splits rake file contents into lines without terminators.
func SplitLines(data []byte) []string {
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
