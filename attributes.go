package shrieker

import (
	"regexp"
	"strconv"
)

// AttributeRow is the screen row carrying the attribute line on a
// 24-row terminal
const AttributeRow = 22

var attributesPattern = regexp.MustCompile(
	`St:(?P<st>[/\d*]+)\s*` +
		`Dx:(?P<dx>\d+)\s*` +
		`Co:(?P<co>\d+)\s*` +
		`In:(?P<in>\d+)\s*` +
		`Wi:(?P<wi>\d+)\s*` +
		`Ch:(?P<ch>\d+)\s*` +
		`(?P<align>\S+)`)

// Attributes are the character's ability scores and alignment
type Attributes struct {
	St    string // may carry a percentile suffix, e.g. "18/02" or "18/**"
	Dx    int
	Co    int
	In    int
	Wi    int
	Ch    int
	Align string
}

// ParseAttributes reads the attribute line. ok is false when the line does
// not currently show attributes.
func ParseAttributes(line string) (a Attributes, ok bool) {
	m := attributesPattern.FindStringSubmatch(line)
	if m == nil {
		return Attributes{}, false
	}
	group := func(name string) string {
		return m[attributesPattern.SubexpIndex(name)]
	}
	a.St = group("st")
	a.Dx = atoi(group("dx"))
	a.Co = atoi(group("co"))
	a.In = atoi(group("in"))
	a.Wi = atoi(group("wi"))
	a.Ch = atoi(group("ch"))
	a.Align = group("align")
	return a, true
}

// Merge overwrites a with the attributes parsed from line. When the line
// does not match, a is left as it was and Merge returns false.
func (a *Attributes) Merge(line string) bool {
	parsed, ok := ParseAttributes(line)
	if !ok {
		return false
	}
	*a = parsed
	return true
}

// atoi converts a regexp group already known to be digits
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
