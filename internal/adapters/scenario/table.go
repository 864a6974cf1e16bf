// Package scenario reads LVDC parameter dumps from launch scenario files.
// A scenario is line oriented; every line whose first whitespace-delimited
// token is a key and whose second token starts with a floating-point literal
// contributes one value. Everything else is ignored.
package scenario

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/indy91/RTCC-TLI-Presettings-Card-Format/internal/domain"
)

// maxLine is the longest line prefix kept for tokenizing. Orbiter scenarios
// carry long vessel state lines; anything past maxLine is read and dropped.
const maxLine = 1 << 20

// Table is the parsed key/value content of one scenario.
// It is immutable once Parse returns.
type Table struct {
	values map[string]float64
	keys   []string // first-seen order
}

// Open parses the scenario file at path.
func Open(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return t, nil
}

// Parse reads r once. The first line that carries a parsable value for a key
// wins; a matching line with an unparsable value is skipped, so a later
// valid line for the same key is still picked up. Lines of any length are
// accepted.
func Parse(r io.Reader) (*Table, error) {
	t := &Table{values: make(map[string]float64)}
	br := bufio.NewReaderSize(r, maxLine)
	for {
		line, err := br.ReadSlice('\n')
		cut := false
		if errors.Is(err, bufio.ErrBufferFull) {
			cut = true
			line = append([]byte(nil), line...)
			err = discardLine(br)
		}
		t.add(string(line), cut)
		if err == io.EOF {
			return t, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

// discardLine consumes the rest of the current line, newline included.
func discardLine(br *bufio.Reader) error {
	for {
		_, err := br.ReadSlice('\n')
		if !errors.Is(err, bufio.ErrBufferFull) {
			return err
		}
	}
}

// add records the key/value pair of one line. When the line was cut at
// maxLine its last token may be partial and is not used.
func (t *Table) add(line string, cut bool) {
	tokens := strings.Fields(line)
	if cut && len(tokens) > 0 && !strings.ContainsAny(line[len(line)-1:], " \t\r\n\v\f") {
		tokens = tokens[:len(tokens)-1]
	}
	if len(tokens) < 2 {
		return
	}
	key := tokens[0]
	if _, seen := t.values[key]; seen {
		return
	}
	v, ok := ParseValue(tokens[1])
	if !ok {
		return
	}
	t.values[key] = v
	t.keys = append(t.keys, key)
}

// Lookup returns the value recorded for key, or def and false.
// Keys match exactly and case-sensitively.
func (t *Table) Lookup(key string, def float64) (float64, bool) {
	if t == nil {
		return def, false
	}
	v, ok := t.values[key]
	if !ok {
		return def, false
	}
	return v, true
}

// Len is the number of distinct keys with a value.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Keys returns the recorded keys in the order they first appeared.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}
	return append([]string(nil), t.keys...)
}

// floatPrefix matches the longest decimal floating-point literal at the start
// of a token, the way scanf's %lf consumes input.
var floatPrefix = regexp.MustCompile(`^[+-]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?`)

// ParseValue converts a value token. Trailing garbage after a valid literal
// is ignored ("3.5abc" is 3.5); a token with no leading literal is rejected.
// Out-of-range magnitudes saturate to ±Inf rather than failing.
func ParseValue(tok string) (float64, bool) {
	if v, err := strconv.ParseFloat(tok, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return v, true
	}
	m := floatPrefix.FindString(tok)
	if m == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(m, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return v, true
}

// OppKey appends the opportunity letter: OppKey("LVDC_TST", 1) = "LVDC_TSTA".
func OppKey(name string, opp int) string {
	return name + domain.OpportunityLetter(opp)
}

// OppIndexKey appends the opportunity letter and sub-target index:
// OppIndexKey("LVDC_TP", 2, 13) = "LVDC_TPB13".
func OppIndexKey(name string, opp, index int) string {
	return name + domain.OpportunityLetter(opp) + strconv.Itoa(index)
}
