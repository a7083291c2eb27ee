package telemetry

import "strings"

const (
	// HeaderPrefix marks the column header line the sketch prints on boot.
	HeaderPrefix = "reading"
	// MinFields is the field count needed to show a reading: index, R, G, B.
	MinFields    = 4

	fieldSep = ","
)

// Decode turns raw serial bytes into a trimmed line. Invalid UTF-8 is
// replaced with U+FFFD rather than rejected.
func Decode(raw []byte) string {
	return strings.TrimSpace(strings.ToValidUTF8(string(raw), "\uFFFD"))
}

// Parse classifies a decoded line. Values are not validated.
func Parse(line string) Record {
	if strings.HasPrefix(line, HeaderPrefix) {
		return Record{Raw: line, Header: true}
	}
	return Record{Raw: line, Fields: strings.Split(line, fieldSep)}
}

// Parsed reports whether the record is a displayable reading.
func (r *Record) Parsed() bool {
	return !r.Header && len(r.Fields) >= MinFields
}

// RGB returns fields 1..3. ok is false when the record is not Parsed.
func (r *Record) RGB() (RGB, bool) {
	if !r.Parsed() {
		return RGB{}, false
	}
	return RGB{Red: r.Fields[1], Green: r.Fields[2], Blue: r.Fields[3]}, true
}
