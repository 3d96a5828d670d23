package entity

import (
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DateLayout is the wire format of calendar days in the activity timeline.
const DateLayout = "2006-01-02"

// The analysis service emits zone-less ISO timestamps; the demo generator emits RFC3339.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	DateLayout,
}

// Timestamp keeps the upstream text verbatim and the parsed instant when one
// of the known layouts matches. Unparseable text is not a decoding error.
type Timestamp struct {
	Time time.Time
	Raw  string

	// literal marks Raw as a non-string JSON value, emitted as is.
	literal bool
}

// NewTimestamp builds a timestamp rendered as RFC3339 in UTC.
func NewTimestamp(t time.Time) Timestamp {
	t = t.UTC()
	return Timestamp{Time: t, Raw: t.Format(time.RFC3339)}
}

// IsZero reports whether no instant could be recovered.
func (t Timestamp) IsZero() bool {
	return t.Time.IsZero()
}

func (t Timestamp) String() string {
	return t.Raw
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.literal && t.Raw != "" {
		return []byte(t.Raw), nil
	}
	if t.Raw == "" && t.Time.IsZero() {
		return []byte("null"), nil
	}
	raw := t.Raw
	if raw == "" {
		raw = t.Time.UTC().Format(time.RFC3339)
	}
	return json.Marshal(raw)
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	*t = timestampFromAny(json.Get(data))
	return nil
}

func timestampFromAny(v jsoniter.Any) Timestamp {
	switch v.ValueType() {
	case jsoniter.InvalidValue, jsoniter.NilValue:
		return Timestamp{}
	case jsoniter.StringValue:
		raw := v.ToString()
		return Timestamp{Raw: raw, Time: parseTimestamp(raw)}
	default:
		return Timestamp{Raw: strings.Clone(v.ToString()), literal: true}
	}
}

func parseTimestamp(raw string) time.Time {
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return time.Time{}
}

// Date is a calendar day of the activity timeline.
type Date struct {
	Timestamp
}

// NewDate truncates t to its UTC calendar day.
func NewDate(t time.Time) Date {
	t = t.UTC()
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Date{Timestamp{Time: day, Raw: day.Format(DateLayout)}}
}

// Day returns the calendar day of the parsed instant, zero if unknown.
func (d Date) Day() time.Time {
	if d.Time.IsZero() {
		return time.Time{}
	}
	t := d.Time.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
