package normalize

import "strconv"

// RawRecord is one untyped record as the fetch adapter hands it over: the
// decoded JSON object for a single team, player, season split, draft pick or
// prospect, with API envelope keys already stripped.
type RawRecord map[string]any

// Child returns a nested object field, or an empty record when the field is
// missing or not an object.
func (r RawRecord) Child(key string) RawRecord {
	value, ok := r[key]
	if !ok {
		return RawRecord{}
	}
	child, ok := value.(map[string]any)
	if !ok {
		return RawRecord{}
	}
	return RawRecord(child)
}

// Children returns a nested array-of-objects field, dropping non-object
// elements.
func (r RawRecord) Children(key string) []RawRecord {
	value, ok := r[key]
	if !ok {
		return nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	out := make([]RawRecord, 0, len(items))
	for _, item := range items {
		child, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, RawRecord(child))
	}
	return out
}

// Has reports whether the field is present with a non-nil value.
func (r RawRecord) Has(key string) bool {
	value, ok := r[key]
	return ok && value != nil
}

// Str returns a string field, stringifying numbers the feed sometimes sends
// where text is expected (e.g. draft round "1").
func (r RawRecord) Str(key string) string {
	switch v := r[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Int64 returns an integer field, tolerating the float64 that generic JSON
// decoding produces and numeric strings.
func (r RawRecord) Int64(key string) int64 {
	switch v := r[key].(type) {
	case float64:
		return int64(v)
	case int64:
		return v
	case int:
		return int64(v)
	case string:
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return 0
}

// Int is Int64 narrowed for counter columns.
func (r RawRecord) Int(key string) int {
	return int(r.Int64(key))
}

// Float returns a floating-point field with the same tolerance as Int64.
func (r RawRecord) Float(key string) float64 {
	switch v := r[key].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return 0
}

// Bool returns a boolean field, tolerating string forms.
func (r RawRecord) Bool(key string) bool {
	switch v := r[key].(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		return err == nil && b
	}
	return false
}
