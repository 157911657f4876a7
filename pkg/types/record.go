// Package types defines the data model shared by the templee packages.
//
// This package contains:
//   - Record: one element of a collection, an arbitrary key/value mapping
//   - Clone and Records: copying and normalising record sequences
//   - ToNumber and ToString: the loose coercions used by comparisons and
//     template substitution
//   - Error: structured errors for record loading and CLI parsing
package types

// Record is one element of a collection. No schema is enforced; values are
// strings, numbers, booleans, nil, nested mappings or sequences.
type Record = map[string]interface{}

// Clone copies the own keys of r into a fresh record. Nested mappings and
// sequences are shared, only the top level is copied. A nil record clones
// to an empty one.
func Clone(r Record) Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CloneAll clones every record of rs into a new slice.
func CloneAll(rs []Record) []Record {
	out := make([]Record, len(rs))
	for i, r := range rs {
		out[i] = Clone(r)
	}
	return out
}

// Records normalises v into a record sequence. It accepts a single record,
// []Record, or []interface{} whose elements are records. Elements that are
// not mappings are dropped. Any other value yields an empty sequence.
func Records(v interface{}) []Record {
	switch t := v.(type) {
	case nil:
		return []Record{}
	case Record:
		return []Record{t}
	case []Record:
		return t
	case []interface{}:
		out := make([]Record, 0, len(t))
		for _, item := range t {
			if r, ok := AsRecord(item); ok {
				out = append(out, r)
			}
		}
		return out
	default:
		return []Record{}
	}
}

// AsRecord reports whether v is a record and returns it.
func AsRecord(v interface{}) (Record, bool) {
	switch t := v.(type) {
	case Record:
		return t, t != nil
	default:
		return nil, false
	}
}
