package graph

import "strings"

// ValidateID rejects non-positive ids. NodeID/EdgeID are 1-based; 0 always
// means "absent" and is never a valid argument from a caller.
func ValidateID(id uint64) error {
	if id == 0 {
		return NewError(KindInvalidID, "id must be positive, got 0")
	}
	return nil
}

// ValidateEdgeLabel requires a non-empty, canonical string no longer than
// MaxLabelBytes.
func ValidateEdgeLabel(label string) error {
	if label == "" {
		return NewError(KindInvalidLabel, "label must not be empty")
	}
	if len(label) > MaxLabelBytes {
		return NewError(KindInvalidLabel, "label exceeds %d bytes", MaxLabelBytes)
	}
	return nil
}

// ValidateProperties checks each key with surrounding whitespace trimmed
// (it does not modify props; CanonicalizeProperties does that) and rejects
// any key or value outside the bounds the data model allows: an empty or
// oversize key, a Kind outside {int, float, bool, string}, or an oversize
// string.
func ValidateProperties(props PropertyMap) error {
	for k, v := range props {
		key := strings.TrimSpace(k)
		if key == "" {
			return NewError(KindInvalidProperty, "property key must not be empty")
		}
		if len(key) > MaxPropertyKeyBytes {
			return NewError(KindInvalidProperty, "property key %q exceeds %d bytes", key, MaxPropertyKeyBytes)
		}
		if v.Kind < KindInt || v.Kind > KindString {
			return NewError(KindInvalidProperty, "property %q has unsupported value kind %d", key, v.Kind)
		}
		if v.Kind == KindString && len(v.S) > MaxPropertyStringBytes {
			return NewError(KindInvalidProperty, "property %q value exceeds %d bytes", key, MaxPropertyStringBytes)
		}
	}
	return nil
}

// CanonicalizeProperties returns a copy of props with trimmed keys. It is
// applied before indexing and storage so map lookups are consistent
// regardless of incidental caller whitespace.
func CanonicalizeProperties(props PropertyMap) PropertyMap {
	if props == nil {
		return nil
	}
	out := make(PropertyMap, len(props))
	for k, v := range props {
		out[strings.TrimSpace(k)] = v
	}
	return out
}
