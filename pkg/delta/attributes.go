package delta

import "reflect"

// ComposeAttributes folds b onto a: the result holds every key in
// a ∪ b, preferring b's value when both define a key. If keepNulls is
// false, keys whose final value is Null are dropped from the result
// (the removal is realized); if true, Null values are kept so a later
// consumer can still realize the removal.
//
// keepNulls exists because a retain-on-retain composition must
// preserve an explicit attribute removal for whatever applies the
// composed change next, while an insert-on-retain composition
// realizes the removal immediately since there is no later consumer
// for that freshly-inserted content.
func ComposeAttributes(a, b Attributes, keepNulls bool) Attributes {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}

	out := make(Attributes, len(a)+len(b))
	for k, v := range a {
		out[k] = v
	}
	for k, v := range b {
		out[k] = v
	}

	if !keepNulls {
		for k, v := range out {
			if IsNull(v) {
				delete(out, k)
			}
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// TransformAttributes rebases b against a. With priority true (a
// wins), keys already present in a are stripped from b; with priority
// false, b passes through unchanged. Either input may be absent.
func TransformAttributes(a, b Attributes, priority bool) Attributes {
	if len(b) == 0 {
		return nil
	}
	if !priority || len(a) == 0 {
		out := make(Attributes, len(b))
		for k, v := range b {
			out[k] = v
		}
		return out
	}

	out := make(Attributes, len(b))
	for k, v := range b {
		if _, clash := a[k]; clash {
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// DiffAttributes returns a map recording, for every key where a and b
// differ, b's value — using the Null sentinel when b lacks a key that
// a has. Used by the whole-document facade's Invert/Diff; kept here
// since it is the precise inverse of ComposeAttributes.
func DiffAttributes(a, b Attributes) Attributes {
	out := make(Attributes)
	for k, bv := range b {
		if av, ok := a[k]; !ok || !valueEqual(av, bv) {
			out[k] = bv
		}
	}
	for k := range a {
		if _, ok := b[k]; !ok {
			out[k] = Null
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// AttributesEqual reports deep equality, treating nil and empty as
// identical.
func AttributesEqual(a, b Attributes) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !valueEqual(av, bv) {
			return false
		}
	}
	return true
}

// valueEqual compares two attribute values, treating the Null
// sentinel as equal only to itself.
func valueEqual(a, b any) bool {
	an, aNull := a.(nullSentinel)
	bn, bNull := b.(nullSentinel)
	if aNull || bNull {
		return aNull && bNull && an == bn
	}
	return reflect.DeepEqual(a, b)
}
