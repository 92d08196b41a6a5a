// Package slice provides generic slice helpers.
package slice

// Map returns a slice that contains fn(v) for every v in in.
func Map[In, Out any](in []In, fn func(In) Out) []Out {
	out := make([]Out, len(in))
	for i, v := range in {
		out[i] = fn(v)
	}
	return out
}
