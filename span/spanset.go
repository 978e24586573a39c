package span

import "sort"

// SpanSet is a mutable collection of spans.
type SpanSet struct {
	spans []Span
}

// NewSet creates a SpanSet with backing storage sized to the input.
func NewSet(spans ...Span) *SpanSet {
	out := make([]Span, len(spans))
	copy(out, spans)
	return &SpanSet{spans: out}
}

// Add appends a span to the set.
func (ss *SpanSet) Add(s Span) {
	ss.spans = append(ss.spans, s)
}

// Len returns the number of spans in the set.
func (ss *SpanSet) Len() int {
	return len(ss.spans)
}

// Spans returns the underlying spans. The slice is owned by the set.
func (ss *SpanSet) Spans() []Span {
	return ss.spans
}

// Normalize sorts the spans by start offset and merges every span whose start
// lies at or before the running end of the previous merged span. The result is
// sorted, pairwise non-overlapping and minimal. Normalize is idempotent.
func (ss *SpanSet) Normalize() {
	if len(ss.spans) < 2 {
		return
	}

	sort.Slice(ss.spans, func(i, j int) bool {
		if ss.spans[i].Start != ss.spans[j].Start {
			return ss.spans[i].Start < ss.spans[j].Start
		}
		return ss.spans[i].End < ss.spans[j].End
	})

	merged := ss.spans[:1]
	for _, s := range ss.spans[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	ss.spans = merged
}

// Cover returns the smallest single span containing every span in the set,
// or the zero span for an empty set.
func (ss *SpanSet) Cover() Span {
	if len(ss.spans) == 0 {
		return Span{}
	}
	out := ss.spans[0]
	for _, s := range ss.spans[1:] {
		out = Merge(out, s)
	}
	return out
}
