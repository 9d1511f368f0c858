package report

// Span is an inclusive range of sheet rows sharing one "Nodes" value.
type Span struct {
	Start int
	End   int
	Value string
}

// mergeRun tracks the run of equal node values currently being scanned.
type mergeRun struct {
	start int
	value string
	open  bool
}

// close ends the run at row end, emitting a span when it covers more than one row.
func (r *mergeRun) close(end int, spans []Span) []Span {
	if r.open && end > r.start {
		spans = append(spans, Span{Start: r.start, End: end, Value: r.value})
	}
	r.open = false
	return spans
}

// MergeSpans scans node values written at consecutive rows starting at
// firstRow and returns the spans to merge. Runs of length one are left out.
// The last run is always closed after the loop, so a trailing run is merged
// no matter how the batch lines up with earlier rows.
func MergeSpans(firstRow int, nodes []string) []Span {
	var spans []Span
	var run mergeRun

	for i, node := range nodes {
		row := firstRow + i
		if run.open && node == run.value {
			continue
		}
		spans = run.close(row-1, spans)
		run = mergeRun{start: row, value: node, open: true}
	}

	return run.close(firstRow+len(nodes)-1, spans)
}
