package export

// Dataset defines tabular export content.
type Dataset struct {
	Title   string
	Headers []string
	Rows    []map[string]string
	// Summary is rendered after the table as label/value pairs.
	Summary []SummaryLine
}

// SummaryLine is a single label/value pair appended below the table.
type SummaryLine struct {
	Label string
	Value string
}

func (d Dataset) record(row map[string]string) []string {
	record := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		record[i] = row[header]
	}
	return record
}
