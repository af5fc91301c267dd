package domain

// Dataset is the concatenation of per-file report tables in the order they
// were appended. Row order inside each table is preserved.
type Dataset struct {
	Tables []*ReportTable `json:"tables"`
}

// Append adds a table to the end of the dataset. Nil and empty tables are ignored.
func (d *Dataset) Append(t *ReportTable) {
	if t == nil || t.Len() == 0 {
		return
	}
	d.Tables = append(d.Tables, t)
}

// Len returns the total number of rows across all tables.
func (d *Dataset) Len() int {
	n := 0
	for _, t := range d.Tables {
		n += t.Len()
	}
	return n
}

// Empty reports whether the dataset holds no rows.
func (d *Dataset) Empty() bool {
	return d.Len() == 0
}

// Columns returns the union of the tables' columns in first-seen order.
func (d *Dataset) Columns() []string {
	var columns []string
	seen := make(map[string]bool)
	for _, t := range d.Tables {
		for _, c := range t.Columns {
			if !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
	}
	return columns
}

// Records returns every row of the dataset aligned to Columns. Cells of
// columns a table does not have are left empty.
func (d *Dataset) Records() [][]string {
	columns := d.Columns()
	index := make(map[string]int, len(columns))
	for i, c := range columns {
		index[c] = i
	}

	records := make([][]string, 0, d.Len())
	for _, t := range d.Tables {
		for i := range t.Rows {
			src := t.Record(i)
			record := make([]string, len(columns))
			for j, c := range t.Columns {
				if j < len(src) {
					record[index[c]] = src[j]
				}
			}
			records = append(records, record)
		}
	}
	return records
}
