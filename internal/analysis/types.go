package analysis

// Default tuning values, overridable through Config.
const (
	// DefaultPageSize is the approximate character count of one page,
	// used for the coarse page-bucket distribution.
	DefaultPageSize = 3000
	// DefaultWorkers is the worker count for the parallel strategy.
	DefaultWorkers = 8
)

// Config controls one analysis run. The zero value is usable: defaults are
// applied by Analyze.
type Config struct {
	// PageSize is the number of characters per page bucket.
	PageSize int
	// Workers is the number of parallel workers. Ignored in streaming mode.
	Workers int
	// Streaming selects the single-threaded streaming strategy, which
	// processes one line at a time instead of materializing the whole
	// input before chunking.
	Streaming bool
}

func (c Config) withDefaults() Config {
	if c.PageSize <= 0 {
		c.PageSize = DefaultPageSize
	}
	if c.Workers <= 0 {
		c.Workers = DefaultWorkers
	}
	return c
}

// RowRecord is one analyzed row of the input.
type RowRecord struct {
	// FileRow is the 1-based physical line number in the source.
	FileRow int `json:"file_row"`
	// DataIndex is the 0-based position among non-header rows;
	// -1 denotes the header row (FileRow == 1).
	DataIndex int `json:"data_index"`
	// CharCount is the number of Unicode scalar values on the line.
	CharCount int `json:"char_count"`
}

// StatisticsSummary holds descriptive statistics over the full multiset of
// row lengths. Median and quartiles are integers with integer tie averaging,
// matching the report format. A summary over empty input is zero-valued.
type StatisticsSummary struct {
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	Median int     `json:"median"`
	Q1     int     `json:"q1"`
	Q3     int     `json:"q3"`
	StdDev float64 `json:"std_dev"`
}

// LengthGroup aggregates all rows sharing one exact character length.
// FileRows and DataIndices are ordered by first appearance in the sorted
// Corpus, so they are parallel lists.
type LengthGroup struct {
	Length      int   `json:"length"`
	Count       int   `json:"count"`
	FileRows    []int `json:"file_rows"`
	DataIndices []int `json:"data_indices"`
}

// LengthFrequencyTable maps each distinct row length to its group.
// Groups preserves first-seen order within the sorted Corpus.
type LengthFrequencyTable struct {
	Groups []LengthGroup `json:"groups"`

	byLength map[int]int // length -> index into Groups
}

// Group returns the group for the given length, if present.
func (t *LengthFrequencyTable) Group(length int) (LengthGroup, bool) {
	i, ok := t.byLength[length]
	if !ok {
		return LengthGroup{}, false
	}
	return t.Groups[i], true
}

// PageGroup aggregates all rows whose length falls into one page bucket.
type PageGroup struct {
	Bucket      int   `json:"bucket"`
	Count       int   `json:"count"`
	FileRows    []int `json:"file_rows"`
	DataIndices []int `json:"data_indices"`
}

// PageFrequencyTable maps each page bucket to its group. Groups is sorted
// ascending by bucket.
type PageFrequencyTable struct {
	// PageSize is the characters-per-page constant the buckets were
	// derived with.
	PageSize int         `json:"page_size"`
	Groups   []PageGroup `json:"groups"`
}

// OutlierEntry is one distinct length value flagged as an outlier.
type OutlierEntry struct {
	Length int `json:"length"`
	// Count is the number of rows with this length, taken from the
	// frequency table.
	Count int `json:"count"`
}

// OutlierReport classifies distinct length values by the 1.5x IQR rule.
// Only lengths above UpperBound are flagged; LowerBound is computed for
// display but deliberately not applied as a filter.
type OutlierReport struct {
	IQR        int     `json:"iqr"`
	UpperBound float64 `json:"upper_bound"`
	LowerBound float64 `json:"lower_bound"`
	// Entries holds the flagged distinct lengths, sorted descending.
	Entries []OutlierEntry `json:"entries"`
	// TotalRows is the total row count across all flagged lengths.
	TotalRows int `json:"total_rows"`
}

// Result bundles every artifact of one analysis run. The Corpus is owned by
// the caller that produced it and is always sorted ascending by FileRow.
type Result struct {
	Corpus   []RowRecord           `json:"corpus"`
	Lengths  *LengthFrequencyTable `json:"lengths"`
	Pages    *PageFrequencyTable   `json:"pages"`
	Stats    StatisticsSummary     `json:"stats"`
	Outliers OutlierReport         `json:"outliers"`

	TotalRows  int `json:"total_rows"`
	TotalChars int `json:"total_chars"`
	ErrorCount int `json:"error_count"`
}

// PageBucket returns the page bucket for a character count using ceiling
// division: 0 stays 0, 1..pageSize maps to 1, pageSize+1 maps to 2.
func PageBucket(charCount, pageSize int) int {
	return (charCount + pageSize - 1) / pageSize
}
