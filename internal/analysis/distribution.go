package analysis

import "sort"

// BuildLengthTable groups the ordered corpus by exact character length in a
// single pass. Group order and the example lists inside each group follow
// first appearance in the corpus, which is already sorted by file row.
func BuildLengthTable(corpus []RowRecord) *LengthFrequencyTable {
	t := &LengthFrequencyTable{byLength: make(map[int]int)}

	for _, row := range corpus {
		i, ok := t.byLength[row.CharCount]
		if !ok {
			i = len(t.Groups)
			t.byLength[row.CharCount] = i
			t.Groups = append(t.Groups, LengthGroup{Length: row.CharCount})
		}
		g := &t.Groups[i]
		g.Count++
		g.FileRows = append(g.FileRows, row.FileRow)
		g.DataIndices = append(g.DataIndices, row.DataIndex)
	}

	return t
}

// BuildPageTable derives the page-bucket distribution from the length table
// rather than re-scanning raw rows: each length group is mapped through
// ceiling division by pageSize and re-grouped. Length groups are visited in
// ascending length order so bucket example lists are deterministic, and the
// resulting buckets are sorted ascending.
func BuildPageTable(lengths *LengthFrequencyTable, pageSize int) *PageFrequencyTable {
	byLength := make([]LengthGroup, len(lengths.Groups))
	copy(byLength, lengths.Groups)
	sort.Slice(byLength, func(i, j int) bool {
		return byLength[i].Length < byLength[j].Length
	})

	byBucket := make(map[int]int)
	t := &PageFrequencyTable{PageSize: pageSize}

	for _, g := range byLength {
		bucket := PageBucket(g.Length, pageSize)
		i, ok := byBucket[bucket]
		if !ok {
			i = len(t.Groups)
			byBucket[bucket] = i
			t.Groups = append(t.Groups, PageGroup{Bucket: bucket})
		}
		pg := &t.Groups[i]
		pg.Count += g.Count
		pg.FileRows = append(pg.FileRows, g.FileRows...)
		pg.DataIndices = append(pg.DataIndices, g.DataIndices...)
	}

	sort.Slice(t.Groups, func(i, j int) bool {
		return t.Groups[i].Bucket < t.Groups[j].Bucket
	})
	return t
}
