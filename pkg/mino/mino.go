package mino

import (
	"sort"
	"strings"
)

// Mino is a set of cell offsets or matrix positions.
type Mino []Point

// String lists the points in row order, so equal sets print the same.
func (m Mino) String() string {
	sorted := make(Mino, len(m))
	copy(sorted, m)
	sort.Sort(sorted)

	var b strings.Builder
	for i := range sorted {
		if i > 0 {
			b.WriteRune(',')
		}

		b.WriteString(sorted[i].String())
	}

	return b.String()
}

func (m Mino) Len() int      { return len(m) }
func (m Mino) Swap(i, j int) { m[i], m[j] = m[j], m[i] }
func (m Mino) Less(i, j int) bool {
	return m[i].Y < m[j].Y || (m[i].Y == m[j].Y && m[i].X < m[j].X)
}
