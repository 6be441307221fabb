package wall

// Cleanup drops inactive and degenerate centerlines, stamps each survivor
// with its UniqueID and removes duplicates, folding a duplicate's source
// handles into the first centerline with the same id. Input order is kept.
// Cleanup is idempotent.
func Cleanup(lines []CenterLine) []CenterLine {
	out := make([]CenterLine, 0, len(lines))
	seen := make(map[string]int, len(lines))
	for _, c := range lines {
		if !c.Active || c.IsDegenerate() {
			continue
		}
		c.UniqueID = UniqueID(c.LineSegment2D)
		if k, ok := seen[c.UniqueID]; ok {
			out[k].SourceHandles = mergeHandles(out[k].SourceHandles, c.SourceHandles)
			if c.Thickness > out[k].Thickness {
				out[k].Thickness = c.Thickness
			}
			continue
		}
		c.SourceHandles = mergeHandles(c.SourceHandles, nil)
		seen[c.UniqueID] = len(out)
		out = append(out, c)
	}
	return out
}
