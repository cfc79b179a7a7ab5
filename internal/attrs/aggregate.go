package attrs

import "path/filepath"

// slot is the running total of a directory's already visited children.
type slot struct {
	size uint64
	// incomplete is set when a descendant's size is missing.
	incomplete bool
}

// Aggregate fills in directory sizes as the sum of their immediate
// children, in a single pass over records from last to first.
//
// records must be in enumeration order, so that every descendant of a
// directory has been visited before the directory itself. File records are
// never modified. A directory with a descendant of unknown size is left
// without a size rather than reporting a partial sum.
func Aggregate(records []Record) {
	acc := make(map[string]*slot)

	contribute := func(parent string, size *uint64) {
		s, ok := acc[parent]
		if !ok {
			s = &slot{}
			acc[parent] = s
		}

		if size == nil {
			s.incomplete = true

			return
		}

		s.size += *size
	}

	for i := len(records) - 1; i >= 0; i-- {
		rec := &records[i]

		if !rec.IsDir() {
			contribute(parentKey(rec.Path), rec.Size)

			continue
		}

		key := filepath.Clean(rec.Path)

		var total slot
		if s, ok := acc[key]; ok {
			total = *s
			delete(acc, key)
		}

		if total.incomplete {
			rec.Size = nil
		} else {
			size := total.size
			rec.Size = &size
		}

		// The root's contribution lands in a slot nothing reads.
		contribute(parentKey(rec.Path), rec.Size)
	}
}
