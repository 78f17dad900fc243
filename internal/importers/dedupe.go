package importers

// CategoryDuplicate is the default category for dropped duplicates.
const CategoryDuplicate = "duplicate"

// sourced is implemented by parsed rows that remember their source record,
// so duplicate warnings can point at the offending row.
type sourced interface {
	SourceRecord() RawRecord
}

// Dedupe keeps the first record for every key and drops later ones,
// reporting one warning per dropped record. Records for which key returns
// the empty string are kept unconditionally.
func Dedupe[T any](records []T, key func(T) string, diag *Diagnostics, category string) []T {
	if category == "" {
		category = CategoryDuplicate
	}
	seen := make(map[string]struct{}, len(records))
	out := make([]T, 0, len(records))
	for _, r := range records {
		k := key(r)
		if k == "" {
			out = append(out, r)
			continue
		}
		if _, dup := seen[k]; dup {
			diag.Warn(category, sourceOf(r), "dubbel record voor sleutel %q genegeerd", k)
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

func sourceOf(v any) RawRecord {
	switch r := v.(type) {
	case RawRecord:
		return r
	case sourced:
		return r.SourceRecord()
	}
	return nil
}
