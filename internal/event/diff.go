package event

// KnownIDs builds the set of identifiers present in a record list,
// typically the previously persisted store.
func KnownIDs(records []*Record) map[string]struct{} {
	known := make(map[string]struct{}, len(records))
	for _, r := range records {
		known[r.ID] = struct{}{}
	}
	return known
}

// SelectNew returns the records whose identifier is absent from the known
// set, preserving input order. Records must have identities assigned.
func SelectNew(current []*Record, known map[string]struct{}) []*Record {
	fresh := make([]*Record, 0)
	for _, r := range current {
		if _, exists := known[r.ID]; !exists {
			fresh = append(fresh, r)
		}
	}
	return fresh
}
