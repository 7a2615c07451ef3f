// merge.go - Combines regex-derived and AI-derived fields into one record.

package extract

// Merge builds a ContactRecord from the two extractor outputs. The sources
// own disjoint field sets, so there is no conflict resolution: Phone, Email
// and Website come from the regex fields verbatim; the six descriptive
// fields come from the AI map, with missing keys defaulting to NotFound
// here rather than at the call site. Pure and total.
func Merge(regexFields ContactFields, aiFields map[string]string) ContactRecord {
	return ContactRecord{
		Name:        aiField(aiFields, "Name"),
		Designation: aiField(aiFields, "Designation"),
		Company:     aiField(aiFields, "Company"),
		Phone:       regexFields.Phone,
		Email:       regexFields.Email,
		Website:     regexFields.Website,
		Address:     aiField(aiFields, "Address"),
		Industry:    aiField(aiFields, "Industry"),
		Services:    aiField(aiFields, "Services"),
	}
}

func aiField(m map[string]string, key string) string {
	if v, ok := m[key]; ok && v != "" {
		return v
	}
	return NotFound
}
