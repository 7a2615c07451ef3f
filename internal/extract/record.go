// record.go - ContactRecord, the unit of output of the extraction pipeline.

package extract

// NotFound is the sentinel value for any field that could not be determined.
const NotFound = "Not Found"

// ContactRecord holds the merged result of regex and AI extraction for one
// visiting card. Every field carries either an extracted value or NotFound;
// no field is ever the empty string. Records are immutable once built.
type ContactRecord struct {
	Name        string `json:"Name" bson:"name"`
	Designation string `json:"Designation" bson:"designation"`
	Company     string `json:"Company" bson:"company"`
	Phone       string `json:"Phone" bson:"phone"`
	Email       string `json:"Email" bson:"email"`
	Website     string `json:"Website" bson:"website"`
	Address     string `json:"Address" bson:"address"`
	Industry    string `json:"Industry" bson:"industry"`
	Services    string `json:"Services" bson:"services"`
}

// ContactFields holds the regex-owned subset of a ContactRecord.
type ContactFields struct {
	Phone   string
	Email   string
	Website string
}

// AIFieldKeys lists the six AI-owned field names, in the order the prompt
// requests them and the order they appear in a sheet row.
var AIFieldKeys = []string{"Name", "Designation", "Company", "Address", "Industry", "Services"}

// NotFoundAIFields returns an all-NotFound map for the AI-owned fields, used
// when the LLM call fails and the pipeline degrades to sentinel values.
func NotFoundAIFields() map[string]string {
	m := make(map[string]string, len(AIFieldKeys))
	for _, k := range AIFieldKeys {
		m[k] = NotFound
	}
	return m
}
