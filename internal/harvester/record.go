package harvester

import "strings"

// NA is the sentinel stored for any field the adapter could not locate.
const NA = "NA"

// Field is one name/value pair of a Record.
type Field struct {
	Name  string
	Value string
}

// Record is the flat field mapping extracted for one URL. Field insertion
// order is preserved so stored documents keep a stable column layout.
// Every record carries source_url from construction onward, even when all
// extracted fields are NA.
type Record struct {
	names  []string
	values map[string]string
}

// NewRecord creates a record for the given source URL.
func NewRecord(sourceURL string) *Record {
	r := &Record{values: make(map[string]string)}
	r.put("source_url", sourceURL)
	return r
}

func (r *Record) put(name, value string) {
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = value
}

// Set stores one field. Empty or whitespace-only values collapse to the NA
// sentinel here, at the record boundary, so adapters never guard individual
// selectors.
func (r *Record) Set(name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = NA
	}
	r.put(name, value)
}

// SetList joins all non-empty values with ", ", or stores NA when none match.
func (r *Record) SetList(name string, values []string) {
	kept := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	r.Set(name, strings.Join(kept, ", "))
}

// Get returns the stored value and whether the field exists.
func (r *Record) Get(name string) (string, bool) {
	v, ok := r.values[name]
	return v, ok
}

// SourceURL returns the URL the record was extracted from.
func (r *Record) SourceURL() string {
	return r.values["source_url"]
}

// Fields returns the record's fields in insertion order.
func (r *Record) Fields() []Field {
	out := make([]Field, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, Field{Name: name, Value: r.values[name]})
	}
	return out
}

// Len reports the number of fields.
func (r *Record) Len() int {
	return len(r.names)
}

// Stamp copies the originating candidate's identity and client metadata onto
// the record, plus the harvest run ID. Called once per record after a
// successful extraction.
func (r *Record) Stamp(cand Candidate, harvestID string) {
	r.Set("record_id", cand.RecordID)
	r.Set("client_name", cand.ClientName)
	r.Set("client_city", cand.ClientCity)
	r.Set("client_speciality", cand.ClientSpecialty)
	r.Set("harvest_id", harvestID)
}
