package scaffold

// Label is a translation key and its English text.
type Label struct {
	Key  string `json:"key" yaml:"key"`
	Text string `json:"text" yaml:"text"`
}

// Labels maps translation keys to text.
type Labels map[string]string

// commonLabelCatalog is shared by every generation and never mutated.
var commonLabelCatalog = []Label{
	{Key: "submit", Text: "Submit"},
	{Key: "reset", Text: "Reset"},
	{Key: "delete", Text: "Delete"},
	{Key: "confirmDelete", Text: "Are you sure you want to delete this item?"},
	{Key: "noresults", Text: "No results"},
	{Key: "close", Text: "Close"},
	{Key: "cancel", Text: "Cancel"},
	{Key: "updated", Text: "Updated"},
	{Key: "field", Text: "Field"},
	{Key: "value", Text: "Value"},
	{Key: "filters", Text: "Filters"},
	{Key: "filter", Text: "Filter"},
	{Key: "unavail", Text: "Data unavailable"},
	{Key: "loading", Text: "Loading..."},
	{Key: "deleted", Text: "Deleted"},
	{Key: "numValidation", Text: "Please, insert a value bigger than zero!"},
	{Key: "stringValidation", Text: "Please type something"},
	{Key: "required", Text: "Field is required"},
	{Key: "recPerPage", Text: "Records per page:"},
	{Key: "id", Text: "ID"},
	{Key: "actions", Text: "Actions"},
}

// CommonLabelList returns the shared labels in catalog order.
func CommonLabelList() []Label {
	return append([]Label(nil), commonLabelCatalog...)
}

// CommonLabels returns a fresh mapping of the shared labels; callers may
// modify it freely.
func CommonLabels() Labels {
	out := make(Labels, len(commonLabelCatalog))
	for _, label := range commonLabelCatalog {
		out[label.Key] = label.Text
	}
	return out
}

// Clone copies the mapping.
func (l Labels) Clone() Labels {
	out := make(Labels, len(l))
	for key, text := range l {
		out[key] = text
	}
	return out
}

// resourceLabelKeys lists form field names then field names, without
// duplicates, in first-seen order.
func resourceLabelKeys(formFields, fields []Field) []string {
	seen := make(map[string]bool, len(formFields)+len(fields))
	keys := make([]string, 0, len(formFields)+len(fields))
	for _, group := range [][]Field{formFields, fields} {
		for _, field := range group {
			if seen[field.Name] {
				continue
			}
			seen[field.Name] = true
			keys = append(keys, field.Name)
		}
	}
	return keys
}
