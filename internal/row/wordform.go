package row

// Wordform is an inflected form of a lexeme. LexemeID holds the original
// lexeme id_ until export replaces it with the export-local id.
type Wordform struct {
	ID           string     `json:"id_"`
	LexemeID     string     `json:"lexeme_id"`
	SurfaceForm  string     `json:"surface_form"`
	Alternatives []string   `json:"alternatives"`
	Phonetic     *string    `json:"phonetic"`
	Pending      bool       `json:"pending"`
	Generated    *bool      `json:"generated"`
	Archaic      *bool      `json:"archaic"`
	Hypothetical *bool      `json:"hypothetical"`
	Aspect       *string    `json:"aspect"`
	Polarity     *string    `json:"polarity"`
	Form         *string    `json:"form"`
	Gender       *string    `json:"gender"`
	Number       *string    `json:"number"`
	PluralForm   *string    `json:"plural_form"`
	Subject      *Agreement `json:"subject"`
	DirObj       *Agreement `json:"dir_obj"`
	IndObj       *Agreement `json:"ind_obj"`
	Possessor    *Agreement `json:"possessor"`
	Sources      []string   `json:"sources"`
	Created      *string    `json:"created"`
	Modified     *string    `json:"modified"`
}

// Agreement holds person, number and gender features of a verb argument or possessor.
type Agreement struct {
	Person *string `json:"person"`
	Number *string `json:"number"`
	Gender *string `json:"gender"`
}

var agreementFields = []field{
	{name: "person", kind: kindString},
	{name: "number", kind: kindString},
	{name: "gender", kind: kindString},
}

var wordformFields = []field{
	{name: "id_", kind: kindString, required: true, nonEmpty: true},
	{name: "lexeme_id", kind: kindString, required: true, nonEmpty: true},
	{name: "surface_form", kind: kindString, required: true},
	{name: "alternatives", kind: kindStringList},
	{name: "phonetic", kind: kindString},
	{name: "pending", kind: kindFlag},
	{name: "generated", kind: kindBool},
	{name: "archaic", kind: kindBool},
	{name: "hypothetical", kind: kindBool},
	{name: "aspect", kind: kindString},
	{name: "polarity", kind: kindString},
	{name: "form", kind: kindString},
	{name: "gender", kind: kindString},
	{name: "number", kind: kindString},
	{name: "plural_form", kind: kindString},
	{name: "subject", kind: kindObject, fields: agreementFields},
	{name: "dir_obj", kind: kindObject, fields: agreementFields},
	{name: "ind_obj", kind: kindObject, fields: agreementFields},
	{name: "possessor", kind: kindObject, fields: agreementFields},
	{name: "sources", kind: kindStringList},
	{name: "created", kind: kindString},
	{name: "modified", kind: kindString},
}

// FixWordform repairs known divergences of a raw wordform document in place.
func FixWordform(raw Raw) error {
	renameID(raw)
	migrateStatus(raw)
	return fixObject(raw, wordformFields, "")
}

// NewWordform constructs a Wordform from a fixed document. Unknown fields are rejected.
func NewWordform(raw Raw) (*Wordform, error) {
	var wf Wordform
	if err := construct(raw, &wf); err != nil {
		return nil, err
	}
	return &wf, nil
}

// ParseWordform decodes, fixes and constructs a wordform from one JSON line.
func ParseWordform(line []byte) (*Wordform, error) {
	raw, err := Decode(line)
	if err != nil {
		return nil, err
	}
	if err := FixWordform(raw); err != nil {
		return nil, err
	}
	return NewWordform(raw)
}

// TextFields returns the free-text fields cleaners normalize.
func (w *Wordform) TextFields() []*string {
	fields := []*string{&w.SurfaceForm}
	for i := range w.Alternatives {
		fields = append(fields, &w.Alternatives[i])
	}
	fields = appendSet(fields, w.Phonetic, w.Aspect, w.Polarity, w.Form, w.Gender, w.Number, w.PluralForm)
	for _, agr := range []*Agreement{w.Subject, w.DirObj, w.IndObj, w.Possessor} {
		if agr != nil {
			fields = appendSet(fields, agr.Person, agr.Number, agr.Gender)
		}
	}
	for i := range w.Sources {
		fields = append(fields, &w.Sources[i])
	}
	return fields
}
