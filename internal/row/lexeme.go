package row

// Lexeme is a dictionary entry in the canonical schema.
type Lexeme struct {
	ID               string   `json:"id_"`
	Lemma            string   `json:"lemma"`
	Alternatives     []string `json:"alternatives"`
	POS              *string  `json:"pos"`
	Root             *Root    `json:"root"`
	DerivedForm      *int64   `json:"derived_form"`
	Form             *string  `json:"form"`
	Gender           *string  `json:"gender"`
	Number           *string  `json:"number"`
	Frequency        *int64   `json:"frequency"`
	NormFreq         *float64 `json:"norm_freq"`
	Pending          bool     `json:"pending"`
	Archaic          *bool    `json:"archaic"`
	Hypothetical     *bool    `json:"hypothetical"`
	Intransitive     *bool    `json:"intransitive"`
	Ditransitive     *bool    `json:"ditransitive"`
	OnomasticType    *string  `json:"onomastic_type"`
	Phonetic         *string  `json:"phonetic"`
	ApertiumParadigm *string  `json:"apertium_paradigm"`
	Glosses          []Gloss  `json:"glosses"`
	Sources          []string `json:"sources"`
	Created          *string  `json:"created"`
	Modified         *string  `json:"modified"`
}

// Root is the consonantal root a lexeme derives from.
type Root struct {
	Radicals *string `json:"radicals"`
	Variant  *int64  `json:"variant"`
}

type Gloss struct {
	Gloss    *string   `json:"gloss"`
	Examples []Example `json:"examples"`
}

type Example struct {
	Example *string `json:"example"`
	Type    *string `json:"type"`
}

var lexemeFields = []field{
	{name: "id_", kind: kindString, required: true, nonEmpty: true},
	{name: "lemma", kind: kindString, required: true},
	{name: "alternatives", kind: kindStringList},
	{name: "pos", kind: kindString},
	{name: "root", kind: kindObject, wrap: "radicals", fields: []field{
		{name: "radicals", kind: kindString},
		{name: "variant", kind: kindInt},
	}},
	{name: "derived_form", kind: kindInt},
	{name: "form", kind: kindString},
	{name: "gender", kind: kindString},
	{name: "number", kind: kindString},
	{name: "frequency", kind: kindInt},
	{name: "norm_freq", kind: kindFloat},
	{name: "pending", kind: kindFlag},
	{name: "archaic", kind: kindBool},
	{name: "hypothetical", kind: kindBool},
	{name: "intransitive", kind: kindBool},
	{name: "ditransitive", kind: kindBool},
	{name: "onomastic_type", kind: kindString},
	{name: "phonetic", kind: kindString},
	{name: "apertium_paradigm", kind: kindString},
	{name: "glosses", kind: kindObjectList, wrap: "gloss", fields: []field{
		{name: "gloss", kind: kindString},
		{name: "examples", kind: kindObjectList, wrap: "example", fields: []field{
			{name: "example", kind: kindString},
			{name: "type", kind: kindString},
		}},
	}},
	{name: "sources", kind: kindStringList},
	{name: "created", kind: kindString},
	{name: "modified", kind: kindString},
}

// FixLexeme repairs known divergences of a raw lexeme document in place.
func FixLexeme(raw Raw) error {
	renameID(raw)
	migrateStatus(raw)
	if legacy, ok := raw["gloss"]; ok {
		if _, has := raw["glosses"]; !has || raw["glosses"] == nil {
			raw["glosses"] = legacy
		}
		delete(raw, "gloss")
	}
	return fixObject(raw, lexemeFields, "")
}

// NewLexeme constructs a Lexeme from a fixed document. Unknown fields are rejected.
func NewLexeme(raw Raw) (*Lexeme, error) {
	var lex Lexeme
	if err := construct(raw, &lex); err != nil {
		return nil, err
	}
	return &lex, nil
}

// ParseLexeme decodes, fixes and constructs a lexeme from one JSON line.
func ParseLexeme(line []byte) (*Lexeme, error) {
	raw, err := Decode(line)
	if err != nil {
		return nil, err
	}
	if err := FixLexeme(raw); err != nil {
		return nil, err
	}
	return NewLexeme(raw)
}

// TextFields returns the free-text fields cleaners normalize, including glosses and examples.
func (l *Lexeme) TextFields() []*string {
	fields := []*string{&l.Lemma}
	for i := range l.Alternatives {
		fields = append(fields, &l.Alternatives[i])
	}
	fields = appendSet(fields, l.POS, l.Form, l.Gender, l.Number, l.OnomasticType, l.Phonetic, l.ApertiumParadigm)
	if l.Root != nil {
		fields = appendSet(fields, l.Root.Radicals)
	}
	for i := range l.Glosses {
		g := &l.Glosses[i]
		fields = appendSet(fields, g.Gloss)
		for j := range g.Examples {
			fields = appendSet(fields, g.Examples[j].Example, g.Examples[j].Type)
		}
	}
	for i := range l.Sources {
		fields = append(fields, &l.Sources[i])
	}
	return fields
}

// IsProperNoun reports whether the lexeme names a person or place.
func (l *Lexeme) IsProperNoun() bool {
	if l.OnomasticType != nil && *l.OnomasticType != "" {
		return true
	}
	return l.POS != nil && *l.POS == "NOUN_PROP"
}

func appendSet(dst []*string, values ...*string) []*string {
	for _, v := range values {
		if v != nil {
			dst = append(dst, v)
		}
	}
	return dst
}
