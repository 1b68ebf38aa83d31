package row_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gabraconv/internal/row"
)

func TestParseLexemeMinimal(t *testing.T) {
	lex, err := row.ParseLexeme([]byte(`{"id_":1,"lemma":"kelb "}`))
	if err != nil {
		t.Fatalf("ParseLexeme returned error: %v", err)
	}
	if lex.ID != "1" {
		t.Fatalf("expected numeric id coerced to \"1\", got %q", lex.ID)
	}
	if lex.Lemma != "kelb " {
		t.Fatalf("fixer must not trim lemma, got %q", lex.Lemma)
	}
	if lex.Pending {
		t.Fatal("expected pending to default to false")
	}
	if lex.Alternatives == nil || len(lex.Alternatives) != 0 {
		t.Fatalf("expected empty alternatives, got %#v", lex.Alternatives)
	}
	if lex.POS != nil || lex.Root != nil || lex.NormFreq != nil {
		t.Fatalf("expected optional fields to be null: %+v", lex)
	}
}

func TestFixLexemeDivergences(t *testing.T) {
	line := `{
		"_id": {"$oid": "5200a366e36f237975000f26"},
		"lemma": "kiteb",
		"alternatives": "ktieb",
		"root": "k-t-b",
		"derived_form": "1",
		"frequency": 12.0,
		"norm_freq": "0.5",
		"archaic": 0,
		"hypothetical": "yes",
		"gloss": "to write",
		"sources": ["Spagnol2011", null],
		"pos": "",
		"status": "pending",
		"created": {"$date": "2013-09-06T07:34:30.000Z"}
	}`
	lex, err := row.ParseLexeme([]byte(line))
	if err != nil {
		t.Fatalf("ParseLexeme returned error: %v", err)
	}
	if lex.ID != "5200a366e36f237975000f26" {
		t.Fatalf("unexpected id %q", lex.ID)
	}
	if len(lex.Alternatives) != 1 || lex.Alternatives[0] != "ktieb" {
		t.Fatalf("expected wrapped alternatives, got %v", lex.Alternatives)
	}
	if lex.Root == nil || lex.Root.Radicals == nil || *lex.Root.Radicals != "k-t-b" || lex.Root.Variant != nil {
		t.Fatalf("unexpected root %+v", lex.Root)
	}
	if lex.DerivedForm == nil || *lex.DerivedForm != 1 {
		t.Fatalf("unexpected derived_form %v", lex.DerivedForm)
	}
	if lex.Frequency == nil || *lex.Frequency != 12 {
		t.Fatalf("unexpected frequency %v", lex.Frequency)
	}
	if lex.NormFreq == nil || *lex.NormFreq != 0.5 {
		t.Fatalf("unexpected norm_freq %v", lex.NormFreq)
	}
	if lex.Archaic == nil || *lex.Archaic {
		t.Fatalf("expected archaic=false, got %v", lex.Archaic)
	}
	if lex.Hypothetical == nil || !*lex.Hypothetical {
		t.Fatalf("expected hypothetical=true, got %v", lex.Hypothetical)
	}
	if len(lex.Glosses) != 1 || lex.Glosses[0].Gloss == nil || *lex.Glosses[0].Gloss != "to write" {
		t.Fatalf("expected legacy gloss migrated, got %+v", lex.Glosses)
	}
	if len(lex.Glosses[0].Examples) != 0 {
		t.Fatalf("expected no examples, got %+v", lex.Glosses[0].Examples)
	}
	if len(lex.Sources) != 1 || lex.Sources[0] != "Spagnol2011" {
		t.Fatalf("expected null source dropped, got %v", lex.Sources)
	}
	if lex.POS != nil {
		t.Fatalf("expected empty pos to become null, got %q", *lex.POS)
	}
	if !lex.Pending {
		t.Fatal("expected legacy status to set pending")
	}
	if lex.Created == nil || *lex.Created != "2013-09-06T07:34:30.000Z" {
		t.Fatalf("unexpected created %v", lex.Created)
	}
}

func TestFixLexemeGlossShapes(t *testing.T) {
	line := `{"id_":"a","lemma":"ilma","glosses":{"gloss":"water","examples":["ilma kiesaħ", {"example":"ilma baħar","type":"phrase"}]}}`
	lex, err := row.ParseLexeme([]byte(line))
	if err != nil {
		t.Fatalf("ParseLexeme returned error: %v", err)
	}
	if len(lex.Glosses) != 1 {
		t.Fatalf("expected single gloss object wrapped, got %+v", lex.Glosses)
	}
	examples := lex.Glosses[0].Examples
	if len(examples) != 2 {
		t.Fatalf("expected two examples, got %+v", examples)
	}
	if examples[0].Example == nil || *examples[0].Example != "ilma kiesaħ" || examples[0].Type != nil {
		t.Fatalf("unexpected first example %+v", examples[0])
	}
	if examples[1].Type == nil || *examples[1].Type != "phrase" {
		t.Fatalf("unexpected second example %+v", examples[1])
	}
}

func TestFixIsIdempotent(t *testing.T) {
	lines := []string{
		`{"_id":{"$oid":"x1"},"lemma":"kelb","alternatives":"klieb","root":"k-l-b","frequency":"3","gloss":"dog","status":"pending"}`,
		`{"id_":7,"lemma":"qattus","glosses":["cat",{"gloss":"tomcat","examples":"qattus iswed"}],"norm_freq":2,"pending":"no"}`,
		`{"id_":"w1","lexeme_id":{"$oid":"x1"},"surface_form":"kelb","subject":{"person":"P3"},"generated":1,"sources":"Spagnol2011"}`,
	}
	fixers := []func(row.Raw) error{row.FixLexeme, row.FixLexeme, row.FixWordform}
	for i, line := range lines {
		raw, err := row.Decode([]byte(line))
		if err != nil {
			t.Fatalf("line %d: Decode returned error: %v", i, err)
		}
		if err := fixers[i](raw); err != nil {
			t.Fatalf("line %d: first fix returned error: %v", i, err)
		}
		once, err := json.Marshal(raw)
		if err != nil {
			t.Fatalf("line %d: marshal: %v", i, err)
		}
		if err := fixers[i](raw); err != nil {
			t.Fatalf("line %d: second fix returned error: %v", i, err)
		}
		twice, err := json.Marshal(raw)
		if err != nil {
			t.Fatalf("line %d: marshal: %v", i, err)
		}
		if string(once) != string(twice) {
			t.Fatalf("line %d: fix not idempotent\nonce:  %s\ntwice: %s", i, once, twice)
		}
	}
}

func TestParseLexemeUnfixable(t *testing.T) {
	cases := []struct {
		name  string
		line  string
		field string
	}{
		{name: "invalid json", line: `{"id_":1,`},
		{name: "not an object", line: `[1,2]`},
		{name: "trailing data", line: `{"id_":1,"lemma":"x"} {}`},
		{name: "missing id", line: `{"lemma":"x"}`, field: "id_"},
		{name: "null lemma", line: `{"id_":1,"lemma":null}`, field: "lemma"},
		{name: "empty id", line: `{"id_":"","lemma":"x"}`, field: "id_"},
		{name: "bool for int", line: `{"id_":1,"lemma":"x","frequency":true}`, field: "frequency"},
		{name: "fractional int", line: `{"id_":1,"lemma":"x","derived_form":1.5}`, field: "derived_form"},
		{name: "object for string", line: `{"id_":1,"lemma":{"text":"x"}}`, field: "lemma"},
		{name: "bad bool", line: `{"id_":1,"lemma":"x","archaic":"maybe"}`, field: "archaic"},
		{name: "nested bad value", line: `{"id_":1,"lemma":"x","root":{"variant":"two"}}`, field: "root.variant"},
		{name: "unknown field", line: `{"id_":1,"lemma":"x","colour":"red"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := row.ParseLexeme([]byte(tc.line))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, row.ErrUnfixable) {
				t.Fatalf("expected ErrUnfixable, got %v", err)
			}
			var unfixable *row.UnfixableError
			if !errors.As(err, &unfixable) {
				t.Fatalf("expected *UnfixableError, got %T", err)
			}
			if unfixable.Field != tc.field {
				t.Fatalf("expected field %q, got %q (%v)", tc.field, unfixable.Field, err)
			}
		})
	}
}

func TestParseWordform(t *testing.T) {
	line := `{"_id":12,"lexeme_id":{"$oid":"abc"},"surface_form":"klieb","number":"pl","possessor":{"person":"P1","number":"sg"},"pending":"0","generated":"true"}`
	wf, err := row.ParseWordform([]byte(line))
	if err != nil {
		t.Fatalf("ParseWordform returned error: %v", err)
	}
	if wf.ID != "12" || wf.LexemeID != "abc" || wf.SurfaceForm != "klieb" {
		t.Fatalf("unexpected identity fields %+v", wf)
	}
	if wf.Possessor == nil || wf.Possessor.Person == nil || *wf.Possessor.Person != "P1" || wf.Possessor.Gender != nil {
		t.Fatalf("unexpected possessor %+v", wf.Possessor)
	}
	if wf.Subject != nil {
		t.Fatalf("expected subject to be null, got %+v", wf.Subject)
	}
	if wf.Pending {
		t.Fatal("expected pending=false")
	}
	if wf.Generated == nil || !*wf.Generated {
		t.Fatalf("expected generated=true, got %v", wf.Generated)
	}
}

func TestParseWordformMissingLexemeID(t *testing.T) {
	_, err := row.ParseWordform([]byte(`{"id_":1,"surface_form":"x"}`))
	if err == nil || !strings.Contains(err.Error(), "lexeme_id") {
		t.Fatalf("expected lexeme_id error, got %v", err)
	}
}

func TestTextFields(t *testing.T) {
	lex, err := row.ParseLexeme([]byte(`{"id_":1,"lemma":"a","alternatives":["b"],"pos":"NOUN","glosses":[{"gloss":"c","examples":[{"example":"d"}]}]}`))
	if err != nil {
		t.Fatalf("ParseLexeme returned error: %v", err)
	}
	fields := lex.TextFields()
	var got []string
	for _, f := range fields {
		got = append(got, *f)
	}
	if strings.Join(got, ",") != "a,b,NOUN,c,d" {
		t.Fatalf("unexpected text fields %v", got)
	}
	*fields[0] = "changed"
	if lex.Lemma != "changed" {
		t.Fatal("expected text fields to point into the row")
	}
}

func TestIsProperNoun(t *testing.T) {
	cases := map[string]bool{
		`{"id_":1,"lemma":"Malta","pos":"NOUN_PROP"}`:         true,
		`{"id_":1,"lemma":"Ġorġ","onomastic_type":"persuna"}`: true,
		`{"id_":1,"lemma":"kelb","pos":"NOUN"}`:               false,
	}
	for line, want := range cases {
		lex, err := row.ParseLexeme([]byte(line))
		if err != nil {
			t.Fatalf("ParseLexeme(%s) returned error: %v", line, err)
		}
		if lex.IsProperNoun() != want {
			t.Fatalf("IsProperNoun(%s) = %v, want %v", line, !want, want)
		}
	}
}

func TestIdentify(t *testing.T) {
	tests := []struct {
		line   string
		want   string
		wantOK bool
	}{
		{`{"id_":"L1","lemma":"kelb"}`, "L1", true},
		{`{"_id":{"$oid":"5200a366e36f237975000f26"}}`, "5200a366e36f237975000f26", true},
		{`{"id_":7}`, "7", true},
		{`{"id_":"","_id":"M1"}`, "M1", true},
		{`{"lemma":"no id"}`, "", false},
		{`{"id_":true}`, "", false},
		{`not json`, "", false},
	}
	for _, tt := range tests {
		got, ok := row.Identify([]byte(tt.line))
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("Identify(%s) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.wantOK)
		}
	}
}
