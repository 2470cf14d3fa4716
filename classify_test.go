package pbg

import "testing"

func TestClassify(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		desc string
		in   string
		want FieldType
	}{
		{desc: "True", in: "TRUE", want: FTTrue},
		{desc: "False", in: "FALSE", want: FTFalse},
		{desc: "DateTag", in: "DATE", want: FTTPDate},
		{desc: "BoolTag", in: "BOOL", want: FTTPBool},
		{desc: "NumberTag", in: "NUMBER", want: FTTPNumber},
		{desc: "StringTag", in: "STRING", want: FTTPString},
		{desc: "String", in: `'hello'`, want: FTString},
		{desc: "EmptyString", in: `''`, want: FTString},
		{desc: "StringWithEscapedQuote", in: `'it\'s'`, want: FTString},
		{desc: "Var", in: `[user.name]`, want: FTVar},
		{desc: "EmptyVar", in: `[]`, want: FTVar},
		{desc: "Date", in: "2018-01-02", want: FTDate},
		{desc: "DateBogusCalendar", in: "2018-99-99", want: FTDate},
		{desc: "IntegerZero", in: "0", want: FTNumber},
		{desc: "NegativeInteger", in: "-42", want: FTNumber},
		{desc: "PositiveInteger", in: "+42", want: FTNumber},
		{desc: "Float", in: "3.14", want: FTNumber},
		{desc: "Exponent", in: "1e10", want: FTNumber},
		{desc: "NegativeExponent", in: "1.5e-10", want: FTNumber},
		{desc: "Not", in: "!", want: FTNot},
		{desc: "And", in: "&", want: FTAnd},
		{desc: "Or", in: "|", want: FTOr},
		{desc: "Eq", in: "=", want: FTEq},
		{desc: "Neq", in: "!=", want: FTNeq},
		{desc: "Lt", in: "<", want: FTLt},
		{desc: "Gt", in: ">", want: FTGt},
		{desc: "Lte", in: "<=", want: FTLte},
		{desc: "Gte", in: ">=", want: FTGte},
		{desc: "Exst", in: "?", want: FTExst},
		{desc: "Type", in: "@", want: FTType},
		{desc: "Empty", in: "", want: FTNull},
		{desc: "LeadingZero", in: "007", want: FTNull},
		{desc: "BareWord", in: "nonsense", want: FTNull},
		{desc: "UnclosedString", in: `'hello`, want: FTNull},
	} {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			if got := Classify([]byte(tc.in)); got != tc.want {
				t.Errorf("Classify(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestIsDateShapeRejectsWrongLength(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"2018-1-2", "2018-01-023", "18-01-02"} {
		if isDateShape([]byte(in)) {
			t.Errorf("isDateShape(%q) = true, want false", in)
		}
	}
}
