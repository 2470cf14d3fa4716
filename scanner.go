package pbg

// fieldSpan locates one syntactic field inside a source string: the
// byte offset of its first byte and its length in bytes, including
// any delimiting quotes or brackets.
type fieldSpan struct {
	start  int
	length int
}

// scanResult is the output of scanning a source string: every field's
// position, in source order, and the offset of every group-closing
// ')', also in source order. The parser (pass 3) consumes both to
// build the tree.
type scanResult struct {
	fields      []fieldSpan
	closeParens []int
}

// fieldCounts is the tally produced by the first scanning pass,
// checked against what the second pass (and, ultimately, the parser)
// actually produces.
type fieldCounts struct {
	total         int
	varFields     int
	groupClosings int
	maxDepth      int
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n'
}

// fieldEnd returns the exclusive end offset of the field starting at
// src[start]. A '\''-opened field runs until the next unescaped
// '\''; a '['-opened field runs until the next unescaped ']'; any
// other field runs until the next whitespace byte or parenthesis.
// "Unescaped" means not immediately preceded by a backslash.
func fieldEnd(src []byte, start int) (int, *Error) {
	switch src[start] {
	case '\'':
		for i := start + 1; i < len(src); i++ {
			if src[i] == '\'' && src[i-1] != '\\' {
				return i + 1, nil
			}
		}
		return 0, newSyntaxError(src, start, "Unclosed string")
	case '[':
		for i := start + 1; i < len(src); i++ {
			if src[i] == ']' && src[i-1] != '\\' {
				return i + 1, nil
			}
		}
		return 0, newSyntaxError(src, start, "Unclosed variable")
	}
	i := start
	for i < len(src) && !isSpace(src[i]) && src[i] != '(' && src[i] != ')' {
		i++
	}
	return i, nil
}

// countFields is scanner pass 1: a single walk that tracks
// parenthesis depth and the "reached end" event (depth returning to
// 0), validating shallow syntax along the way and tallying how many
// fields, variable fields, group closings and maximum nesting depth
// the source contains.
func countFields(src []byte) (fieldCounts, *Error) {
	var c fieldCounts
	depth := 0
	reachedEnd := false
	n := len(src)
	for i := 0; i < n; {
		b := src[i]
		if isSpace(b) {
			i++
			continue
		}
		switch b {
		case '(':
			if reachedEnd {
				return c, newSyntaxError(src, i, "Too many opening parentheses yield multiple expressions")
			}
			depth++
			if depth > c.maxDepth {
				c.maxDepth = depth
			}
			i++
			continue
		case ')':
			depth--
			if depth < 0 {
				return c, newSyntaxError(src, i, "Too many closing parentheses")
			}
			c.groupClosings++
			i++
			if depth == 0 {
				reachedEnd = true
			}
			continue
		}
		if reachedEnd {
			return c, newSyntaxError(src, i, "Too many opening parentheses yield multiple expressions")
		}
		end, err := fieldEnd(src, i)
		if err != nil {
			return c, err
		}
		c.total++
		if src[i] == '[' {
			c.varFields++
		}
		if depth == 0 {
			reachedEnd = true
		}
		i = end
	}
	if depth != 0 {
		return c, newSyntaxError(src, n, "Too few closing parentheses")
	}
	if c.total == 0 {
		return c, newSyntaxError(src, 0, "No fields in expression")
	}
	return c, nil
}

// groupFrame tracks, for one open '(' ... ')' group, whether its
// first field (which must be an operator) has been seen yet.
type groupFrame struct {
	sawFirst bool
}

// locateFields is scanner pass 2: a second walk that records each
// field's position and each ')''s offset, and enforces the field-
// ordering rule — the first field of every group must be an operator,
// and no other field in that group may be one.
func locateFields(src []byte, counts fieldCounts) ([]fieldSpan, []int, *Error) {
	fields := make([]fieldSpan, 0, counts.total)
	closeParens := make([]int, 0, counts.groupClosings)
	stack := make([]groupFrame, 0, counts.maxDepth)

	n := len(src)
	for i := 0; i < n; {
		b := src[i]
		if isSpace(b) {
			i++
			continue
		}
		switch b {
		case '(':
			stack = append(stack, groupFrame{})
			i++
			continue
		case ')':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
			closeParens = append(closeParens, i)
			i++
			continue
		}
		end, err := fieldEnd(src, i)
		if err != nil {
			return nil, nil, err
		}
		if len(stack) > 0 {
			top := &stack[len(stack)-1]
			isOp := Classify(src[i:end]).IsOp()
			switch {
			case !top.sawFirst && !isOp:
				return nil, nil, newSyntaxError(src, i, "Field ordering not respected")
			case top.sawFirst && isOp:
				return nil, nil, newSyntaxError(src, i, "Field ordering not respected")
			}
			top.sawFirst = true
		}
		fields = append(fields, fieldSpan{start: i, length: end - i})
		i = end
	}
	return fields, closeParens, nil
}

// scan runs both scanner passes over src and returns the field and
// close-paren positions the parser needs to build the tree.
func scan(src []byte) (*scanResult, *Error) {
	counts, err := countFields(src)
	if err != nil {
		return nil, err
	}
	fields, closeParens, err := locateFields(src, counts)
	if err != nil {
		return nil, err
	}
	if len(fields) != counts.total || len(closeParens) != counts.groupClosings {
		return nil, newStateError(
			"scan passes disagree: pass 1 counted %d field(s)/%d closing(s), pass 2 located %d/%d",
			counts.total, counts.groupClosings, len(fields), len(closeParens))
	}
	return &scanResult{fields: fields, closeParens: closeParens}, nil
}
