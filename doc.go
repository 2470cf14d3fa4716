// Package pbg implements Prefix Boolean Grammar (PBG), a small
// embeddable language for boolean expressions over a handful of
// scalar types.
//
// # Grammar
//
// An expression is either the literal TRUE, the literal FALSE, or a
// parenthesized operator application:
//
//	expr      := TRUE | FALSE | "(" operator expr-args ")"
//	operator  := "!" | "&" | "|" | "=" | "!=" | "<" | ">" | "<=" | ">=" | "?" | "@"
//	expr-args := expr | any+
//	any       := expr | literal | type-tag
//	literal   := number | string | date | var
//	number    := ["+"|"-"] ("0" | [1-9][0-9]*) ["." [0-9]+] [("e"|"E") ["+"|"-"] [0-9]+]
//	string    := "'" (any byte, with \' and \\ as escapes) "'"
//	date      := YYYY "-" MM "-" DD
//	var       := "[" (any byte, with \] and \\ as escapes) "]"
//	type-tag  := "DATE" | "BOOL" | "NUMBER" | "STRING"
//
// Whitespace (space, tab, newline) is permitted anywhere except inside
// strings and variable names.
//
//	(& TRUE TRUE TRUE TRUE FALSE)
//	(= 10 10 10 10 10)
//	(& (= [a] [b]) (? [d]))
//	(@ BOOL (! FALSE) (? [a]) (& FALSE TRUE))
//
// # Usage
//
// [Parse] turns a source string into an [*Expression]. [Evaluate]
// resolves an [*Expression] against a caller-supplied [Dict] callback,
// returning the boolean result or a structured [*Error].
//
//	expr, err := pbg.Parse([]byte(`(= [status] 'ready')`))
//	if err != nil {
//		// err is a *pbg.Error
//	}
//	result, err := pbg.Evaluate(expr, func(name string) pbg.Field {
//		if name == "status" {
//			return pbg.MakeString("ready")
//		}
//		return pbg.MakeNull()
//	})
//
// A parsed [*Expression] is read-only and may be evaluated any number
// of times, including concurrently, with the same or different
// [Dict]s: [Evaluate] keeps each call's resolved-variable cache
// private to that call. A [Dict] is consulted at most once per VAR
// field, lazily, the first time evaluation actually reaches it — an
// AND or OR that short-circuits never resolves the variables its
// skipped operands reference.
//
// # Disclaimer
//
// This package has no relation to any protocol buffer, textproto, or
// configuration language; PBG is a boolean expression grammar only.
package pbg
