// Package lang implements glass, a small dynamically-typed expression
// language.
//
// Source text flows through three stages, any of which may stop with a
// [*Diagnostic]:
//
//	source -> Tokenize -> Parse -> (*Evaluator).Evaluate -> Value
//
// [Run] chains all three.
//
// # Grammar
//
// Lowest to highest binding. Every binary level is left-associative,
// including exponentiation, so 2 ** 3 ** 2 is 64.
//
//	expression → or
//	or         → and ("or" and)*
//	and        → equality ("and" equality)*
//	equality   → comparison (("==" | "!=") comparison)*
//	comparison → term (("<" | ">" | "<=" | ">=") term)*
//	term       → factor (("+" | "-") factor)*
//	factor     → power (("*" | "/" | "%") power)*
//	power      → unary ("**" unary)*
//	unary      → ("-" | "+" | "not") unary | atom
//	atom       → number | string | "true" | "false" | "void"
//	           | identifier | identifier "(" args ")"
//	           | "(" expression ")"
//	           | "[" (expression ("," expression)* ","?)? "]"
//	           | "{" (key ":" expression ("," key ":" expression)* ","?)? "}"
//
// Numbers are decimal (42, 3.14) or prefixed integers (0xff, 0o17, 0b101).
// Strings are double-quoted and support the escapes \n \t \r \0 \\ \" \'.
// Line comments start with //.
//
// # Values
//
// Evaluation produces a [Value]: [Num], [Str], [Bool], [List], [Dict] or
// [Void]. Operators are defined for specific type pairs only (see [Add],
// [Mul] and friends); any other combination is an InvalidOperation
// diagnostic naming both types.
//
// Identifiers, calls and the statement nodes are parsed or declared but have
// no evaluation semantics. Evaluating one yields an Unsupported diagnostic.
package lang
