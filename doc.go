// Package calculus implements a floating-point calculator with numeric
// calculus built on the same evaluator.
//
// Expressions use the operators + - * / ^, parentheses, the functions sin,
// cos, tan, sqrt, log, and exp, and the constants pi and e. Evaluation goes
// through three stages which are all exported: Tokenize scans text into
// tokens, ToPostfix reorders them with the shunting-yard algorithm, and
// EvaluatePostfix reduces the postfix sequence on an operand stack. Evaluate
// runs all three and also handles assignments like "x = 2*pi", which store
// into a caller-owned Symbols table.
//
// Operators at the same precedence always group left to right, including
// exponentiation, so "2^3^2" is 64. There is no unary minus; write "0-x".
//
// The calculus operations treat an expression as a function of one variable.
// Compile parses an expression once with that variable left free, and the
// resulting Function can be evaluated, integrated, differentiated
// numerically, or probed for limits and continuity. Derivative produces a
// symbolic derivative as expression text that Evaluate accepts.
package calculus
