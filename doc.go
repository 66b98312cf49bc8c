// Package calc implements the expression engine behind a keypad calculator.
//
// Expressions are what a person builds by pressing keys: "2(3+4)" is a
// multiplication, "2sin(1)" is too, and "π" stands for the constant. The
// display glyphs – × ÷ are accepted alongside - * /. Functions are sin, cos,
// tan, cot and sqrt, each of one argument; trigonometry is in radians.
//
// Evaluate never fails outright. Every input yields an Outcome: a finite
// Value, Infinite, Incomplete (the expression could still become valid by
// typing more), or Error.
package calc
