// Package parser turns UXL text into a validated [document.Document].
//
// # Grammar
//
// UXL is line oriented. An optional version line and an optional canvas line
// are followed by tag lines:
//
//	UXL:1.0
//	390x844S
//	P\home\Home
//	  F\100%x\T\P8
//	    C\"Welcome back"\L
//	    B\Continue\GOTO:next\R6
//	P\next\Next
//
// Indentation is a multiple of two spaces and may deepen by at most one level
// per line. Fields are separated by backslashes. A field may be a double-quoted
// string supporting only the escapes \" and \\; quoted fields are always text.
// Blank lines and lines starting with ';' are ignored. Tabs are rejected.
//
// # Field Classification
//
// Fields after the tag are classified by content, not position. Recognizers
// are tried in a fixed order: margin (M4), padding (P4), radius (R4), icon
// (ICON:name[:size]), background (BG:url), source (SRC:url), fit (FIT, CROP),
// columns (COLS:2L,1R), size (100%x50C), alignment (letters from L, R, T, B)
// and action (GOTO:id). Anything else is caption or hint text. Each kind may
// appear once per line, and each tag allows a fixed set of kinds.
//
// # Validation
//
// After parsing every line the tree builder nests nodes by indentation, checks
// that roots are pages and that children are legal for their parent, validates
// and deduplicates page ids, normalizes table columns and checks row widths.
// The navigation graph is then built and every GOTO target must resolve.
//
// # Modes
//
// [Strict] and [Permissive] differ in exactly two rules: permissive mode drops
// unknown actions and actions on tables instead of rejecting them.
//
// # Errors
//
// Every failure is a [*errors.ParseError] carrying the source name, line,
// column and line text. There is no partial document.
//
// [*errors.ParseError]: github.com/matzehuels/uxl/pkg/errors.ParseError
package parser
