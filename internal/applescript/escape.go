package applescript

import "strings"

const (
	backslashLiteralConstant        = `\`
	escapedBackslashLiteralConstant = `\\`
	doubleQuoteLiteralConstant      = `"`
	escapedDoubleQuoteConstant      = `\"`
	newlineLiteralConstant          = "\n"
	escapedNewlineConstant          = `\n`
	carriageReturnLiteralConstant   = "\r"
	escapedCarriageReturnConstant   = `\r`
	tabLiteralConstant              = "\t"
	escapedTabConstant              = `\t`
)

// Escape transforms arbitrary text so it can be embedded verbatim inside a
// double-quoted AppleScript string literal. Backslashes are escaped before any
// other substitution so later replacements never re-expand earlier ones.
// Empty input yields the empty string.
func Escape(value string) string {
	if len(value) == 0 {
		return value
	}

	escapedValue := strings.ReplaceAll(value, backslashLiteralConstant, escapedBackslashLiteralConstant)
	escapedValue = strings.ReplaceAll(escapedValue, doubleQuoteLiteralConstant, escapedDoubleQuoteConstant)
	escapedValue = strings.ReplaceAll(escapedValue, newlineLiteralConstant, escapedNewlineConstant)
	escapedValue = strings.ReplaceAll(escapedValue, carriageReturnLiteralConstant, escapedCarriageReturnConstant)
	escapedValue = strings.ReplaceAll(escapedValue, tabLiteralConstant, escapedTabConstant)
	return escapedValue
}

// EscapeQuoted escapes only backslashes and double quotes. It predates Escape
// and survives for single-line contexts such as log labels; it does not
// normalize control characters and must not be used when generating script
// bodies.
func EscapeQuoted(value string) string {
	if len(value) == 0 {
		return value
	}

	escapedValue := strings.ReplaceAll(value, backslashLiteralConstant, escapedBackslashLiteralConstant)
	escapedValue = strings.ReplaceAll(escapedValue, doubleQuoteLiteralConstant, escapedDoubleQuoteConstant)
	return escapedValue
}
