// Package applescript builds the automation scripts focusctl feeds to
// osascript.
//
// It exposes Escape for embedding arbitrary text inside double-quoted
// AppleScript literals and BuildRemovalScript for generating the item-removal
// script executed against OmniFocus.
package applescript
