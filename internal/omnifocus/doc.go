// Package omnifocus models removal requests against the OmniFocus application
// and drives them through generated AppleScript executed by osascript.
//
// Client.RemoveItem composes script generation, execution, and result mapping;
// all failure categories are folded into the returned RemovalOutcome so the
// public contract never raises.
package omnifocus
