// Package ui renders command lifecycle events for interactive console output.
//
// ScriptEventLogger adapts execshell command notifications into human-readable
// zap log entries, including a flattened preview of the executed script body.
package ui
