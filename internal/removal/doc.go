// Package removal exposes the Cobra command that deletes OmniFocus items
// and prints the structured removal outcome.
package removal
