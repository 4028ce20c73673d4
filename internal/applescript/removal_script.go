package applescript

import (
	"fmt"
	"strings"
)

// TargetKind identifies which OmniFocus collection a removal targets.
type TargetKind string

// Supported removal targets.
const (
	TargetKindTask    TargetKind = "task"
	TargetKindProject TargetKind = "project"
)

// RemovalSelection carries the escaped-before-use selectors for a removal script.
type RemovalSelection struct {
	ItemIdentifier string
	ItemName       string
	Kind           TargetKind
}

const (
	scriptIndentUnitConstant        = "\t"
	scriptLineSeparatorConstant     = "\n"
	flattenedTaskElementConstant    = "flattened task"
	flattenedProjectElementConstant = "flattened project"
	inboxTaskElementConstant        = "inbox task"
	identifierPropertyNameConstant  = "id"
	namePropertyNameConstant        = "name"
	taskScriptClassNameConstant     = "Task"
	projectScriptClassNameConstant  = "Project"
)

const (
	missingSelectorsScriptConstant = `return "{\"success\":false,\"error\":\"Either id or name must be provided\"}"`
	notFoundReturnLineConstant     = `return "{\"success\":false,\"error\":\"Item not found\"}"`
	successReturnLineConstant      = `return "{\"success\":true,\"id\":\"" & itemIdentifier & "\",\"name\":" & encodedItemName & "}"`
	errorReturnLineConstant        = `return "{\"success\":false,\"error\":\"" & my encodeJsonText(automationErrorMessage) & "\"}"`
	outerTryLineConstant           = "try"
	outerOnErrorLineConstant       = "on error automationErrorMessage"
	outerEndTryLineConstant        = "end try"
	tellApplicationLineConstant    = `tell application "OmniFocus"`
	tellDocumentLineConstant       = "tell front document"
	endTellLineConstant            = "end tell"
	resetCandidateLineConstant     = "set foundItem to missing value"
	stageGuardLineConstant         = "if foundItem is missing value then"
	stageGuardEndLineConstant      = "end if"
	stageTryLineConstant           = "try"
	stageEndTryLineConstant        = "end try"
	notFoundGuardLineConstant      = "if foundItem is missing value then"
	readIdentifierLineConstant     = "set itemIdentifier to id of foundItem"
	deleteItemLineConstant         = "delete foundItem"
	lookupLineTemplateConstant     = `set foundItem to first %s whose %s is "%s"`
	encodeNameLineTemplateConstant = `set encodedItemName to evaluate javascript "JSON.stringify(%s.byIdentifier('" & itemIdentifier & "').name)"`
)

// encodeJsonTextHandlerConstant escapes backslashes before quotes so the second
// pass never re-expands the first, then folds raw line breaks into JSON escape
// sequences.
const encodeJsonTextHandlerConstant = `on encodeJsonText(sourceText)
	set AppleScript's text item delimiters to "\\"
	set textParts to every text item of sourceText
	set AppleScript's text item delimiters to "\\\\"
	set sourceText to textParts as text
	set AppleScript's text item delimiters to "\""
	set textParts to every text item of sourceText
	set AppleScript's text item delimiters to "\\\""
	set sourceText to textParts as text
	set AppleScript's text item delimiters to linefeed
	set textParts to every text item of sourceText
	set AppleScript's text item delimiters to "\\n"
	set sourceText to textParts as text
	set AppleScript's text item delimiters to return
	set textParts to every text item of sourceText
	set AppleScript's text item delimiters to "\\r"
	set sourceText to textParts as text
	set AppleScript's text item delimiters to ""
	return sourceText
end encodeJsonText`

type lookupStage struct {
	elementName   string
	propertyName  string
	selectorValue string
}

// BuildRemovalScript produces the AppleScript body that locates and deletes a
// single task or project. Selectors are escaped via Escape before
// interpolation; that escaping is the only injection defense the script
// carries. When both selectors are empty the returned script only emits the
// canonical invalid-request payload so no lookup ever reaches OmniFocus.
func BuildRemovalScript(selection RemovalSelection) string {
	escapedIdentifier := Escape(strings.TrimSpace(selection.ItemIdentifier))
	escapedName := Escape(strings.TrimSpace(selection.ItemName))

	if len(escapedIdentifier) == 0 && len(escapedName) == 0 {
		return missingSelectorsScriptConstant + scriptLineSeparatorConstant
	}

	lookupStages := buildLookupStages(selection.Kind, escapedIdentifier, escapedName)

	var scriptBuilder strings.Builder
	scriptBuilder.WriteString(encodeJsonTextHandlerConstant)
	scriptBuilder.WriteString(scriptLineSeparatorConstant)
	scriptBuilder.WriteString(scriptLineSeparatorConstant)

	writeScriptLine(&scriptBuilder, 0, outerTryLineConstant)
	writeScriptLine(&scriptBuilder, 1, tellApplicationLineConstant)
	writeScriptLine(&scriptBuilder, 2, tellDocumentLineConstant)
	writeScriptLine(&scriptBuilder, 3, resetCandidateLineConstant)

	for stageIndex, stage := range lookupStages {
		lookupLine := fmt.Sprintf(lookupLineTemplateConstant, stage.elementName, stage.propertyName, stage.selectorValue)
		if stageIndex == 0 {
			writeScriptLine(&scriptBuilder, 3, stageTryLineConstant)
			writeScriptLine(&scriptBuilder, 4, lookupLine)
			writeScriptLine(&scriptBuilder, 3, stageEndTryLineConstant)
			continue
		}
		writeScriptLine(&scriptBuilder, 3, stageGuardLineConstant)
		writeScriptLine(&scriptBuilder, 4, stageTryLineConstant)
		writeScriptLine(&scriptBuilder, 5, lookupLine)
		writeScriptLine(&scriptBuilder, 4, stageEndTryLineConstant)
		writeScriptLine(&scriptBuilder, 3, stageGuardEndLineConstant)
	}

	writeScriptLine(&scriptBuilder, 3, notFoundGuardLineConstant)
	writeScriptLine(&scriptBuilder, 4, notFoundReturnLineConstant)
	writeScriptLine(&scriptBuilder, 3, stageGuardEndLineConstant)
	writeScriptLine(&scriptBuilder, 3, readIdentifierLineConstant)
	writeScriptLine(&scriptBuilder, 3, fmt.Sprintf(encodeNameLineTemplateConstant, scriptClassName(selection.Kind)))
	writeScriptLine(&scriptBuilder, 3, deleteItemLineConstant)
	writeScriptLine(&scriptBuilder, 3, successReturnLineConstant)
	writeScriptLine(&scriptBuilder, 2, endTellLineConstant)
	writeScriptLine(&scriptBuilder, 1, endTellLineConstant)
	writeScriptLine(&scriptBuilder, 0, outerOnErrorLineConstant)
	writeScriptLine(&scriptBuilder, 1, errorReturnLineConstant)
	writeScriptLine(&scriptBuilder, 0, outerEndTryLineConstant)

	return scriptBuilder.String()
}

// buildLookupStages orders the fallback policy: identifier lookups always
// precede name lookups, and inbox stages apply only to tasks.
func buildLookupStages(kind TargetKind, escapedIdentifier string, escapedName string) []lookupStage {
	flattenedElement := flattenedTaskElementConstant
	if kind == TargetKindProject {
		flattenedElement = flattenedProjectElementConstant
	}

	var stages []lookupStage
	if len(escapedIdentifier) > 0 {
		stages = append(stages, lookupStage{elementName: flattenedElement, propertyName: identifierPropertyNameConstant, selectorValue: escapedIdentifier})
		if kind == TargetKindTask {
			stages = append(stages, lookupStage{elementName: inboxTaskElementConstant, propertyName: identifierPropertyNameConstant, selectorValue: escapedIdentifier})
		}
	}
	if len(escapedName) > 0 {
		stages = append(stages, lookupStage{elementName: flattenedElement, propertyName: namePropertyNameConstant, selectorValue: escapedName})
		if kind == TargetKindTask {
			stages = append(stages, lookupStage{elementName: inboxTaskElementConstant, propertyName: namePropertyNameConstant, selectorValue: escapedName})
		}
	}
	return stages
}

func scriptClassName(kind TargetKind) string {
	if kind == TargetKindProject {
		return projectScriptClassNameConstant
	}
	return taskScriptClassNameConstant
}

func writeScriptLine(scriptBuilder *strings.Builder, indentDepth int, lineText string) {
	scriptBuilder.WriteString(strings.Repeat(scriptIndentUnitConstant, indentDepth))
	scriptBuilder.WriteString(lineText)
	scriptBuilder.WriteString(scriptLineSeparatorConstant)
}
