package ui

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gwjr/focusctl/internal/applescript"
	"github.com/gwjr/focusctl/internal/execshell"
)

const (
	scriptStartedMessageTemplateConstant   = "Running %s script %s"
	scriptCompletedMessageTemplateConstant = "Completed %s script %s"
	scriptFailedMessageTemplateConstant    = "%s script %s failed with exit code %d%s"
	scriptExecutionFailureTemplateConstant = "%s script %s could not be executed: %s"
	standardErrorSuffixTemplateConstant    = ": %s"
	unknownFailureMessageConstant          = "unknown error"
	emptyScriptLabelConstant               = `""`
	quotedPreviewTemplateConstant          = `"%s"`
	truncationMarkerConstant               = "..."
	previewRuneLimitConstant               = 72
	emptyStringConstant                    = ""
)

// ScriptEventFormatter builds human-readable messages for script execution lifecycle events.
type ScriptEventFormatter struct{}

// BuildStartedMessage formats the message describing a script about to run.
func (formatter ScriptEventFormatter) BuildStartedMessage(command execshell.ShellCommand) string {
	return fmt.Sprintf(scriptStartedMessageTemplateConstant, command.Name, formatter.formatScriptPreview(command))
}

// BuildSuccessMessage formats the message describing a script that completed with a zero exit code.
func (formatter ScriptEventFormatter) BuildSuccessMessage(command execshell.ShellCommand) string {
	return fmt.Sprintf(scriptCompletedMessageTemplateConstant, command.Name, formatter.formatScriptPreview(command))
}

// BuildFailureMessage formats the message describing a script that returned a non-zero exit code.
func (formatter ScriptEventFormatter) BuildFailureMessage(command execshell.ShellCommand, result execshell.ExecutionResult) string {
	return fmt.Sprintf(
		scriptFailedMessageTemplateConstant,
		command.Name,
		formatter.formatScriptPreview(command),
		result.ExitCode,
		formatter.formatStandardErrorSuffix(result.StandardError),
	)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter ScriptEventFormatter) BuildExecutionFailureMessage(command execshell.ShellCommand, failure error) string {
	failureMessage := unknownFailureMessageConstant
	if failure != nil {
		failureMessage = failure.Error()
	}
	return fmt.Sprintf(scriptExecutionFailureTemplateConstant, command.Name, formatter.formatScriptPreview(command), failureMessage)
}

// formatScriptPreview reduces the script body to a quoted single-line label.
// The flattening makes EscapeQuoted sufficient here; control characters never
// survive into the label.
func (formatter ScriptEventFormatter) formatScriptPreview(command execshell.ShellCommand) string {
	scriptText := strings.TrimSpace(string(command.Details.StandardInput))
	if len(scriptText) == 0 {
		return emptyScriptLabelConstant
	}

	firstLine := scriptText
	if newlineIndex := strings.IndexByte(scriptText, '\n'); newlineIndex >= 0 {
		firstLine = strings.TrimSpace(scriptText[:newlineIndex])
	}

	previewRunes := []rune(firstLine)
	if len(previewRunes) > previewRuneLimitConstant {
		firstLine = string(previewRunes[:previewRuneLimitConstant]) + truncationMarkerConstant
	}

	return fmt.Sprintf(quotedPreviewTemplateConstant, applescript.EscapeQuoted(firstLine))
}

func (formatter ScriptEventFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

// ScriptEventLogger renders script lifecycle events using a zap logger configured for human-readable output.
type ScriptEventLogger struct {
	logger    *zap.Logger
	formatter ScriptEventFormatter
}

// NewScriptEventLogger constructs a script event logger backed by the provided zap logger.
func NewScriptEventLogger(logger *zap.Logger) *ScriptEventLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScriptEventLogger{logger: logger, formatter: ScriptEventFormatter{}}
}

// CommandStarted implements execshell.CommandEventObserver by logging script start notifications.
func (eventLogger *ScriptEventLogger) CommandStarted(command execshell.ShellCommand) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Info(eventLogger.formatter.BuildStartedMessage(command))
}

// CommandCompleted implements execshell.CommandEventObserver by logging script completion notifications.
func (eventLogger *ScriptEventLogger) CommandCompleted(command execshell.ShellCommand, result execshell.ExecutionResult) {
	if eventLogger == nil {
		return
	}
	if result.ExitCode == 0 {
		eventLogger.logger.Info(eventLogger.formatter.BuildSuccessMessage(command))
		return
	}
	eventLogger.logger.Warn(eventLogger.formatter.BuildFailureMessage(command, result))
}

// CommandExecutionFailed implements execshell.CommandEventObserver by logging unexpected execution failures.
func (eventLogger *ScriptEventLogger) CommandExecutionFailed(command execshell.ShellCommand, failure error) {
	if eventLogger == nil {
		return
	}
	eventLogger.logger.Error(eventLogger.formatter.BuildExecutionFailureMessage(command, failure))
}
