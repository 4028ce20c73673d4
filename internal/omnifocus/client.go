package omnifocus

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/gwjr/focusctl/internal/applescript"
	"github.com/gwjr/focusctl/internal/execshell"
)

const (
	executorNotConfiguredMessageConstant = "osascript executor not configured"
	missingSelectorsErrorMessageConstant = "Either id or name must be provided"
	parseFailurePrefixConstant           = "Failed to parse result: "
	executionFallbackErrorConstant       = "osascript execution failed"
	successJSONKeyConstant               = "success"
	identifierJSONKeyConstant            = "id"
	nameJSONKeyConstant                  = "name"
	errorJSONKeyConstant                 = "error"
	removalRequestedLogMessageConstant   = "item removal requested"
	removalShortCircuitLogMessageConst   = "item removal rejected before execution"
	scriptGeneratedLogMessageConstant    = "removal script generated"
	scriptOutputLogMessageConstant       = "osascript output captured"
	scriptStandardErrorLogMessageConst   = "osascript reported standard error output"
	removalFinishedLogMessageConstant    = "item removal finished"
	logFieldOperationIdentifierConstant  = "operation_id"
	logFieldItemIdentifierConstant       = "item_id"
	logFieldItemNameConstant             = "item_name"
	logFieldItemTypeConstant             = "item_type"
	logFieldScriptPreviewConstant        = "script_preview"
	logFieldStandardOutputConstant       = "stdout"
	logFieldStandardErrorConstant        = "stderr"
	logFieldSuccessConstant              = "success"
	logFieldOutcomeErrorConstant         = "outcome_error"
	scriptPreviewRuneLimitConstant       = 200
	previewTruncationMarkerConstant      = "..."
)

// ScriptExecutor is the minimal interface required from execshell.ShellExecutor.
type ScriptExecutor interface {
	ExecuteOsascript(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// ErrExecutorNotConfigured indicates the client was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// Client drives OmniFocus through generated automation scripts executed by osascript.
type Client struct {
	executor ScriptExecutor
	logger   *zap.Logger
}

// NewClient constructs an OmniFocus automation client.
func NewClient(executor ScriptExecutor, logger *zap.Logger) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{executor: executor, logger: logger}, nil
}

// RemoveItem locates and deletes a single task or project. Every failure
// category folds into the returned outcome; the method never reports errors
// through a second channel, so callers check Success. Diagnostics flow through
// the configured logger only.
func (client *Client) RemoveItem(executionContext context.Context, request RemovalRequest) RemovalOutcome {
	operationIdentifier := uuid.NewString()

	trimmedIdentifier := strings.TrimSpace(request.ID)
	trimmedName := strings.TrimSpace(request.Name)

	client.logger.Debug(
		removalRequestedLogMessageConstant,
		zap.String(logFieldOperationIdentifierConstant, operationIdentifier),
		zap.String(logFieldItemIdentifierConstant, trimmedIdentifier),
		zap.String(logFieldItemNameConstant, trimmedName),
		zap.String(logFieldItemTypeConstant, string(request.ItemType)),
	)

	if len(trimmedIdentifier) == 0 && len(trimmedName) == 0 {
		client.logger.Debug(
			removalShortCircuitLogMessageConst,
			zap.String(logFieldOperationIdentifierConstant, operationIdentifier),
		)
		return RemovalOutcome{Success: false, Error: missingSelectorsErrorMessageConstant}
	}

	scriptBody := applescript.BuildRemovalScript(applescript.RemovalSelection{
		ItemIdentifier: trimmedIdentifier,
		ItemName:       trimmedName,
		Kind:           removalTargetKind(request.ItemType),
	})

	client.logger.Debug(
		scriptGeneratedLogMessageConstant,
		zap.String(logFieldOperationIdentifierConstant, operationIdentifier),
		zap.String(logFieldScriptPreviewConstant, truncateScriptPreview(scriptBody)),
	)

	executionResult, executionError := client.executor.ExecuteOsascript(executionContext, execshell.CommandDetails{
		StandardInput: []byte(scriptBody),
	})
	if executionError != nil {
		failedCommandError := execshell.CommandFailedError{}
		if !errors.As(executionError, &failedCommandError) {
			return client.finishRemoval(operationIdentifier, RemovalOutcome{
				Success: false,
				Error:   describeExecutionFailure(executionError),
			})
		}
		executionResult = failedCommandError.Result
	}

	if len(strings.TrimSpace(executionResult.StandardError)) > 0 {
		client.logger.Warn(
			scriptStandardErrorLogMessageConst,
			zap.String(logFieldOperationIdentifierConstant, operationIdentifier),
			zap.String(logFieldStandardErrorConstant, executionResult.StandardError),
		)
	}

	client.logger.Debug(
		scriptOutputLogMessageConstant,
		zap.String(logFieldOperationIdentifierConstant, operationIdentifier),
		zap.String(logFieldStandardOutputConstant, executionResult.StandardOutput),
		zap.String(logFieldStandardErrorConstant, executionResult.StandardError),
	)

	parsedOutcome, parseSucceeded := parseRemovalOutcome(executionResult.StandardOutput)
	if !parseSucceeded {
		if executionError != nil {
			return client.finishRemoval(operationIdentifier, RemovalOutcome{
				Success: false,
				Error:   describeExecutionFailure(executionError),
			})
		}
		return client.finishRemoval(operationIdentifier, RemovalOutcome{
			Success: false,
			Error:   parseFailurePrefixConstant + executionResult.StandardOutput,
		})
	}

	return client.finishRemoval(operationIdentifier, parsedOutcome)
}

func (client *Client) finishRemoval(operationIdentifier string, outcome RemovalOutcome) RemovalOutcome {
	client.logger.Debug(
		removalFinishedLogMessageConstant,
		zap.String(logFieldOperationIdentifierConstant, operationIdentifier),
		zap.Bool(logFieldSuccessConstant, outcome.Success),
		zap.String(logFieldOutcomeErrorConstant, outcome.Error),
	)
	return outcome
}

// parseRemovalOutcome maps the script's single-line JSON payload onto a
// RemovalOutcome. Output that is not a JSON object carrying a boolean success
// key is rejected so malformed osascript chatter never masquerades as a result.
func parseRemovalOutcome(standardOutput string) (RemovalOutcome, bool) {
	trimmedOutput := strings.TrimSpace(standardOutput)
	if len(trimmedOutput) == 0 || !gjson.Valid(trimmedOutput) {
		return RemovalOutcome{}, false
	}

	parsedPayload := gjson.Parse(trimmedOutput)
	if !parsedPayload.IsObject() {
		return RemovalOutcome{}, false
	}

	successValue := parsedPayload.Get(successJSONKeyConstant)
	if successValue.Type != gjson.True && successValue.Type != gjson.False {
		return RemovalOutcome{}, false
	}

	return RemovalOutcome{
		Success: successValue.Bool(),
		ID:      parsedPayload.Get(identifierJSONKeyConstant).String(),
		Name:    parsedPayload.Get(nameJSONKeyConstant).String(),
		Error:   parsedPayload.Get(errorJSONKeyConstant).String(),
	}, true
}

func removalTargetKind(itemType ItemType) applescript.TargetKind {
	if itemType == ItemTypeProject {
		return applescript.TargetKindProject
	}
	return applescript.TargetKindTask
}

func describeExecutionFailure(executionError error) string {
	if executionError == nil {
		return executionFallbackErrorConstant
	}
	failureMessage := strings.TrimSpace(executionError.Error())
	if len(failureMessage) == 0 {
		return executionFallbackErrorConstant
	}
	return failureMessage
}

func truncateScriptPreview(scriptBody string) string {
	previewRunes := []rune(scriptBody)
	if len(previewRunes) <= scriptPreviewRuneLimitConstant {
		return scriptBody
	}
	return string(previewRunes[:scriptPreviewRuneLimitConstant]) + previewTruncationMarkerConstant
}
