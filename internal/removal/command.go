package removal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gwjr/focusctl/internal/execshell"
	"github.com/gwjr/focusctl/internal/omnifocus"
	"github.com/gwjr/focusctl/internal/ui"
	"github.com/gwjr/focusctl/internal/utils/flags"
)

const (
	commandUseConstant                    = "remove"
	commandShortDescriptionConstant       = "Remove a task or project from OmniFocus"
	commandLongDescriptionConstant        = "remove deletes a single OmniFocus task or project identified by id or name and prints the removal outcome as JSON."
	commandExecutionErrorTemplateConstant = "removal failed: %s"
	unexpectedArgumentsMessageConstant    = "remove does not accept positional arguments"
	flagIdentifierNameConstant            = "id"
	flagIdentifierDescriptionConstant     = "Identifier of the item to remove"
	flagItemNameConstant                  = "name"
	flagItemNameDescriptionConstant       = "Name of the item to remove"
	flagItemTypeNameConstant              = "type"
	flagItemTypeDescriptionConstant       = "Kind of item to remove"
	outcomeEncodingErrorTemplateConstant  = "unable to encode removal outcome: %w"
	invalidItemTypeTemplateConstant       = "unsupported item type: %s"
)

var errUnexpectedArguments = errors.New(unexpectedArgumentsMessageConstant)

var itemTypeChoices = []string{
	string(omnifocus.ItemTypeTask),
	string(omnifocus.ItemTypeProject),
}

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ItemRemover removes a single OmniFocus item and reports the outcome.
type ItemRemover interface {
	RemoveItem(executionContext context.Context, request omnifocus.RemovalRequest) omnifocus.RemovalOutcome
}

// CommandBuilder assembles the Cobra command for item removal.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider func() CommandConfiguration
	Remover               ItemRemover
}

// Build constructs the remove command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		RunE:  builder.run,
	}

	command.Flags().String(flagIdentifierNameConstant, "", flagIdentifierDescriptionConstant)
	command.Flags().String(flagItemNameConstant, "", flagItemNameDescriptionConstant)
	command.Flags().String(
		flagItemTypeNameConstant,
		"",
		flags.FormatChoiceUsage(string(omnifocus.ItemTypeTask), itemTypeChoices, flagItemTypeDescriptionConstant),
	)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	if len(arguments) > 0 {
		return errUnexpectedArguments
	}

	request, requestError := builder.parseRequest(command)
	if requestError != nil {
		return requestError
	}

	logger := builder.resolveLogger()
	remover, removerError := builder.resolveRemover(logger)
	if removerError != nil {
		return removerError
	}

	outcome := remover.RemoveItem(command.Context(), request)

	encodedOutcome, encodingError := json.Marshal(outcome)
	if encodingError != nil {
		return fmt.Errorf(outcomeEncodingErrorTemplateConstant, encodingError)
	}

	fmt.Fprintln(command.OutOrStdout(), string(encodedOutcome))

	if !outcome.Success {
		return fmt.Errorf(commandExecutionErrorTemplateConstant, outcome.Error)
	}

	return nil
}

func (builder *CommandBuilder) parseRequest(command *cobra.Command) (omnifocus.RemovalRequest, error) {
	identifierValue, _ := command.Flags().GetString(flagIdentifierNameConstant)
	itemNameValue, _ := command.Flags().GetString(flagItemNameConstant)

	itemTypeValue, _ := command.Flags().GetString(flagItemTypeNameConstant)
	trimmedItemType := strings.ToLower(strings.TrimSpace(itemTypeValue))
	if len(trimmedItemType) == 0 {
		trimmedItemType = builder.resolveConfiguration().ItemType
	}
	if len(trimmedItemType) == 0 {
		trimmedItemType = string(omnifocus.ItemTypeTask)
	}

	itemType := omnifocus.ItemType(trimmedItemType)
	if !itemType.IsValid() {
		return omnifocus.RemovalRequest{}, fmt.Errorf(invalidItemTypeTemplateConstant, trimmedItemType)
	}

	removalRequest := omnifocus.RemovalRequest{
		ID:       strings.TrimSpace(identifierValue),
		Name:     strings.TrimSpace(itemNameValue),
		ItemType: itemType,
	}

	return removalRequest, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}

	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *CommandBuilder) resolveRemover(logger *zap.Logger) (ItemRemover, error) {
	if builder.Remover != nil {
		return builder.Remover, nil
	}

	commandRunner := execshell.NewOSCommandRunner()
	eventLogger := ui.NewScriptEventLogger(logger)
	shellExecutor, executorCreationError := execshell.NewShellExecutor(logger, commandRunner, eventLogger)
	if executorCreationError != nil {
		return nil, executorCreationError
	}

	client, clientCreationError := omnifocus.NewClient(shellExecutor, logger)
	if clientCreationError != nil {
		return nil, clientCreationError
	}

	return client, nil
}
