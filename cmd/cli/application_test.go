package cli_test

import (
	"bytes"
	"testing"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/gwjr/focusctl/cmd/cli"
	"github.com/gwjr/focusctl/internal/omnifocus"
)

const (
	embeddedDefaultLogLevelConstant  = "info"
	embeddedDefaultLogFormatConstant = "structured"
	removeCommandNameConstant        = "remove"
)

func decodeEmbeddedConfiguration(testInstance *testing.T) cli.ApplicationConfiguration {
	testInstance.Helper()

	configurationData, configurationType := cli.EmbeddedDefaultConfiguration()
	require.NotEmpty(testInstance, configurationData)

	viperInstance := viper.New()
	viperInstance.SetConfigType(configurationType)
	require.NoError(testInstance, viperInstance.ReadConfig(bytes.NewReader(configurationData)))

	var decodedConfiguration cli.ApplicationConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{Result: &decodedConfiguration})
	require.NoError(testInstance, decoderError)
	require.NoError(testInstance, decoder.Decode(viperInstance.AllSettings()))

	return decodedConfiguration
}

func TestEmbeddedDefaultConfigurationValues(testInstance *testing.T) {
	decodedConfiguration := decodeEmbeddedConfiguration(testInstance)

	require.Equal(testInstance, embeddedDefaultLogLevelConstant, decodedConfiguration.Common.LogLevel)
	require.Equal(testInstance, embeddedDefaultLogFormatConstant, decodedConfiguration.Common.LogFormat)
	require.Equal(testInstance, string(omnifocus.ItemTypeTask), decodedConfiguration.Tools.Remove.ItemType)
}

func TestNewApplicationRegistersRemoveCommand(testInstance *testing.T) {
	applicationInstance := cli.NewApplication()
	require.NotNil(testInstance, applicationInstance)
}

func TestRootCommandListsRemoveSubcommand(testInstance *testing.T) {
	outputBuffer := &bytes.Buffer{}

	applicationInstance := cli.NewApplication()
	rootCommand := applicationInstance.RootCommand()
	require.NotNil(testInstance, rootCommand)

	rootCommand.SetOut(outputBuffer)
	rootCommand.SetErr(outputBuffer)

	commandNames := make([]string, 0, len(rootCommand.Commands()))
	for _, registeredCommand := range rootCommand.Commands() {
		commandNames = append(commandNames, registeredCommand.Name())
	}

	require.Contains(testInstance, commandNames, removeCommandNameConstant)
}
