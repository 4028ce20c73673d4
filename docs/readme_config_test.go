package docs_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gwjr/focusctl/internal/omnifocus"
)

const (
	readmeFileNameConstant           = "README.md"
	yamlFenceStartConstant           = "```yaml"
	yamlFenceEndConstant             = "```"
	configHeaderMarkerConstant       = "# config.yaml"
	parentDirectoryReferenceConstant = ".."
	missingHeaderMessageConstant     = "README example missing config header marker"
	missingStartFenceMessageConstant = "README example missing yaml fence start"
	missingEndFenceMessageConstant   = "README example missing yaml fence end"
)

var supportedLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

var supportedLogFormats = map[string]struct{}{
	"structured": {},
	"console":    {},
}

type readmeApplicationConfiguration struct {
	Common readmeCommonConfiguration `yaml:"common"`
	Tools  readmeToolsConfiguration  `yaml:"tools"`
}

type readmeCommonConfiguration struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

type readmeToolsConfiguration struct {
	Remove readmeRemoveConfiguration `yaml:"remove"`
}

type readmeRemoveConfiguration struct {
	ItemType string `yaml:"item_type"`
}

func TestReadmeConfigurationSnippetParses(testInstance *testing.T) {
	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	readmePath := filepath.Join(workingDirectory, parentDirectoryReferenceConstant, readmeFileNameConstant)
	contentBytes, readError := os.ReadFile(readmePath)
	require.NoError(testInstance, readError)

	contentText := string(contentBytes)
	headerIndex := strings.Index(contentText, configHeaderMarkerConstant)
	require.NotEqual(testInstance, -1, headerIndex, missingHeaderMessageConstant)

	fenceStartIndex := strings.LastIndex(contentText[:headerIndex], yamlFenceStartConstant)
	require.NotEqual(testInstance, -1, fenceStartIndex, missingStartFenceMessageConstant)

	remainingText := contentText[headerIndex:]
	fenceEndRelativeIndex := strings.Index(remainingText, yamlFenceEndConstant)
	require.NotEqual(testInstance, -1, fenceEndRelativeIndex, missingEndFenceMessageConstant)
	fenceEndIndex := headerIndex + fenceEndRelativeIndex

	snippetContent := strings.TrimSpace(contentText[fenceStartIndex+len(yamlFenceStartConstant) : fenceEndIndex])

	var applicationConfiguration readmeApplicationConfiguration
	unmarshalError := yaml.Unmarshal([]byte(snippetContent), &applicationConfiguration)
	require.NoError(testInstance, unmarshalError)

	_, logLevelSupported := supportedLogLevels[applicationConfiguration.Common.LogLevel]
	require.True(testInstance, logLevelSupported)

	_, logFormatSupported := supportedLogFormats[applicationConfiguration.Common.LogFormat]
	require.True(testInstance, logFormatSupported)

	configuredItemType := omnifocus.ItemType(applicationConfiguration.Tools.Remove.ItemType)
	require.True(testInstance, configuredItemType.IsValid())
}
