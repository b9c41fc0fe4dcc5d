package cli

import (
	_ "embed"
	"fmt"

	mapstructure "github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigurationParseErrorTemplateConstant  = "unable to parse default configuration: %w"
	defaultConfigurationDecodeErrorTemplateConstant = "unable to decode default configuration: %w"
	mapstructureTagNameConstant                     = "mapstructure"
)

//go:embed default_config.yaml
var defaultConfigurationDocument []byte

// EmbeddedDefaultConfiguration returns a private copy of the bundled defaults
// together with their format for the configuration loader.
func EmbeddedDefaultConfiguration() ([]byte, string) {
	return append([]byte{}, defaultConfigurationDocument...), configurationTypeConstant
}

// DefaultApplicationConfiguration decodes the bundled defaults alone, ignoring
// configuration files and the environment.
func DefaultApplicationConfiguration() (ApplicationConfiguration, error) {
	var rawConfiguration map[string]any
	if parseError := yaml.Unmarshal(defaultConfigurationDocument, &rawConfiguration); parseError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(defaultConfigurationParseErrorTemplateConstant, parseError)
	}

	var configuration ApplicationConfiguration
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     mapstructureTagNameConstant,
		Result:      &configuration,
		ErrorUnused: true,
	})
	if decoderError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(defaultConfigurationDecodeErrorTemplateConstant, decoderError)
	}
	if decodeError := decoder.Decode(rawConfiguration); decodeError != nil {
		return ApplicationConfiguration{}, fmt.Errorf(defaultConfigurationDecodeErrorTemplateConstant, decodeError)
	}

	return configuration, nil
}
