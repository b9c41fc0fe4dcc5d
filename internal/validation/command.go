package validation

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/commitmsg/internal/filesystem"
)

const (
	commandUseNameConstant          = "commit-msg"
	commandUsageTemplateConstant    = commandUseNameConstant + " <message-file>"
	commandExampleTemplateConstant  = "commit-msg .git/COMMIT_EDITMSG"
	commandShortDescriptionConstant = "Validate a commit message against the Conventional Commits policy"
	commandLongDescriptionConstant  = "commit-msg strips comment and template lines from the commit message file, rewrites it in place, and rejects messages whose header, subject, body, or footers violate the Conventional Commits policy. Merge, revert, fixup, and squash messages are accepted unchanged. Install it as the repository commit-msg hook."
	commandResultLogMessageConstant = "commit message accepted"
	logFieldOutcomeConstant         = "outcome"
)

// LoggerProvider yields a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the commit-msg command.
type CommandBuilder struct {
	LoggerProvider LoggerProvider
	FileSystem     FileSystem
}

// Build constructs the commit-msg command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUsageTemplateConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		RunE:          builder.run,
		Args:          cobra.ArbitraryArgs,
		Example:       commandExampleTemplateConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	logger := builder.resolveLogger()

	service, serviceError := NewService(ServiceDependencies{
		FileSystem: builder.resolveFileSystem(),
		Logger:     logger,
	})
	if serviceError != nil {
		return serviceError
	}

	messagePath := ""
	if len(arguments) > 0 {
		messagePath = arguments[0]
	}

	result, validationError := service.Validate(command.Context(), messagePath)
	if validationError != nil {
		var ruleViolation *Error
		if errors.As(validationError, &ruleViolation) {
			return NewReport(ruleViolation)
		}
		return validationError
	}

	logger.Debug(
		commandResultLogMessageConstant,
		zap.String(logFieldMessagePathConstant, result.MessagePath),
		zap.String(logFieldOutcomeConstant, string(result.Outcome)),
	)

	return nil
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

func (builder *CommandBuilder) resolveFileSystem() FileSystem {
	if builder.FileSystem == nil {
		return filesystem.OSFileSystem{}
	}
	return builder.FileSystem
}
