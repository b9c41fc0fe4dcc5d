package validation

import (
	"context"
	"errors"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/commitmsg/internal/message"
)

const (
	fileSystemMissingMessageConstant      = "file system not configured"
	messageNormalizedLogMessageConstant   = "commit message normalized"
	headerFoundLogMessageConstant         = "commit message header found"
	messageBypassedLogMessageConstant     = "commit message validation bypassed"
	footersCollectedLogMessageConstant    = "commit message footers collected"
	messageValidatedLogMessageConstant    = "commit message validated"
	messageRejectedLogMessageConstant     = "commit message rejected"
	messageFileRejectedLogMessageConstant = "commit message file unavailable"
	logFieldMessagePathConstant           = "message_path"
	logFieldLineCountConstant             = "line_count"
	logFieldHeaderConstant                = "header"
	logFieldHeaderIndexConstant           = "header_index"
	logFieldFooterCountConstant           = "footer_count"
	logFieldFirstFooterIndexConstant      = "first_footer_index"
	logFieldFailureKindConstant           = "failure_kind"
	logFieldReasonsConstant               = "reasons"
)

// BypassPrefixes lists header prefixes of auto-generated messages that skip validation.
var BypassPrefixes = []string{"Merge ", "Revert ", "fixup! ", "squash! "}

// ErrFileSystemNotConfigured indicates the service was constructed without file access.
var ErrFileSystemNotConfigured = errors.New(fileSystemMissingMessageConstant)

// FileSystem exposes the file operations used for a validation run.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	message.FileSystem
}

// Outcome describes how a successful run concluded.
type Outcome string

// Supported outcomes.
const (
	OutcomeBypassed  Outcome = "bypassed"
	OutcomeValidated Outcome = "validated"
)

// ServiceDependencies enumerates collaborators required by the service.
type ServiceDependencies struct {
	FileSystem FileSystem
	Logger     *zap.Logger
}

// Result captures a successful validation run.
type Result struct {
	MessagePath string
	Outcome     Outcome
	Message     message.Parsed
}

// Service validates commit message files.
type Service struct {
	fileSystem FileSystem
	normalizer *message.Normalizer
	logger     *zap.Logger
}

// NewService constructs a Service from the provided dependencies.
func NewService(dependencies ServiceDependencies) (*Service, error) {
	if dependencies.FileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}

	normalizer, normalizerError := message.NewNormalizer(dependencies.FileSystem)
	if normalizerError != nil {
		return nil, normalizerError
	}

	logger := dependencies.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{fileSystem: dependencies.FileSystem, normalizer: normalizer, logger: logger}, nil
}

// IsBypassed reports whether the header belongs to an auto-generated message.
func IsBypassed(header string) bool {
	for _, prefix := range BypassPrefixes {
		if strings.HasPrefix(header, prefix) {
			return true
		}
	}
	return false
}

// Validate normalizes the message file in place and applies the rule pipeline.
// The file is rewritten before any rule runs, so it stays normalized even when
// validation fails.
func (service *Service) Validate(executionContext context.Context, messagePath string) (Result, error) {
	if executionContext != nil {
		if contextError := executionContext.Err(); contextError != nil {
			return Result{}, contextError
		}
	}

	if len(messagePath) == 0 {
		return Result{}, service.rejectFile(messagePath, &FileError{})
	}

	if _, statError := service.fileSystem.Stat(messagePath); statError != nil {
		return Result{}, service.rejectFile(messagePath, &FileError{Path: messagePath})
	}

	lines, normalizeError := service.normalizer.NormalizeFile(messagePath)
	if normalizeError != nil {
		return Result{}, service.rejectFile(messagePath, &FileError{Path: messagePath, Cause: normalizeError})
	}

	service.logger.Debug(
		messageNormalizedLogMessageConstant,
		zap.String(logFieldMessagePathConstant, messagePath),
		zap.Int(logFieldLineCountConstant, len(lines)),
	)

	header, headerIndex, headerError := message.FindHeader(lines)
	if headerError != nil {
		return Result{}, service.reject(messagePath, newError(FailureKindEmptyMessage, headerError.Error()))
	}

	service.logger.Debug(
		headerFoundLogMessageConstant,
		zap.String(logFieldHeaderConstant, header),
		zap.Int(logFieldHeaderIndexConstant, headerIndex),
	)

	if IsBypassed(header) {
		service.logger.Debug(
			messageBypassedLogMessageConstant,
			zap.String(logFieldMessagePathConstant, messagePath),
			zap.String(logFieldHeaderConstant, header),
		)
		bypassedMessage := message.Parsed{Lines: lines, Header: header, HeaderIndex: headerIndex, FirstFooterIndex: len(lines)}
		return Result{MessagePath: messagePath, Outcome: OutcomeBypassed, Message: bypassedMessage}, nil
	}

	footers, firstFooterIndex := message.CollectFooters(lines)
	parsed := message.Parsed{
		Lines:            lines,
		Header:           header,
		HeaderIndex:      headerIndex,
		Footers:          footers,
		FirstFooterIndex: firstFooterIndex,
	}

	service.logger.Debug(
		footersCollectedLogMessageConstant,
		zap.Int(logFieldFooterCountConstant, len(footers)),
		zap.Int(logFieldFirstFooterIndexConstant, firstFooterIndex),
	)

	if validationError := Validate(parsed); validationError != nil {
		return Result{}, service.reject(messagePath, validationError)
	}

	service.logger.Debug(
		messageValidatedLogMessageConstant,
		zap.String(logFieldMessagePathConstant, messagePath),
	)

	return Result{MessagePath: messagePath, Outcome: OutcomeValidated, Message: parsed}, nil
}

func (service *Service) reject(messagePath string, validationError error) error {
	failureKind, _ := KindOf(validationError)
	var reasons []string
	var typedError *Error
	if errors.As(validationError, &typedError) {
		reasons = typedError.Reasons
	}

	service.logger.Info(
		messageRejectedLogMessageConstant,
		zap.String(logFieldMessagePathConstant, messagePath),
		zap.String(logFieldFailureKindConstant, string(failureKind)),
		zap.Strings(logFieldReasonsConstant, reasons),
	)
	return validationError
}

func (service *Service) rejectFile(messagePath string, fileError *FileError) error {
	service.logger.Info(
		messageFileRejectedLogMessageConstant,
		zap.String(logFieldMessagePathConstant, messagePath),
		zap.Error(fileError),
	)
	return fileError
}
