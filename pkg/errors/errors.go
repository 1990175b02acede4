// Package errors provides the error taxonomy shared by the protosync packages.
// Every failure the orchestrator surfaces to an operator is one of the typed
// errors below, so the CLI can pick an exit status and a message without
// string matching.
package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for structural violations of the repository layout
var (
	// ErrPathOutsideRoot is returned when a protocol file is not located
	// under the protos directory of the service that claims it.
	ErrPathOutsideRoot = errors.New("path is not under its declared root")

	// ErrManifestField is returned when a manifest lacks a required field.
	ErrManifestField = errors.New("manifest field not found")

	// ErrManifestRewrite is returned when a manifest field was decoded but
	// its literal could not be located for an in-place rewrite.
	ErrManifestRewrite = errors.New("manifest field could not be rewritten")

	// ErrDestinationConflict is returned when two services would write
	// different bytes to the same central path.
	ErrDestinationConflict = errors.New("destination claimed by more than one service")

	ErrInvalidVersion = errors.New("invalid version")
	ErrInvalidConfig  = errors.New("invalid configuration")
)

// StructuralError reports a precondition violation in the repository layout.
// It is always fatal and never retried.
type StructuralError struct {
	Path string
	Op   string
	Err  error
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StructuralError) Unwrap() error {
	return e.Err
}

// ExternalToolError reports a failing validation, codegen, installer or
// version-control subprocess. Output holds the tool diagnostics verbatim.
type ExternalToolError struct {
	Tool     string
	Args     []string
	Dir      string
	ExitCode int
	Output   string
	Err      error
}

func (e *ExternalToolError) Error() string {
	cmd := strings.TrimSpace(e.Tool + " " + strings.Join(e.Args, " "))
	msg := fmt.Sprintf("command %q failed", cmd)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if e.Dir != "" {
		msg += fmt.Sprintf(" (dir %s)", e.Dir)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

// ConsistencyError lists every service whose pinned version disagrees with
// the repository version.
type ConsistencyError struct {
	RepositoryVersion string
	Mismatches        []string
}

func (e *ConsistencyError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d service(s) pin a version other than v%s", len(e.Mismatches), e.RepositoryVersion)
	for _, m := range e.Mismatches {
		b.WriteString("\n  - ")
		b.WriteString(m)
	}
	return b.String()
}

// UserInputError reports a missing or invalid argument. Alternatives, when
// present, lists valid choices the operator can pick from.
type UserInputError struct {
	Message      string
	Alternatives []string
}

func (e *UserInputError) Error() string {
	if len(e.Alternatives) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (available: %s)", e.Message, strings.Join(e.Alternatives, ", "))
}

// NotFoundError reports a required directory or file that does not exist.
type NotFoundError struct {
	What string
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.What, e.Path)
}

// PreconditionError reports a publish precondition that does not hold.
type PreconditionError struct {
	Check  string
	Detail string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("precondition %s failed: %s", e.Check, e.Detail)
}

// PartialPublishError is returned when a publish step fails after local
// version-control state was already created. Nothing is undone.
type PartialPublishError struct {
	Completed []string
	Pending   []string
	Err       error
}

func (e *PartialPublishError) Error() string {
	return fmt.Sprintf("publish stopped after [%s], not run [%s]: %v",
		strings.Join(e.Completed, ", "), strings.Join(e.Pending, ", "), e.Err)
}

func (e *PartialPublishError) Unwrap() error {
	return e.Err
}

// Error wrapping constructors
func WrapStructural(path, op string, err error) error {
	if err == nil {
		return nil
	}
	return &StructuralError{Path: path, Op: op, Err: err}
}

func NewUserInputError(msg string, alternatives ...string) error {
	return &UserInputError{Message: msg, Alternatives: alternatives}
}

func NewNotFoundError(what, path string) error {
	return &NotFoundError{What: what, Path: path}
}

func NewPreconditionError(check, detail string) error {
	return &PreconditionError{Check: check, Detail: detail}
}

// Error classification functions
func IsStructuralError(err error) bool {
	var se *StructuralError
	return errors.As(err, &se)
}

func IsExternalToolError(err error) bool {
	var te *ExternalToolError
	return errors.As(err, &te)
}

func IsConsistencyError(err error) bool {
	var ce *ConsistencyError
	return errors.As(err, &ce)
}

func IsUserInputError(err error) bool {
	var ue *UserInputError
	return errors.As(err, &ue)
}

func IsNotFoundError(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

func IsPreconditionError(err error) bool {
	var pe *PreconditionError
	return errors.As(err, &pe)
}

func IsPartialPublishError(err error) bool {
	var pe *PartialPublishError
	return errors.As(err, &pe)
}

// IsContextError reports whether err comes from a canceled or expired context.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
