package faults

import "fmt"

// ToolNotFoundError reports that the configured gpt path is not a working gpt.
type ToolNotFoundError struct {
	Path string
	Err  error
}

func (e *ToolNotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s is not gpt: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("%s is not gpt", e.Path)
}

func (e *ToolNotFoundError) Unwrap() error { return e.Err }

// ConfigurationError is raised synchronously by the call that received the bad
// configuration: adding a step, validating run options or loading a pipeline.
type ConfigurationError struct {
	// Subject names what was misconfigured, e.g. a step, binding or option.
	Subject string
	Reason  string
	Err     error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("invalid configuration of %s", e.Subject)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// NamingError reports that a date based naming policy found no date token in
// the input path. It is fatal for that input only.
type NamingError struct {
	Input  string
	Policy string
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("no YYYYMMDDThhmmss token in %q required by %s naming", e.Input, e.Policy)
}

// ToolExecutionError reports a nonzero gpt exit status. Message holds the
// wrapped text of the first "Error: " line on captured stderr, if any.
type ToolExecutionError struct {
	Input    string
	ExitCode int
	Message  string
	Stderr   []byte
}

func (e *ToolExecutionError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("gpt exited with status %d", e.ExitCode)
}

// IOError wraps a failure to create, write or remove local storage.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
