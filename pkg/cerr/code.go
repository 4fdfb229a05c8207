package cerr

type Code int

const (
	OK                 = Code(0)
	Canceled           = Code(1)
	Unknown            = Code(2)
	InvalidArgument    = Code(3)
	NotFound           = Code(5)
	FailedPrecondition = Code(9)
	Internal           = Code(13)
)

var codeNames = map[Code]string{
	OK:                 "ok",
	Canceled:           "canceled",
	Unknown:            "unknown",
	InvalidArgument:    "invalid_argument",
	NotFound:           "not_found",
	FailedPrecondition: "failed_precondition",
	Internal:           "internal",
}

func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "unknown"
}

// ExitCode maps a code to the process exit status of the CLI.
// Usage errors exit with 2, every other failure with 1.
func (c Code) ExitCode() int {
	switch c {
	case OK:
		return 0
	case InvalidArgument:
		return 2
	default:
		return 1
	}
}

// captureStack reports whether errors of this code are unexpected enough
// to carry a stack trace into the logs.
func (c Code) captureStack() bool {
	switch c {
	case Unknown, Internal:
		return true
	default:
		return false
	}
}
