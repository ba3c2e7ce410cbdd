package server

import "fmt"

// ResultCode represents Diameter result codes
type ResultCode uint32

const (
	// Success codes (2xxx)
	ResultCodeSuccess ResultCode = 2001

	// Protocol errors (3xxx)
	ResultCodeCommandUnsupported ResultCode = 3001
	ResultCodeTooBusy            ResultCode = 3004

	// Permanent failures (5xxx)
	ResultCodeMissingAVP         ResultCode = 5005
	ResultCodeUnableToComply     ResultCode = 5012
	ResultCodeUnsupportedVersion ResultCode = 5011
)

// IsSuccess returns true if the result code indicates success
func (r ResultCode) IsSuccess() bool {
	return r >= 2000 && r < 3000
}

// String returns the string representation of the result code
func (r ResultCode) String() string {
	switch r {
	case ResultCodeSuccess:
		return "DIAMETER_SUCCESS"
	case ResultCodeCommandUnsupported:
		return "DIAMETER_COMMAND_UNSUPPORTED"
	case ResultCodeTooBusy:
		return "DIAMETER_TOO_BUSY"
	case ResultCodeMissingAVP:
		return "DIAMETER_MISSING_AVP"
	case ResultCodeUnableToComply:
		return "DIAMETER_UNABLE_TO_COMPLY"
	case ResultCodeUnsupportedVersion:
		return "DIAMETER_UNSUPPORTED_VERSION"
	default:
		return fmt.Sprintf("RESULT_CODE_%d", uint32(r))
	}
}
