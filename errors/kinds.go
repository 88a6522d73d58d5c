package errors

// Error kinds shared by the codec, builder and signing packages.
// Package-level sentinels elsewhere are derived from one of these, so
// callers can branch on the kind with Is while Root still yields the
// precise sentinel.
var (
	ErrInvalidParams     = New("invalid params")
	ErrSerialization     = New("serialization error")
	ErrUnsupportedType   = New("unsupported type")
	ErrOverflow          = New("integer overflow")
	ErrSignatureLimit    = New("signature limit exceeded")
	ErrUnsupportedScheme = New("unsupported signature scheme")
	ErrNotTransfer       = New("not a transfer transaction")
)

type kindError struct {
	msg  string
	kind error
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

// Derive returns a new sentinel error with the given text that
// matches kind under Is.
func Derive(kind error, text string) error {
	return &kindError{msg: text, kind: kind}
}

// Codes reported by nodes and by this module. Node codes arrive in the
// Error field of REST and RPC responses.
const (
	CodeSuccess            = 0
	CodeSessionExpired     = 41001
	CodeServiceCeiling     = 41002
	CodeIllegalDataFormat  = 41003
	CodeInvalidVersion     = 41004
	CodeInvalidMethod      = 42001
	CodeInvalidParams      = 42002
	CodeInvalidTransaction = 43001
	CodeInvalidAsset       = 43002
	CodeInvalidBlock       = 43003
	CodeUnknownTransaction = 44001
	CodeUnknownAsset       = 44002
	CodeUnknownBlock       = 44003
	CodeUnknownContract    = 44004
	CodeInternalError      = 45001
	CodeSmartcodeError     = 47001

	CodeUnsupportedType   = 58004
	CodeSerialization     = 58005
	CodeOverflow          = 58006
	CodeSignatureLimit    = 58007
	CodeUnsupportedScheme = 58008
	CodeNotTransfer       = 58009
)

var codeText = map[int]string{
	CodeSuccess:            "success",
	CodeSessionExpired:     "session expired",
	CodeServiceCeiling:     "service ceiling",
	CodeIllegalDataFormat:  "illegal data format",
	CodeInvalidVersion:     "invalid version",
	CodeInvalidMethod:      "invalid method",
	CodeInvalidParams:      "invalid params",
	CodeInvalidTransaction: "invalid transaction",
	CodeInvalidAsset:       "invalid asset",
	CodeInvalidBlock:       "invalid block",
	CodeUnknownTransaction: "unknown transaction",
	CodeUnknownAsset:       "unknown asset",
	CodeUnknownBlock:       "unknown block",
	CodeUnknownContract:    "unknown contract",
	CodeInternalError:      "internal error",
	CodeSmartcodeError:     "smartcode error",
	CodeUnsupportedType:    "unsupported type",
	CodeSerialization:      "serialization error",
	CodeOverflow:           "integer overflow",
	CodeSignatureLimit:     "signature limit exceeded",
	CodeUnsupportedScheme:  "unsupported signature scheme",
	CodeNotTransfer:        "not a transfer transaction",
}

var kindCodes = []struct {
	kind error
	code int
}{
	{ErrInvalidParams, CodeInvalidParams},
	{ErrSerialization, CodeSerialization},
	{ErrUnsupportedType, CodeUnsupportedType},
	{ErrOverflow, CodeOverflow},
	{ErrSignatureLimit, CodeSignatureLimit},
	{ErrUnsupportedScheme, CodeUnsupportedScheme},
	{ErrNotTransfer, CodeNotTransfer},
}

// Code returns the numeric code for err. An int "code" data item
// (attached to node errors) wins over the kind table. Errors of no
// known kind map to CodeInternalError; nil maps to CodeSuccess.
func Code(err error) int {
	if err == nil {
		return CodeSuccess
	}
	if c, ok := Data(err)["code"].(int); ok {
		return c
	}
	for _, kc := range kindCodes {
		if Is(err, kc.kind) {
			return kc.code
		}
	}
	return CodeInternalError
}

// CodeText returns a short description of code, or "" if unknown.
func CodeText(code int) string {
	return codeText[code]
}
