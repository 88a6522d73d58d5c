package vm

import "github.com/user00000001/tesrasdk-go/errors"

var (
	ErrShortProgram  = errors.Derive(errors.ErrSerialization, "unexpected end of program")
	ErrLongProgram   = errors.Derive(errors.ErrSerialization, "program too long")
	ErrBadValue      = errors.Derive(errors.ErrInvalidParams, "bad value")
	ErrUnknownTag    = errors.Derive(errors.ErrUnsupportedType, "unknown stack item tag")
	ErrItemDepth     = errors.Derive(errors.ErrSerialization, "stack item nested too deeply")
	ErrItemCount     = errors.Derive(errors.ErrSerialization, "too many stack items")
	ErrMapKey        = errors.Derive(errors.ErrUnsupportedType, "map key is not a primitive")
	ErrTrailingBytes = errors.Derive(errors.ErrSerialization, "trailing bytes")
	ErrDuplicateKey  = errors.Derive(errors.ErrSerialization, "duplicate map key")
	ErrIntTooLarge   = errors.Derive(errors.ErrOverflow, "integer too large for a stack item")
)
