/*
Package vm describes the stack VM that executes invocation and
verification scripts: its opcodes, the encodings of pushed values, and
the tagged binary form of stack items that contracts return.

Nothing here executes scripts. ParseOp and ParseProgram disassemble;
the Pushdata functions and EncodeInt produce the exact bytes a node
expects; SerializeItem and DeserializeItem convert stack items to and
from their tagged form. Package vmutil builds whole scripts on top of
these.
*/
package vm
