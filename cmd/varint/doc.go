/*
Command varint converts decimal numbers to and from the compact-size
varint encoding used in transactions.

Usage:

	varint [-d] [value ...]

Values come from the arguments, or from stdin (whitespace separated)
when there are none.

Examples:

Encode 1234 as hex:

	varint 1234
	fdd204

Decode a hex string holding one or more varints:

	printf fdd20405 | varint -d
	1234
	5
*/
package main
