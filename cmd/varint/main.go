package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/user00000001/tesrasdk-go/encoding/blockchain"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("varint: ")

	decode := flag.Bool("d", false, "decode hex input to decimal")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		b, err := io.ReadAll(os.Stdin)
		if err != nil {
			log.Fatalf("could not read from stdin: %s", err)
		}
		args = strings.Fields(string(b))
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()
	for _, arg := range args {
		var err error
		if *decode {
			err = decodeHex(w, arg)
		} else {
			err = encodeDecimal(w, arg)
		}
		if err != nil {
			w.Flush()
			log.Fatal(err)
		}
	}
}

func encodeDecimal(w io.Writer, s string) error {
	val, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("could not parse base 10 uint %q", s)
	}
	var buf bytes.Buffer
	blockchain.WriteVarUint(&buf, val)
	_, err = fmt.Fprintf(w, "%x\n", buf.Bytes())
	return err
}

// decodeHex prints every varint in the hex string s.
func decodeHex(w io.Writer, s string) error {
	b, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("could not decode hex %q: %s", s, err)
	}
	r := bytes.NewReader(b)
	for r.Len() > 0 {
		n, err := blockchain.ReadVarUint(r)
		if err != nil {
			return fmt.Errorf("could not parse varint at byte %d: %s", len(b)-r.Len(), err)
		}
		if _, err := fmt.Fprintln(w, n); err != nil {
			return err
		}
	}
	return nil
}
