// Command shellcode encodes pulse sequences into silkshell packets and
// decodes them back.
//
// Encode (default) reads whitespace-separated integers from stdin and prints
// one hex packet. With -d it reads a hex packet and prints the pulses, one
// 16-pulse block per line.
package main

import (
	"bufio"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thesyncim/silkshell"
	"github.com/thesyncim/silkshell/shell"
)

func main() {
	var decode, verbose bool
	flag.BoolVar(&decode, "d", false, "decode a hex packet instead of encoding")
	flag.BoolVar(&verbose, "v", false, "report sizes on stderr")
	flag.Parse()

	var err error
	if decode {
		err = runDecode(os.Stdin, os.Stdout, verbose)
	} else {
		err = runEncode(os.Stdin, os.Stdout, verbose)
	}
	if err != nil {
		fatalf("%v", err)
	}
}

func runEncode(r io.Reader, w io.Writer, verbose bool) error {
	pulses, err := readPulses(r)
	if err != nil {
		return err
	}
	data, err := silkshell.Marshal(pulses)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "shellcode: %d pulses -> %d bytes\n", len(pulses), len(data))
	}
	_, err = fmt.Fprintln(w, hex.EncodeToString(data))
	return err
}

func runDecode(r io.Reader, w io.Writer, verbose bool) error {
	in, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	data, err := hex.DecodeString(strings.TrimSpace(string(in)))
	if err != nil {
		return fmt.Errorf("parse hex: %w", err)
	}
	pulses, err := silkshell.Unmarshal(data)
	if err != nil {
		return err
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "shellcode: %d bytes -> %d pulses\n", len(data), len(pulses))
	}
	return writePulses(w, pulses)
}

func readPulses(r io.Reader) ([]int32, error) {
	var pulses []int32
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		v, err := strconv.ParseInt(sc.Text(), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("pulse %d: %w", len(pulses), err)
		}
		pulses = append(pulses, int32(v))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return pulses, nil
}

func writePulses(w io.Writer, pulses []int32) error {
	bw := bufio.NewWriter(w)
	for i, p := range pulses {
		if i > 0 {
			if i%shell.FrameLength == 0 {
				bw.WriteByte('\n')
			} else {
				bw.WriteByte(' ')
			}
		}
		bw.WriteString(strconv.FormatInt(int64(p), 10))
	}
	bw.WriteByte('\n')
	return bw.Flush()
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "shellcode: "+format+"\n", args...)
	os.Exit(1)
}
