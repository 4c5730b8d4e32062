package silkshell_test

import (
	"fmt"
	"log"

	"github.com/thesyncim/silkshell"
	"github.com/thesyncim/silkshell/rangecoding"
	"github.com/thesyncim/silkshell/shell"
)

func ExampleMarshal() {
	pulses := []int32{1, 0, -2, 0, 0, 1, 0, 0, 3, 0, 0, 0, 0, 0, 0, -1}

	data, err := silkshell.Marshal(pulses)
	if err != nil {
		log.Fatal(err)
	}
	decoded, err := silkshell.Unmarshal(data)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(decoded)
	// Output: [1 0 -2 0 0 1 0 0 3 0 0 0 0 0 0 -1]
}

func Example_shellBlock() {
	block := []int{1, 0, 2, 0, 0, 1, 0, 0, 3, 0, 0, 0, 0, 0, 0, 1}

	var enc rangecoding.Encoder
	enc.Init(make([]byte, 64))
	shell.Encode(&enc, block)
	data := enc.Done()

	// The block total travels out of band.
	var dec rangecoding.Decoder
	dec.Init(data)
	out := make([]int, shell.FrameLength)
	shell.Decode(out, &dec, 8)
	fmt.Println(out)
	// Output: [1 0 2 0 0 1 0 0 3 0 0 0 0 0 0 1]
}
