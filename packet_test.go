package silkshell

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/thesyncim/silkshell/shell"
)

func TestMarshalRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		pulses []int32
	}{
		{"one block", []int32{1, 0, 2, 0, 0, 1, 0, 0, 3, 0, 0, 0, 0, 0, 0, 1}},
		{"signed", []int32{-1, 0, 2, 0, 0, -1, 0, 0, 3, 0, 0, 0, 0, 0, 0, -1}},
		{"silence", make([]int32, 5*shell.FrameLength)},
		{"loud", []int32{1000, -1000, 500, 0, 0, 0, 0, 7, 0, 0, 0, 0, 0, 0, 0, -3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(tt.pulses)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			t.Logf("%d pulses -> %d bytes", len(tt.pulses), len(data))

			got, err := Unmarshal(data)
			if err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if len(got) != len(tt.pulses) {
				t.Fatalf("decoded %d pulses, want %d", len(got), len(tt.pulses))
			}
			for i := range got {
				if got[i] != tt.pulses[i] {
					t.Fatalf("pulse %d = %d, want %d", i, got[i], tt.pulses[i])
				}
			}
		})
	}
}

func TestMarshalPadsPartialBlock(t *testing.T) {
	pulses := []int32{4, -2, 0, 1, 1}
	data, err := Marshal(pulses)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got) != shell.FrameLength {
		t.Fatalf("decoded %d pulses, want %d", len(got), shell.FrameLength)
	}
	for i, want := range pulses {
		if got[i] != want {
			t.Errorf("pulse %d = %d, want %d", i, got[i], want)
		}
	}
	for i := len(pulses); i < len(got); i++ {
		if got[i] != 0 {
			t.Errorf("padding pulse %d = %d, want 0", i, got[i])
		}
	}
}

func TestMarshalRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	for iter := 0; iter < 100; iter++ {
		pulses := make([]int32, shell.FrameLength*(1+rng.Intn(50)))
		for i := range pulses {
			if rng.Intn(2) == 0 {
				pulses[i] = int32(rng.Intn(41) - 20)
			}
		}
		data, err := Marshal(pulses)
		if err != nil {
			t.Fatalf("iteration %d: Marshal: %v", iter, err)
		}
		got, err := Unmarshal(data)
		if err != nil {
			t.Fatalf("iteration %d: Unmarshal: %v", iter, err)
		}
		for i := range pulses {
			if got[i] != pulses[i] {
				t.Fatalf("iteration %d: pulse %d = %d, want %d", iter, i, got[i], pulses[i])
			}
		}
	}
}

func TestMarshalMaxBlocks(t *testing.T) {
	pulses := make([]int32, MaxBlocks*shell.FrameLength)
	pulses[len(pulses)-1] = -5
	data, err := Marshal(pulses)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got) != len(pulses) || got[len(got)-1] != -5 {
		t.Errorf("decoded %d pulses ending in %d", len(got), got[len(got)-1])
	}
}

func TestMarshalErrors(t *testing.T) {
	tests := []struct {
		name   string
		pulses []int32
		want   error
	}{
		{"empty", nil, ErrEmptyInput},
		{"too long", make([]int32, MaxBlocks*shell.FrameLength+1), ErrTooManyBlocks},
		{"overflow", []int32{17 << shell.MaxShifts}, shell.ErrPulseOverflow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Marshal(tt.pulses); !errors.Is(err, tt.want) {
				t.Errorf("Marshal() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestUnmarshalEmpty(t *testing.T) {
	if _, err := Unmarshal(nil); !errors.Is(err, ErrInvalidPacket) {
		t.Errorf("Unmarshal(nil) error = %v, want ErrInvalidPacket", err)
	}
}

// TestUnmarshalGarbage feeds arbitrary bytes through the decoder; it must
// either fail cleanly or return whole blocks.
func TestUnmarshalGarbage(t *testing.T) {
	rng := rand.New(rand.NewSource(17))
	for iter := 0; iter < 200; iter++ {
		data := make([]byte, 1+rng.Intn(64))
		rng.Read(data)
		got, err := Unmarshal(data)
		if err != nil {
			if !errors.Is(err, ErrInvalidPacket) {
				t.Fatalf("iteration %d: unexpected error %v", iter, err)
			}
			continue
		}
		if len(got)%shell.FrameLength != 0 {
			t.Fatalf("iteration %d: %d pulses is not whole blocks", iter, len(got))
		}
	}
}

func TestEncodedBits(t *testing.T) {
	silent, err := EncodedBits(make([]int, shell.FrameLength))
	if err != nil {
		t.Fatal(err)
	}
	if silent != 0 {
		t.Errorf("silent block costs %d eighth-bits, want 0", silent)
	}

	spread := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	spike := []int{16, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0}
	a, err := EncodedBits(spread)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodedBits(spike)
	if err != nil {
		t.Fatal(err)
	}
	t.Logf("spread=%d spike=%d eighth-bits", a, b)
	if a <= 0 || b <= 0 {
		t.Errorf("non-silent blocks must cost bits: spread=%d spike=%d", a, b)
	}

	if _, err := EncodedBits([]int{1, 2}); !errors.Is(err, shell.ErrBlockLength) {
		t.Errorf("EncodedBits(short) error = %v, want ErrBlockLength", err)
	}
}
