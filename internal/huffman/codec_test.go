// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"bytes"
	"fmt"
	"io"
	"testing"
	"testing/iotest"

	"github.com/elliotnunn/huffpack/internal/bitstream"
	"github.com/stretchr/testify/require"
)

func TestEncodeExample(t *testing.T) {
	var buf bytes.Buffer
	st, err := Encode(&buf, bytes.NewReader([]byte("AAABBC")))
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x50, 0x54, 0x3a, 0x10, // tree
		0x40, 0x23, 0x24, // marker
		0x06,       // count
		0x1f, 0x00, // 000 11 11 10, padded
	}, buf.Bytes())
	require.Equal(t, Stats{
		InputBytes:  6,
		OutputBytes: 10,
		Symbols:     3,
		TreeBits:    29,
		PayloadBits: 9,
	}, st)

	got, err := DecodeBytes(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, []byte("AAABBC"), got)
}

func TestRoundTrip(t *testing.T) {
	inputs := randomInputs()
	inputs = append(inputs,
		[]byte("AAABBC"),
		[]byte("@#$"),
		bytes.Repeat([]byte("@#$"), 1000),
		[]byte{0},
		[]byte{0xff, 0x00},
	)
	all := make([]byte, 256)
	for i := range all {
		all[i] = byte(i)
	}
	inputs = append(inputs, all, bytes.Repeat(all, 3))

	for i, p := range inputs {
		t.Run(fmt.Sprint(i), func(t *testing.T) {
			enc, err := EncodeBytes(p)
			require.NoError(t, err)
			dec, err := DecodeBytes(enc)
			require.NoError(t, err)
			require.Equal(t, p, dec)
		})
	}
}

func TestRoundTripSingleSymbol(t *testing.T) {
	for n := 1; n <= 20; n++ {
		p := bytes.Repeat([]byte{'q'}, n)
		enc, err := EncodeBytes(p)
		require.NoError(t, err)

		hdr, err := Inspect(bytes.NewReader(enc))
		require.NoError(t, err)
		require.Equal(t, 1, hdr.Tree.Len())
		require.True(t, hdr.Tree.IsLeaf(hdr.Tree.Root()))
		require.EqualValues(t, n, hdr.Count)

		dec, err := DecodeBytes(enc)
		require.NoError(t, err)
		require.Equal(t, p, dec, "length %d", n)
	}
}

func TestEmptyInput(t *testing.T) {
	var buf bytes.Buffer
	_, err := Encode(&buf, bytes.NewReader(nil))
	require.ErrorIs(t, err, ErrEmptyInput)
	require.Zero(t, buf.Len())

	_, err = EncodeBytes([]byte{})
	require.ErrorIs(t, err, ErrEmptyInput)
}

// With every byte equally frequent each code is the byte itself,
// so the payload reproduces the input including the marker bytes.
func TestMarkerInPayload(t *testing.T) {
	p := []byte("@#$")
	for b := range 256 {
		if !bytes.ContainsRune([]byte("@#$"), rune(b)) {
			p = append(p, byte(b))
		}
	}
	enc, err := EncodeBytes(p)
	require.NoError(t, err)

	hdr, err := Inspect(bytes.NewReader(enc))
	require.NoError(t, err)
	require.Equal(t, Marker[:], enc[hdr.Size-5:hdr.Size-2], "marker right after the tree")
	require.Equal(t, p, enc[hdr.Size:], "payload starts with the marker bytes")

	dec, err := DecodeBytes(enc)
	require.NoError(t, err)
	require.Equal(t, p, dec)
}

func TestTruncated(t *testing.T) {
	enc, err := EncodeBytes([]byte("It was the best of times, it was the worst of times"))
	require.NoError(t, err)
	for n := range len(enc) {
		_, err := DecodeBytes(enc[:n])
		require.ErrorIs(t, err, ErrCorrupt, "cut at %d of %d", n, len(enc))
	}
}

func TestTruncatedTree(t *testing.T) {
	enc, err := EncodeBytes([]byte("AAABBC"))
	require.NoError(t, err)
	var out bytes.Buffer
	_, err = Decode(&out, bytes.NewReader(enc[:2]))
	require.ErrorIs(t, err, ErrCorrupt)
	require.ErrorIs(t, err, bitstream.ErrEndOfStream)
	require.Zero(t, out.Len())
}

func TestCorruptHeaders(t *testing.T) {
	good, err := EncodeBytes([]byte("AAABBC"))
	require.NoError(t, err)

	badMarker := bytes.Clone(good)
	badMarker[5] = '!'
	zeroCount := bytes.Clone(good)
	zeroCount[7] = 0
	trailing := append(bytes.Clone(good), 0)
	hugeCount := append(bytes.Clone(good[:7]), bytes.Repeat([]byte{0xff}, 11)...)

	for name, p := range map[string][]byte{
		"badMarker": badMarker,
		"zeroCount": zeroCount,
		"trailing":  trailing,
		"hugeCount": hugeCount,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeBytes(p)
			require.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestInvalidSingleSymbolCode(t *testing.T) {
	enc, err := EncodeBytes([]byte("qqq"))
	require.NoError(t, err)
	enc[len(enc)-1] = 0x20 // third symbol coded 1
	_, err = DecodeBytes(enc)
	require.ErrorIs(t, err, ErrCorrupt)
}

type mutating struct {
	first, second []byte
	starts        int
}

func (m *mutating) ReadAt(p []byte, off int64) (int, error) {
	if off == 0 {
		m.starts++
	}
	src := m.first
	if m.starts > 1 {
		src = m.second
	}
	return bytes.NewReader(src).ReadAt(p, off)
}

func TestChangedInput(t *testing.T) {
	for name, second := range map[string]string{
		"shorter": "AAAB",
		"longer":  "AAABBCC",
		"newByte": "AAABBD",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Encode(io.Discard, &mutating{first: []byte("AAABBC"), second: []byte(second)})
			require.ErrorIs(t, err, ErrChanged)
		})
	}
}

func TestReaderContract(t *testing.T) {
	p := bytes.Repeat([]byte("abracadabra "), 500)
	enc, err := EncodeBytes(p)
	require.NoError(t, err)
	require.NoError(t, iotest.TestReader(NewReader(bytes.NewReader(enc)), p))
	require.NoError(t, iotest.TestReader(NewReader(iotest.HalfReader(bytes.NewReader(enc))), p))
}

func TestReaderHeader(t *testing.T) {
	enc, err := EncodeBytes([]byte("AAABBC"))
	require.NoError(t, err)
	r := NewReader(bytes.NewReader(enc))
	hdr, err := r.Header()
	require.NoError(t, err)
	require.EqualValues(t, 6, hdr.Count)
	require.EqualValues(t, 8, hdr.Size)
	require.Equal(t, "('A' 0) ('B' 11) ('C' 10)", hdr.Codes().String())

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	require.Equal(t, []byte("AAABBC"), got)

	hdr2, err := r.Header()
	require.NoError(t, err)
	require.Same(t, hdr, hdr2)
}

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte("AAABBC"))
	f.Add([]byte("@#$@#$"))
	f.Add([]byte{0})
	f.Fuzz(func(t *testing.T, p []byte) {
		enc, err := EncodeBytes(p)
		if len(p) == 0 {
			require.ErrorIs(t, err, ErrEmptyInput)
			return
		}
		require.NoError(t, err)
		dec, err := DecodeBytes(enc)
		require.NoError(t, err)
		require.Equal(t, p, dec)
	})
}

func FuzzDecode(f *testing.F) {
	good, _ := EncodeBytes([]byte("AAABBC"))
	f.Add(good)
	f.Add([]byte{})
	f.Add([]byte{0xbd, 0x00, 0x40, 0x23, 0x24, 0x05, 0x00})
	f.Fuzz(func(t *testing.T, p []byte) {
		DecodeBytes(p) // must not panic
	})
}
