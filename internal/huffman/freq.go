// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import "io"

// Frequencies counts every byte value seen in an input.
type Frequencies struct {
	Count [Alphabet]int64
	Total int64
}

// CountFrequencies reads r to the end.
func CountFrequencies(r io.Reader) (*Frequencies, error) {
	f := new(Frequencies)
	buf := make([]byte, 64*1024)
	for {
		n, err := r.Read(buf)
		f.Add(buf[:n])
		switch err {
		case nil:
		case io.EOF:
			return f, nil
		default:
			return f, err
		}
	}
}

// Add counts the bytes of p.
func (f *Frequencies) Add(p []byte) {
	for _, b := range p {
		f.Count[b]++
	}
	f.Total += int64(len(p))
}

// Distinct returns how many byte values occur at least once.
func (f *Frequencies) Distinct() int {
	n := 0
	for _, c := range f.Count {
		if c > 0 {
			n++
		}
	}
	return n
}
