// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package reader2readerat

// Opens counts how many times the stream has been opened.
func (r *ReaderAt) Opens() int {
	r.l.Lock()
	defer r.l.Unlock()
	return r.opens
}
