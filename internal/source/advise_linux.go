// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package source

import (
	"os"

	"golang.org/x/sys/unix"
)

// adviseSequential tells the kernel the file will be read front to back.
func adviseSequential(f *os.File) {
	conn, err := f.SyscallConn()
	if err != nil {
		return
	}
	conn.Control(func(fd uintptr) {
		unix.Fadvise(int(fd), 0, 0, unix.FADV_SEQUENTIAL)
	})
}
