// Package mmap maps local files read-only into memory.
//
// Distance matrix inputs can be large text files that are scanned once from
// front to back. Mapping them avoids an extra copy through kernel buffers and
// lets the loader hint sequential access to the kernel.
//
//	m, err := mmap.Open("dist.csv")
//	if err != nil { ... }
//	defer m.Close()
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix systems use mmap(2)/madvise(2); Windows uses CreateFileMapping and
// ignores access hints.
package mmap
