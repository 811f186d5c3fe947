// Package fs abstracts the few filesystem operations needed to publish output
// files atomically, so tests can inject I/O failures.
//
// Production code uses [Default], which is backed by the os package.
// Tests wrap it with [FaultyFS]:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.SetFault(fs.Fault{FailOnSync: true})
//	store := blobstore.NewLocalStore(dir, blobstore.WithFileSystem(ffs))
package fs
