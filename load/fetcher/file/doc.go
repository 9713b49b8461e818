// Package file provides a file-based Fetcher implementation for the load package.
//
// The package reads the raw bytes of a document from the filesystem and
// implements the load.Fetcher interface. The file is read at construction
// time and cached, so subsequent Fetch calls return the same data without
// touching the filesystem again; a container seeded from the fetcher sees
// one consistent snapshot of the document.
//
// Usage:
//
//	fetcher, err := file.NewFetcher("/path/to/document.yaml")()
//	if err != nil {
//	    // File not found, permission denied, path is a directory, etc.
//	}
//	data, err := fetcher.Fetch()
//
// Error handling:
//   - Construction returns an error if the file cannot be read or the path is a directory
//   - Errors include the filepath for easier debugging
//   - Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors
package file
