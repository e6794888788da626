package file

import "os"

// exists reports whether path is a regular file. Directories and stat
// errors count as missing.
func exists(path string) bool {
	info, err := os.Lstat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
