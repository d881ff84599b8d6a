//go:build !windows

package files

// Reparse points are an NTFS concept; symlinks are caught by Lstat.
func isReparsePoint(string) (bool, error) {
	return false, nil
}
