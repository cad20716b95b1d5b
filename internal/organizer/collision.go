package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileExists checks if anything, including a dangling symlink, occupies path.
// Errors other than "not exist" count as occupied so a rename never lands on
// an entry we could not inspect.
func FileExists(fsys afero.Fs, path string) bool {
	var err error
	if lstater, ok := fsys.(afero.Lstater); ok {
		_, _, err = lstater.LstatIfPossible(path)
	} else {
		_, err = fsys.Stat(path)
	}
	return err == nil || !os.IsNotExist(err)
}

// ResolveCollision returns a filename in dir that is not currently taken.
// If dir/name is free, name is returned unchanged. Otherwise a two-digit
// counter is inserted before the extension, counting up from 1 until a free
// name is found.
//
// Examples (when the earlier names exist):
//   - "s1-2.png" -> "s1-2_01.png"
//   - "s1-2.png" -> "s1-2_02.png" (if s1-2_01.png also exists)
//   - "s1-2.png" -> "s1-2_100.png" (after _01 through _99)
//
// The search probes the filesystem on every call; nothing is reserved between calls.
func ResolveCollision(fsys afero.Fs, dir, name string) string {
	if !FileExists(fsys, filepath.Join(dir, name)) {
		return name
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	for n := 1; ; n++ {
		candidate := fmt.Sprintf("%s_%02d%s", stem, n, ext)
		if !FileExists(fsys, filepath.Join(dir, candidate)) {
			return candidate
		}
	}
}
