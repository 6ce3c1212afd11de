package pipeline

import (
	"errors"
	"os"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/backmassage/wsi2fiona/internal/naming"
)

// SkipFunc is told about an entry below the target that could not be read.
// Discovery continues past it.
type SkipFunc func(path string, err error)

// Discover returns the whole-slide-image files under target. A regular file
// target is returned alone when its extension is recognized; a directory is
// walked recursively. Paths are sorted lexicographically for deterministic
// processing order.
//
// A target that does not exist yields no files and no error. Unreadable
// entries below the target are reported to onSkip (which may be nil) and
// left out; only an unreadable target itself is an error.
func Discover(fsys billy.Filesystem, target string, onSkip SkipFunc) ([]string, error) {
	info, err := fsys.Stat(target)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	if !info.IsDir() {
		if naming.IsSlideFile(target) {
			return []string{target}, nil
		}
		return nil, nil
	}

	var files []string
	err = util.Walk(fsys, target, func(path string, fi os.FileInfo, err error) error {
		if err != nil {
			if path == target {
				return err
			}
			if onSkip != nil {
				onSkip(path, err)
			}
			return nil
		}
		if fi.IsDir() {
			return nil
		}
		if naming.IsSlideFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
