package orgdir

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PathResolver turns user-supplied paths into absolute ones relative to the
// working directory the tool was started in.
type PathResolver struct {
	wd string
}

func NewPathResolver() (*PathResolver, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("could not get current working directory: %w", err)
	}
	return &PathResolver{wd: wd}, nil
}

func (r *PathResolver) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(r.wd, path)
}

// ensureDir fails with ErrNotFound when path is missing and ErrNotDirectory
// when it exists but is not a directory.
func ensureDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &DirError{Op: "open", Path: path, Err: ErrNotFound}
		}
		return &DirError{Op: "stat", Path: path, Err: err}
	}
	if !info.IsDir() {
		return &DirError{Op: "open", Path: path, Err: ErrNotDirectory}
	}
	return nil
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func IsEmptyDir(name string) (bool, error) {
	f, err := os.Open(name)
	if err != nil {
		return false, err
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	if err == io.EOF {
		return true, nil
	}
	return false, err
}

// listFiles returns the names of the direct-child regular files of dir, in
// directory-listing order. Subdirectories are ignored.
func listFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// listDirs returns the names of the direct-child subdirectories of dir.
func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}
