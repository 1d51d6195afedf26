package shader

import (
	"io/fs"
	"os"
)

// OSFiles reads shader sources from the operating system. Unlike os.DirFS
// it accepts absolute and relative paths as given in config files.
var OSFiles fs.FS = osFiles{}

type osFiles struct{}

func (osFiles) Open(name string) (fs.File, error) {
	return os.Open(name)
}

func (osFiles) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}
