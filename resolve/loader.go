package resolve

import (
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/pipe"
)

// SpecLoader loads pipeline declarations by name.
type SpecLoader interface {
	Load(name string) (*Spec, error)
}

// FileSpecLoader loads declarations from YAML files on disk.
type FileSpecLoader struct {
	dirs []string
}

// NewFileSpecLoader creates a loader that searches the given directories
// for declaration YAML files.
func NewFileSpecLoader(dirs ...string) SpecLoader {
	return &FileSpecLoader{dirs: dirs}
}

// Load searches for a declaration file by name across configured
// directories, trying {name}.yaml and {name}.yml in each directory and its
// immediate subdirectories. A file that exists but fails to parse or
// validate surfaces its error directly rather than being treated as a miss.
func (l *FileSpecLoader) Load(name string) (*Spec, error) {
	for _, dir := range l.dirs {
		for _, ext := range []string{".yaml", ".yml"} {
			candidates := []string{filepath.Join(dir, name+ext)}
			matches, _ := filepath.Glob(filepath.Join(dir, "*", name+ext))
			candidates = append(candidates, matches...)

			for _, path := range candidates {
				s, err := loadSpecFile(path)
				if err == nil {
					return s, nil
				}
				if !stderrors.Is(err, fs.ErrNotExist) {
					return nil, err
				}
			}
		}
	}
	return nil, errors.NotFound("pipeline declaration", name)
}

// LoadSpec loads a declaration from explicit file paths, trying each until
// one exists. Parse and validation failures on an existing file surface
// directly rather than being treated as a miss.
func LoadSpec(name string, paths ...string) (*Spec, error) {
	for _, path := range paths {
		s, err := loadSpecFile(path)
		if err == nil {
			return s, nil
		}
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return nil, errors.NotFound("pipeline declaration", name)
}

func loadSpecFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, errors.InvalidDeclaration(filepath.Base(path), err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ResolveSpec turns a validated declaration into an executable pipeline
// using the given resolver and composer. A nil composer means a default
// one.
func ResolveSpec(s *Spec, r *Resolver, c *pipe.Composer) (*pipe.Pipeline, error) {
	return r.BuildPipeline(c, s.Config, s.Lines()...)
}
