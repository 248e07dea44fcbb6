package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/rtree/pkg/errors"
	pkgio "github.com/matzehuels/rtree/pkg/io"
	"github.com/matzehuels/rtree/pkg/pipeline"
)

// stdinArg names standard input on the command line.
const stdinArg = "-"

// source is a loaded command input. Directories are walked immediately and
// carry a tree; everything else carries raw bytes for the pipeline.
type source struct {
	name string // empty for stdin
	data []byte
	tree *pkgio.Tree
}

func (s *source) String() string {
	if s.name == "" {
		return "stdin"
	}
	return s.name
}

// walkOpts controls directory inputs.
type walkOpts struct {
	maxDepth int
	hidden   bool
}

// loadSource reads the input named by arg: a file, a directory, or "-"
// for stdin.
func loadSource(stdin io.Reader, arg string, walk walkOpts) (*source, error) {
	if arg == "" || arg == stdinArg {
		data, err := readLimited(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return &source{data: data}, nil
	}

	if err := errors.ValidatePath(arg); err != nil {
		return nil, err
	}
	info, err := os.Stat(arg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", arg)
		}
		return nil, err
	}

	if info.IsDir() {
		t, err := pkgio.FromDir(arg, walk.maxDepth, !walk.hidden)
		if err != nil {
			return nil, err
		}
		return &source{name: arg, tree: t}, nil
	}

	f, err := os.Open(arg)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := readLimited(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", arg, err)
	}
	return &source{name: arg, data: data}, nil
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, pipeline.MaxInputSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > pipeline.MaxInputSize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "input exceeds %d bytes", pipeline.MaxInputSize)
	}
	return data, nil
}
