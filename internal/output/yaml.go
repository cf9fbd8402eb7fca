package output

import (
	"io"

	"github.com/modbank-dev/modbank/internal/bank"
	"gopkg.in/yaml.v3"
)

// YAMLFormatter outputs a module listing as YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(w io.Writer, modules []*bank.Module) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer func() { _ = enc.Close() }()
	return enc.Encode(toModuleViews(modules))
}
