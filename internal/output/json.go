package output

import (
	"encoding/json"
	"io"

	"github.com/modbank-dev/modbank/internal/bank"
)

// JSONFormatter outputs a module listing as pretty-printed JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, modules []*bank.Module) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toModuleViews(modules))
}
