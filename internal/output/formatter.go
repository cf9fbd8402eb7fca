// Package output handles formatting and rendering of plugin module
// listings produced by internal/bank's enumeration API.
package output

import (
	"fmt"
	"io"

	"github.com/modbank-dev/modbank/internal/bank"
)

// Formatter renders a slice of modules to the given writer.
type Formatter interface {
	Format(w io.Writer, modules []*bank.Module) error
}

// NewFormatter returns a Formatter for the given format name.
// Supported formats: "json", "table", "yaml", "quiet".
func NewFormatter(format string) (Formatter, error) {
	switch format {
	case "json":
		return &JSONFormatter{}, nil
	case "table":
		return &TableFormatter{}, nil
	case "yaml":
		return &YAMLFormatter{}, nil
	case "quiet":
		return &QuietFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %q (supported: json, table, yaml, quiet)", format)
	}
}

// QuietFormatter produces no output. The exit code conveys the result.
type QuietFormatter struct{}

func (f *QuietFormatter) Format(w io.Writer, _ []*bank.Module) error {
	return nil
}

// moduleView is the serializable projection of a bank.Module used by
// every non-table formatter. It drops the EnumCallback func pointers
// (never marshalable) down to a plain HasCallback bool per option.
type moduleView struct {
	Name           string             `json:"name" yaml:"name"`
	Capability     string             `json:"capability" yaml:"capability"`
	Score          int                `json:"score" yaml:"score"`
	Description    string             `json:"description,omitempty" yaml:"description,omitempty"`
	SubmoduleCount int                `json:"submodule_count,omitempty" yaml:"submodule_count,omitempty"`
	Config         []configOptionView `json:"config,omitempty" yaml:"config,omitempty"`
}

type configOptionView struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	Default     string `json:"default,omitempty" yaml:"default,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	HasCallback bool   `json:"has_callback,omitempty" yaml:"has_callback,omitempty"`
}

func toModuleViews(modules []*bank.Module) []moduleView {
	views := make([]moduleView, len(modules))
	for i, m := range modules {
		v := moduleView{
			Name:           m.Name,
			Capability:     m.Capability,
			Score:          m.Score,
			Description:    m.Description,
			SubmoduleCount: m.SubmoduleCount(),
		}
		for _, c := range m.Config {
			v.Config = append(v.Config, configOptionView{
				Name:        c.Name,
				Type:        c.Type,
				Default:     c.Default,
				Description: c.Description,
				HasCallback: c.HasCallback(),
			})
		}
		views[i] = v
	}
	return views
}
