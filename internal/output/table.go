package output

import (
	"fmt"
	"io"

	"github.com/modbank-dev/modbank/internal/bank"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// TableFormatter outputs a module listing as a human-readable table.
type TableFormatter struct{}

// Format renders one row per module: name, capability, score, submodule
// count, and description.
func (f *TableFormatter) Format(w io.Writer, modules []*bank.Module) error {
	if len(modules) == 0 {
		_, _ = fmt.Fprintln(w, "(no modules)")
		return nil
	}

	table := tablewriter.NewTable(w,
		tablewriter.WithHeaderAutoFormat(tw.Off),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.Border{Top: tw.On, Bottom: tw.On, Left: tw.On, Right: tw.On},
		}),
	)

	table.Header("Name", "Capability", "Score", "Submodules", "Description")

	for _, m := range modules {
		table.Append(
			m.Name,
			m.Capability,
			fmt.Sprintf("%d", m.Score),
			submoduleCell(m),
			m.Description,
		)
	}

	return table.Render()
}

func submoduleCell(m *bank.Module) string {
	n := m.SubmoduleCount()
	if n == 0 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}
