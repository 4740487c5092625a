package inventory

import (
	"fmt"
	"io"
	"os"
)

// ReportHeader is the first line of a report.
const ReportHeader = "Items Report"

// Report writes a header line then one "<item> -> <quantity>" line per item to w.
func (s *Store) Report(w io.Writer) error {
	if _, err := fmt.Fprintln(w, ReportHeader); err != nil {
		return err
	}
	for _, item := range s.stock.Items() {
		if _, err := fmt.Fprintf(w, "%s -> %d\n", item.Name, item.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// PrintReport writes the report to standard output.
func (s *Store) PrintReport() error {
	return s.Report(os.Stdout)
}
