// Package report persists one record per snapshot to a CSV time series.
package report

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/archdrift/archdrift/internal/snapshot"
)

// Header is the column layout of the snapshot time series.
var Header = []string{
	"Service",
	"Date",
	"Endpoints",
	"Dependencies",
	"InterServiceCommunications",
	"DependencyList",
	"EndpointList",
	"InterServiceCommunicationsList",
}

// ListSeparator joins the sorted list fields. The CSV writer quotes fields
// containing commas or quotes, so embedded separators are safe.
const ListSeparator = ";"

// CSVSink writes snapshot summaries as CSV rows. Creation failure is fatal
// for callers and must happen before any working-tree mutation.
type CSVSink struct {
	file *os.File
	w    *csv.Writer
}

// NewCSVSink creates the output file and writes the header row.
func NewCSVSink(path string) (*CSVSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return nil, err
	}

	return &CSVSink{file: f, w: w}, nil
}

// Write appends one snapshot record. Counts are derived from the summary's
// sets; the date is the snapshot's logical sampling date.
func (s *CSVSink) Write(service string, date time.Time, sum *snapshot.Summary) error {
	row := []string{
		service,
		date.Format("2006-01-02"),
		strconv.Itoa(sum.EndpointCount()),
		strconv.Itoa(sum.DependencyCount()),
		strconv.Itoa(sum.CallCount()),
		strings.Join(sum.Dependencies, ListSeparator),
		strings.Join(sum.Endpoints, ListSeparator),
		strings.Join(sum.Calls, ListSeparator),
	}
	if err := s.w.Write(row); err != nil {
		return err
	}
	s.w.Flush()
	return s.w.Error()
}

// Close flushes buffered rows and closes the file.
func (s *CSVSink) Close() error {
	s.w.Flush()
	if err := s.w.Error(); err != nil {
		s.file.Close()
		return err
	}
	return s.file.Close()
}
