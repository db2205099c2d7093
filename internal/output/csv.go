// Package output writes accepted and rejected records to CSV files. Rows
// are flushed after every write so a crashed run keeps everything collected
// up to that point.
package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/jonesrussell/painminer/internal/domain"
)

var acceptedHeader = []string{
	"ID", "Post Title", "Full Text", "URL", "Type",
	"Pain_Category", "Pain_Score", "Classifier_Reason",
	"PreRank_Score", "PreRank_Signals",
}

var rejectedHeader = []string{"comment_id", "thread", "reason", "score", "preview"}

// CSVSink appends accepted and rejected records to two CSV files.
type CSVSink struct {
	acceptedFile *os.File
	rejectedFile *os.File
	accepted     *csv.Writer
	rejected     *csv.Writer
}

// NewCSVSink creates (truncating) both CSV files and writes headers.
func NewCSVSink(acceptedPath, rejectedPath string) (*CSVSink, error) {
	af, aw, err := createWithHeader(acceptedPath, acceptedHeader)
	if err != nil {
		return nil, err
	}
	rf, rw, err := createWithHeader(rejectedPath, rejectedHeader)
	if err != nil {
		af.Close()
		return nil, err
	}
	return &CSVSink{acceptedFile: af, rejectedFile: rf, accepted: aw, rejected: rw}, nil
}

func createWithHeader(path string, header []string) (*os.File, *csv.Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create output file %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("write header to %s: %w", path, err)
	}
	w.Flush()
	return f, w, w.Error()
}

// WriteAccepted appends one accepted row and flushes it.
func (s *CSVSink) WriteAccepted(rec domain.AcceptedRecord) error {
	row := []string{
		rec.ID,
		rec.ThreadTitle,
		rec.Body,
		rec.URL,
		rec.Type,
		string(rec.Category),
		formatScore(rec.PainScore),
		rec.Reason,
		formatScore(rec.PreRankScore),
		rec.PreRankSignals,
	}
	if err := s.accepted.Write(row); err != nil {
		return fmt.Errorf("write accepted row %s: %w", rec.ID, err)
	}
	s.accepted.Flush()
	return s.accepted.Error()
}

// WriteRejected appends one rejection audit row and flushes it.
func (s *CSVSink) WriteRejected(rec domain.RejectedRecord) error {
	row := []string{
		rec.ID,
		rec.ThreadTitle,
		rec.Reason,
		formatScore(rec.Score),
		rec.BodyPreview,
	}
	if err := s.rejected.Write(row); err != nil {
		return fmt.Errorf("write rejected row %s: %w", rec.ID, err)
	}
	s.rejected.Flush()
	return s.rejected.Error()
}

// Close flushes and closes both files.
func (s *CSVSink) Close() error {
	s.accepted.Flush()
	s.rejected.Flush()
	aErr := s.acceptedFile.Close()
	rErr := s.rejectedFile.Close()
	if aErr != nil {
		return aErr
	}
	return rErr
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
