package pipeline

import "github.com/jonesrussell/painminer/internal/domain"

// MultiSink fans every record out to all wrapped sinks. The first error
// stops the fan-out.
type MultiSink []Sink

func (m MultiSink) WriteAccepted(rec domain.AcceptedRecord) error {
	for _, s := range m {
		if err := s.WriteAccepted(rec); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiSink) WriteRejected(rec domain.RejectedRecord) error {
	for _, s := range m {
		if err := s.WriteRejected(rec); err != nil {
			return err
		}
	}
	return nil
}
