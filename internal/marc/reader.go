package marc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	bmarc "github.com/boutros/marc"
)

// maxConsecutiveFailures bounds how many undecodable records in a row the
// reader tolerates before it treats the stream itself as broken.
const maxConsecutiveFailures = 100

// ErrUnknownFormat is returned when the dump is neither ISO-2709,
// MARCXML nor line-MARC.
var ErrUnknownFormat = errors.New("unknown MARC format")

// Reader is a lazy, forward-only stream of records. It is not
// restartable: re-reading requires opening the source again.
type Reader struct {
	dec     *bmarc.Decoder
	closer  io.Closer
	logger  *slog.Logger
	read    int
	skipped int
}

// Open opens a dump file and detects its serialization.
func Open(path string, logger *slog.Logger) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dump: %w", err)
	}

	r, err := NewReader(f, logger)
	if err != nil {
		f.Close()
		return nil, err
	}
	r.closer = f
	return r, nil
}

// NewReader wraps an io.Reader, sniffing the first bytes to pick a decoder.
func NewReader(src io.Reader, logger *slog.Logger) (*Reader, error) {
	if logger == nil {
		logger = slog.Default()
	}

	br := bufio.NewReader(src)
	sniff, err := br.Peek(64)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return nil, fmt.Errorf("failed to read dump header: %w", err)
	}
	if len(sniff) == 0 {
		return nil, io.EOF
	}

	format := bmarc.DetectFormat(sniff)
	switch format {
	case bmarc.MARC, bmarc.LineMARC, bmarc.MARCXML:
	default:
		return nil, ErrUnknownFormat
	}

	return &Reader{
		dec:    bmarc.NewDecoder(br, format),
		logger: logger,
	}, nil
}

// Next returns the next decodable record, or io.EOF once the stream is
// exhausted. Records that fail to decode are logged and skipped.
func (r *Reader) Next() (*Record, error) {
	failures := 0
	for {
		raw, err := r.dec.Decode()
		if errors.Is(err, io.EOF) {
			return nil, io.EOF
		}
		if err != nil {
			r.skipped++
			failures++
			r.logger.Warn("Skipping undecodable record", "position", r.read+r.skipped, "err", err)
			if failures >= maxConsecutiveFailures {
				return nil, fmt.Errorf("failed to decode %d consecutive records: %w", failures, err)
			}
			continue
		}

		r.read++
		return fromDecoded(raw), nil
	}
}

// Read is the number of records returned so far.
func (r *Reader) Read() int {
	return r.read
}

// Skipped is the number of records that could not be decoded.
func (r *Reader) Skipped() int {
	return r.skipped
}

// Close releases the underlying file, if Open created one.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func fromDecoded(raw bmarc.Record) *Record {
	rec := &Record{
		Fields: make([]Field, 0, len(raw.CtrlFields)+len(raw.DataFields)),
	}
	for _, cf := range raw.CtrlFields {
		rec.Fields = append(rec.Fields, Field{Tag: cf.Tag, Value: cf.Value})
	}
	for _, df := range raw.DataFields {
		f := Field{
			Tag:        df.Tag,
			Indicator1: df.Ind1,
			Indicator2: df.Ind2,
			Subfields:  make([]Subfield, 0, len(df.SubFields)),
		}
		for _, sf := range df.SubFields {
			f.Subfields = append(f.Subfields, Subfield{Code: sf.Code, Value: sf.Value})
		}
		rec.Fields = append(rec.Fields, f)
	}
	return rec
}
