package fasta

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode"

	"github.com/TuftsBCB/seq"
)

// A Reader reads sequences from FASTA encoded input.
//
// If TrustSequences is true, then sequence data will not be checked against
// the allowed alphabet. By default, TrustSequences is false.
type Reader struct {
	// When set to true, the sequences will not be checked for errors.
	// If you trust the data, this may improve performance.
	// This may be set at any time.
	TrustSequences bool
	buf            *bufio.Reader
	line           int
	nextHeader     []byte
}

// NewReader creates a new FASTA reader from any io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		TrustSequences: false,
		buf:            bufio.NewReader(r),
		line:           1,
		nextHeader:     nil,
	}
}

// ReadAll reads all sequences in the FASTA input and returns them as a
// slice. If an error is encountered, processing is stopped, and the error is
// returned.
func (r *Reader) ReadAll() ([]seq.Sequence, error) {
	seqs := make([]seq.Sequence, 0, 10)
	for {
		s, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		seqs = append(seqs, s)
	}
	return seqs, nil
}

// Read reads the next sequence in the FASTA input. The name of the sequence
// is the header line with the leading '>' and surrounding whitespace
// removed.
//
// Residues may be letters (lower case is translated to upper case), '*',
// '-' or '.'. Any other character results in an error carrying the line
// number where it appeared. Blank lines and leading/trailing whitespace are
// always ignored.
//
// The '.' residue is not part of the NCBI alphabet, but gapped reference
// sequence files use it as an insert marker, so it is accepted here and
// passed through untouched.
//
// It is NOT safe to call this function from multiple goroutines.
func (r *Reader) Read() (seq.Sequence, error) {
	s := seq.Sequence{}
	seenHeader := false

	// The previous call may have already consumed this sequence's header.
	if r.nextHeader != nil {
		s.Name = trimHeader(r.nextHeader)
		r.nextHeader = nil
		seenHeader = true
	}
	for {
		line, err := r.buf.ReadBytes('\n')
		if err == io.EOF {
			if len(line) == 0 {
				if seenHeader {
					return s, nil
				}
				return seq.Sequence{}, io.EOF
			}
		} else if err != nil {
			return seq.Sequence{}, err
		}
		line = bytes.TrimSpace(line)

		if len(line) == 0 {
			r.line++
			continue
		}

		// If we haven't seen the header yet, this better be it.
		if !seenHeader {
			if line[0] != '>' {
				return seq.Sequence{},
					fmt.Errorf("Expected '>' on line %d, got '%c'.",
						r.line, line[0])
			}
			s.Name = trimHeader(line)
			seenHeader = true

			r.line++
			continue
		} else if line[0] == '>' {
			// This is the start of the next sequence, so save the header
			// for the next call and return what we have.
			r.nextHeader = line

			r.line++
			return s, nil
		}

		if s.Residues == nil {
			s.Residues = make([]seq.Residue, 0, 50)
		}
		for _, b := range line {
			if r.TrustSequences {
				s.Residues = append(s.Residues, seq.Residue(b))
				continue
			}
			bNew, ok := translate(b)
			if !ok {
				return seq.Sequence{},
					fmt.Errorf("Invalid character '%c' on line %d.",
						b, r.line)
			}
			s.Residues = append(s.Residues, seq.Residue(bNew))
		}

		r.line++
	}
}

// translate checks whether a sequence character is valid, and maps lower
// case letters to upper case.
func translate(b byte) (byte, bool) {
	switch {
	case b >= 'a' && b <= 'z':
		b = byte(unicode.ToTitle(rune(b)))
	case b >= 'A' && b <= 'Z':
	case b == '*':
	case b == '-':
	case b == '.':
	default:
		return 0, false
	}
	return b, true
}

func trimHeader(line []byte) string {
	return string(bytes.TrimSpace(bytes.TrimLeft(line, ">")))
}

// A Writer writes sequences to FASTA encoded output.
//
// 'Columns' corresponds to the number of columns at which a sequence is
// wrapped. If it's <= 0, then no wrapping will be used.
//
// The header text is never wrapped.
type Writer struct {
	// The number of columns to wrap a sequence at. By default, this
	// is set to 60. A value <= 0 will result in no wrapping.
	Columns int
	buf     *bufio.Writer
}

// NewWriter creates a new FASTA writer that can write sequences to
// an io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		Columns: 60,
		buf:     bufio.NewWriter(w),
	}
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Write writes a single sequence to the underlying io.Writer.
//
// You may need to call Flush in order for the changes to be written.
func (w *Writer) Write(s seq.Sequence) error {
	var err error
	pf := func(format string, v ...interface{}) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(w.buf, format, v...)
	}
	pf(">%s\n", s.Name)
	if w.Columns <= 0 {
		pf("%s\n", s.Residues)
		return err
	}
	for start := 0; start < s.Len(); start += w.Columns {
		end := start + w.Columns
		if end > s.Len() {
			end = s.Len()
		}
		pf("%s\n", s.Residues[start:end])
	}
	return err
}

// WriteAll writes a slice of sequences to the underlying io.Writer, and
// calls Flush.
func (w *Writer) WriteAll(seqs []seq.Sequence) error {
	for _, s := range seqs {
		if err := w.Write(s); err != nil {
			return err
		}
	}
	return w.Flush()
}
