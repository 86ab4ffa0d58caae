package rootio

import "fmt"

// MalformedError reports a container that violates the binary format
// itself: wrong magic, a byte-count mismatch on a framed record, an
// unrecognized tag encoding, a topological sort that cannot converge,
// or a streamer-info list holding something other than a TStreamerInfo
// or a TList of TObjString.
type MalformedError struct {
	Op  string
	Err error
}

func (e *MalformedError) Error() string { return fmt.Sprintf("rootio: malformed container: %s: %v", e.Op, e.Err) }
func (e *MalformedError) Unwrap() error { return e.Err }

func malformedf(op, format string, args ...any) error {
	return &MalformedError{Op: op, Err: fmt.Errorf(format, args...)}
}

// UnsupportedError reports a feature the decoder deliberately refuses to
// guess at: a self-referencing object tag, an STL, Loop or
// ObjectAnyPointer streamer element a concrete class needs, or a basic
// type code the decoder does not recognize.
type UnsupportedError struct {
	Op  string
	Err error
}

func (e *UnsupportedError) Error() string { return fmt.Sprintf("rootio: unsupported: %s: %v", e.Op, e.Err) }
func (e *UnsupportedError) Unwrap() error { return e.Err }

func unsupportedf(op, format string, args ...any) error {
	return &UnsupportedError{Op: op, Err: fmt.Errorf(format, args...)}
}

// NotFoundError reports a Directory.Get miss.
type NotFoundError struct {
	Name  string
	Cycle *int16
}

func (e *NotFoundError) Error() string {
	if e.Cycle != nil {
		return fmt.Sprintf("rootio: not found: %q;%d", e.Name, *e.Cycle)
	}
	return fmt.Sprintf("rootio: not found: %q", e.Name)
}

// OptionError reports an unrecognized option. Open and OpenFile take
// typed OpenOption functions and do not return it.
type OptionError struct {
	Name string
}

func (e *OptionError) Error() string { return fmt.Sprintf("rootio: unrecognized option: %s", e.Name) }

// SourceIOError wraps a failure from a ByteSource's Read, preserving the
// offset/length that failed for diagnostics.
type SourceIOError struct {
	Path   string
	Offset uint64
	Length int
	Err    error
}

func (e *SourceIOError) Error() string {
	return fmt.Sprintf("rootio: read [%d,+%d) from %q: %v", e.Offset, e.Length, e.Path, e.Err)
}
func (e *SourceIOError) Unwrap() error { return e.Err }
