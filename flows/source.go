package flows

import (
	"io"
	"sync/atomic"

	"github.com/CN-TU/go-flowfmt/util"
)

const sourceName = "source"

// Source represents a generic record source
type Source interface {
	util.Module
	// ReadRecord returns the next decoded record. It must return io.EOF after the last record.
	// The returned record is only valid until the next call to ReadRecord.
	ReadRecord() (Record, error)
	// Stop shuts down the source
	Stop()
}

// Sources holds a collection of sources that are queried one after another
type Sources struct {
	stopped uint64
	sources []Source
}

// Append adds source to this source-collection
func (s *Sources) Append(a Source) {
	s.sources = append(s.sources, a)
}

// Len returns the number of sources that are not exhausted yet
func (s *Sources) Len() int {
	return len(s.sources)
}

// ReadRecord reads a single record from the current source. In case the current source is empty, it switches to the next one.
func (s *Sources) ReadRecord() (rec Record, err error) {
	if len(s.sources) == 0 {
		return nil, io.EOF
	}
	for {
		rec, err = s.sources[0].ReadRecord()
		if err == nil || err != io.EOF {
			return
		}
		if atomic.LoadUint64(&s.stopped) == 1 {
			err = io.EOF
			return
		}
		s.sources[0].Stop()
		if len(s.sources) == 1 {
			s.sources = nil
			return
		}
		s.sources = s.sources[1:]
	}
}

// Stop all record sources
func (s *Sources) Stop() {
	atomic.StoreUint64(&s.stopped, 1)
	if len(s.sources) > 0 {
		s.sources[0].Stop()
	}
}

// RegisterSource registers a source (see module system in util)
func RegisterSource(name, desc string, new util.ModuleCreator, help util.ModuleHelp) {
	util.RegisterModule(sourceName, name, desc, new, help)
}

// SourceHelp displays help for a specific source (see module system in util)
func SourceHelp(which string) error {
	return util.GetModuleHelp(sourceName, which)
}

// MakeSource creates a source instance (see module system in util)
func MakeSource(which string, args []string) ([]string, Source, error) {
	args, module, err := util.CreateModule(sourceName, which, args)
	if err != nil {
		return args, nil, err
	}
	return args, module.(Source), nil
}

// ListSources returns a list of sources (see module system in util)
func ListSources() ([]util.ModuleDescription, error) {
	return util.GetModules(sourceName)
}
