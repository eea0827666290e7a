package output

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// EpilogKind selects the trailing line written after the last record.
type EpilogKind uint8

const (
	// EpilogSummary writes flow, byte, and packet totals plus averages
	EpilogSummary EpilogKind = iota
	// EpilogEvents writes the number of rendered event records
	EpilogEvents
	// EpilogNone writes nothing
	EpilogNone
)

func (e EpilogKind) String() string {
	switch e {
	case EpilogSummary:
		return "summary"
	case EpilogEvents:
		return "events"
	case EpilogNone:
		return "none"
	}
	return "<InvalidEpilog>"
}

// UnmarshalYAML implements yaml.Unmarshaler
func (e *EpilogKind) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	for k := EpilogSummary; k <= EpilogNone; k++ {
		if strings.EqualFold(s, k.String()) {
			*e = k
			return nil
		}
	}
	return fmt.Errorf("unknown epilog %q", s)
}

// Layout is a named format.
type Layout struct {
	Name        string     `yaml:"-"`
	Format      string     `yaml:"format"`
	Epilog      EpilogKind `yaml:"epilog"`
	Description string     `yaml:"description"`
	// Machine layouts are meant for further processing: numbers are always plain, columns are
	// not padded, and no header is written.
	Machine bool `yaml:"machine"`
}

// custom is the layout of format strings that do not match any named layout
var custom = &Layout{Format: "", Epilog: EpilogSummary}

var (
	// ErrLayoutExists is returned when registering a layout name twice.
	ErrLayoutExists = errors.New("layout already exists")
	// ErrEmptyFormat is returned when registering a layout without format.
	ErrEmptyFormat = errors.New("layout format is empty")
)

var layouts = make(map[string]*Layout)
var byFormat = make(map[string]*Layout)

// RegisterLayout adds a named layout. The first layout registered for a format string also
// handles literal uses of that format string.
func RegisterLayout(l Layout) error {
	if l.Name == "" {
		return errors.New("layout name is empty")
	}
	if l.Format == "" {
		return fmt.Errorf("layout %s: %w", l.Name, ErrEmptyFormat)
	}
	if _, ok := layouts[l.Name]; ok {
		return fmt.Errorf("layout %s: %w", l.Name, ErrLayoutExists)
	}
	layout := l
	layouts[l.Name] = &layout
	if _, ok := byFormat[l.Format]; !ok {
		byFormat[l.Format] = &layout
	}
	return nil
}

// LookupLayout returns the layout registered with name.
func LookupLayout(name string) (Layout, bool) {
	l, ok := layouts[name]
	if !ok {
		return Layout{}, false
	}
	return *l, true
}

// Layouts returns all registered layouts sorted by name.
func Layouts() []Layout {
	ret := make([]Layout, 0, len(layouts))
	for _, l := range layouts {
		ret = append(ret, *l)
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Name < ret[j].Name })
	return ret
}

// ReadLayouts registers the layouts contained in a yaml document of the form
//
//	name:
//	  format: "%ts %sap -> %dap"
//	  epilog: none
//
// Every format is compiled before any layout is registered.
func ReadLayouts(r io.Reader) ([]string, error) {
	var doc map[string]Layout
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("couldn't parse layouts: %w", err)
	}
	names := make([]string, 0, len(doc))
	for name := range doc {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		l := doc[name]
		if l.Format == "" {
			return nil, fmt.Errorf("layout %s: %w", name, ErrEmptyFormat)
		}
		if _, ok := layouts[name]; ok {
			return nil, fmt.Errorf("layout %s: %w", name, ErrLayoutExists)
		}
		if _, err := tokenize(l.Format, false); err != nil {
			return nil, fmt.Errorf("layout %s: %w", name, err)
		}
	}
	for _, name := range names {
		l := doc[name]
		l.Name = name
		if err := RegisterLayout(l); err != nil {
			return nil, err
		}
	}
	return names, nil
}

// LoadLayouts reads the layouts from the given yaml file.
func LoadLayouts(fn string) ([]string, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	names, err := ReadLayouts(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	log.Infof("loaded %d layouts from %s", len(names), fn)
	return names, nil
}

func init() {
	for _, l := range []Layout{
		{Name: "line", Format: "%ts %td %pr %sap -> %dap %pkt %byt %fl", Description: "Short generic layout"},
		{Name: "gline", Format: "%ts %td %pr %gsap -> %gdap %pkt %byt %fl", Description: "Short generic layout with country codes"},
		{Name: "long", Format: "%ts %td %pr %sap -> %dap %flg %tos %pkt %byt %fl", Description: "Generic layout with flags and tos"},
		{Name: "glong", Format: "%ts %td %pr %gsap -> %gdap %flg %tos %pkt %byt %fl", Description: "Generic layout with flags, tos, and country codes"},
		{Name: "extended", Format: "%ts %td %pr %sap -> %dap %flg %tos %pkt %byt %pps %bps %bpp %fl", Description: "Generic layout with rates"},
		{Name: "biline", Format: "%ts %td %pr %sap <-> %dap %opkt %ipkt %obyt %ibyt %fl", Description: "Short bidirectional layout"},
		{Name: "bilong", Format: "%ts %td %pr %sap <-> %dap %flg %tos %opkt %ipkt %obyt %ibyt %fl", Description: "Bidirectional layout with flags and tos"},
		{Name: "nsel", Format: "%ts %evt %xevt %pr %sap -> %dap %xsap -> %xdap %ibyt %obyt", Epilog: EpilogEvents, Description: "Security event layout"},
		{Name: "nel", Format: "%ts %nevt %pr %sap -> %dap %nsap -> %ndap", Epilog: EpilogEvents, Description: "NAT event layout"},
		{Name: "csv", Format: "%ts,%te,%td,%sa,%da,%sp,%dp,%pr,%flg,%tos,%ipkt,%ibyt,%opkt,%obyt,%in,%out,%sas,%das,%ra", Epilog: EpilogNone, Machine: true, Description: "Comma separated values"},
	} {
		if err := RegisterLayout(l); err != nil {
			panic(err)
		}
	}
}
