package resolve

import (
	"encoding/csv"
	"fmt"
	"io"
	"net"
	"os"
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru"
)

// DefaultCacheSize is the number of addresses a GeoTable remembers.
const DefaultCacheSize = 4096

type geoNet struct {
	network *net.IPNet
	ones    int
	country string
}

// GeoTable maps networks to two letter country codes. Lookups return the country of the most
// specific network containing the address. Lookups are safe for concurrent use.
type GeoTable struct {
	networks []geoNet
	cache    *lru.Cache
}

// NewGeoTable returns an empty table with a lookup cache of the given size.
func NewGeoTable(cacheSize int) (*GeoTable, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &GeoTable{cache: cache}, nil
}

// Add adds a network given in CIDR notation with its country code.
func (g *GeoTable) Add(cidr, country string) error {
	if err := g.add(cidr, country); err != nil {
		return err
	}
	g.sort()
	return nil
}

func (g *GeoTable) sort() {
	sort.SliceStable(g.networks, func(i, j int) bool { return g.networks[i].ones > g.networks[j].ones })
	g.cache.Purge()
}

func (g *GeoTable) add(cidr, country string) error {
	_, network, err := net.ParseCIDR(strings.TrimSpace(cidr))
	if err != nil {
		return err
	}
	country = strings.ToUpper(strings.TrimSpace(country))
	if len(country) != 2 {
		return fmt.Errorf("invalid country code %q for %s", country, cidr)
	}
	ones, _ := network.Mask.Size()
	g.networks = append(g.networks, geoNet{network: network, ones: ones, country: country})
	return nil
}

// Len returns the number of networks in the table.
func (g *GeoTable) Len() int {
	return len(g.networks)
}

// Country returns the country code of ip, or false if no network contains ip.
func (g *GeoTable) Country(ip net.IP) (string, bool) {
	if ip == nil {
		return "", false
	}
	key := string(ip.To16())
	if v, ok := g.cache.Get(key); ok {
		cc := v.(string)
		return cc, cc != ""
	}
	cc := ""
	for _, n := range g.networks {
		if n.network.Contains(ip) {
			cc = n.country
			break
		}
	}
	g.cache.Add(key, cc)
	return cc, cc != ""
}

// ReadGeoTable reads cidr,country lines. Lines starting with # are ignored.
func ReadGeoTable(r io.Reader, cacheSize int) (*GeoTable, error) {
	g, err := NewGeoTable(cacheSize)
	if err != nil {
		return nil, err
	}
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.FieldsPerRecord = 2
	reader.TrimLeadingSpace = true
	reader.ReuseRecord = true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if err := g.add(record[0], record[1]); err != nil {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
	}
	g.sort()
	return g, nil
}

// LoadGeoTable reads a geo table from the csv file fn.
func LoadGeoTable(fn string, cacheSize int) (*GeoTable, error) {
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	g, err := ReadGeoTable(f, cacheSize)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return g, nil
}
