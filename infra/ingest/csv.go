package ingest

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/kilianp07/prosumption/core/balance"
)

// Options control how a delimited file is read.
type Options struct {
	// Delimiter separates fields; ';' when zero.
	Delimiter rune
	// Types declares the type of individual columns.
	Types map[string]series.Type
	// DefaultType applies to undeclared columns; text when empty.
	DefaultType series.Type
	// Required lists columns the header must contain in addition to the
	// declared ones.
	Required []string
}

// DefaultOptions reads the energy-balance export: ';' separated, every
// measured column kept as text, all source columns required.
func DefaultOptions() Options {
	return Options{
		Delimiter:   ';',
		Types:       balance.DeclaredTypes(),
		DefaultType: series.String,
		Required:    balance.RequiredColumns(),
	}
}

// Load reads the file at path in a single pass. Files ending in .gz are
// decompressed on the fly.
func Load(path string, opts Options) (*balance.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &balance.LoadError{Source: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, &balance.LoadError{Source: path, Err: err}
		}
		defer func() { _ = gz.Close() }()
		r = gz
	}
	ds, err := Read(r, opts)
	if err != nil {
		var le *balance.LoadError
		if errors.As(err, &le) {
			le.Source = path
			return nil, le
		}
		return nil, &balance.LoadError{Source: path, Err: err}
	}
	return ds, nil
}

// Read loads a delimited table with a header row from r.
func Read(r io.Reader, opts Options) (*balance.Dataset, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ';'
	}
	if opts.DefaultType == "" {
		opts.DefaultType = series.String
	}
	loadOpts := []dataframe.LoadOption{
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(opts.DefaultType),
		dataframe.WithDelimiter(opts.Delimiter),
	}
	if len(opts.Types) > 0 {
		loadOpts = append(loadOpts, dataframe.WithTypes(opts.Types))
	}
	frame := dataframe.ReadCSV(r, loadOpts...)
	if frame.Err != nil {
		return nil, &balance.LoadError{Source: "reader", Err: frame.Err}
	}
	if err := checkColumns(frame.Names(), opts); err != nil {
		return nil, &balance.LoadError{Source: "reader", Err: err}
	}
	ds, err := balance.NewDataset(frame)
	if err != nil {
		return nil, &balance.LoadError{Source: "reader", Err: err}
	}
	return ds, nil
}

func checkColumns(have []string, opts Options) error {
	present := make(map[string]bool, len(have))
	for _, h := range have {
		present[h] = true
	}
	var missing []string
	seen := map[string]bool{}
	want := append([]string{}, opts.Required...)
	for c := range opts.Types {
		want = append(want, c)
	}
	for _, c := range want {
		if !present[c] && !seen[c] {
			missing = append(missing, c)
		}
		seen[c] = true
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing columns: %s", strings.Join(missing, ", "))
	}
	return nil
}
