// Package hcl loads price tables from HCL files.
//
// Files ending in .json are read with the HCL JSON syntax, everything else with
// the native syntax. A file holds any number of price_table blocks:
//
//	price_table "standard" {
//	  name              = "Standard"
//	  initial_tolerance = "00:15"
//
//	  until {
//	    duration = "01:00"
//	    value    = 5.00
//	  }
//
//	  recurring {
//	    from  = "01:00"
//	    every = "00:30"
//	    value = 2.00
//	  }
//
//	  max_charge {
//	    period = "12:00"
//	    value  = 40
//	  }
//	}
package hcl

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"parking-fee/core/schedule"
	"parking-fee/internal/errors"
	"parking-fee/internal/logging"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "price_table", LabelNames: []string{"id"}},
	},
}

var tableSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "name"},
		{Name: "initial_tolerance"},
	},
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "until"},
		{Type: "recurring"},
		{Type: "max_charge"},
	},
}

var untilSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "duration", Required: true},
		{Name: "value", Required: true},
	},
}

var recurringSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "from", Required: true},
		{Name: "every", Required: true},
		{Name: "value", Required: true},
	},
}

var maxChargeSchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "period", Required: true},
		{Name: "value", Required: true},
	},
}

// Loader reads price table files
type Loader struct {
	strict bool
}

// Option configures a Loader
type Option func(*Loader)

// WithStrictDurations rejects tables with malformed "HH:MM" fields instead of
// logging a warning and letting them count as zero minutes.
func WithStrictDurations(strict bool) Option {
	return func(l *Loader) {
		l.strict = strict
	}
}

// NewLoader creates a new loader
func NewLoader(opts ...Option) *Loader {
	l := &Loader{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// LoadInto loads path (a file or a directory) and registers every table in registry
func (l *Loader) LoadInto(ctx context.Context, path string, registry *schedule.Registry) error {
	tables, err := l.Load(ctx, path)
	if err != nil {
		return err
	}
	for _, s := range tables {
		if err := registry.Register(s); err != nil {
			return err
		}
	}
	logging.Named("tables").Info("price tables loaded",
		zap.String("path", path),
		zap.Int("count", len(tables)))
	return nil
}

// Load reads a single file or every .hcl and .json file directly inside a directory
func (l *Loader) Load(ctx context.Context, path string) ([]*schedule.Schedule, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "price tables not readable: %s", path)
	}
	if !info.IsDir() {
		return l.LoadFile(path)
	}
	return l.LoadDir(ctx, path)
}

// LoadDir parses the table files in dir concurrently. Results keep file name order.
func (l *Loader) LoadDir(ctx context.Context, dir string) ([]*schedule.Schedule, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to read directory: %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !isTableFile(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)

	results := make([][]*schedule.Schedule, len(files))
	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tables, err := l.LoadFile(file)
			if err != nil {
				return err
			}
			results[i] = tables
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []*schedule.Schedule
	for _, tables := range results {
		all = append(all, tables...)
	}
	return all, nil
}

// LoadFile reads and parses one file
func (l *Loader) LoadFile(path string) ([]*schedule.Schedule, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.TypeConfig, err, "failed to read file: %s", path)
	}
	return l.Parse(src, path)
}

// Parse decodes the price tables in src. filename selects the syntax and is used in diagnostics.
func (l *Loader) Parse(src []byte, filename string) ([]*schedule.Schedule, error) {
	// hclparse.Parser caches files and is not safe for concurrent use.
	parser := hclparse.NewParser()

	var file *hcl.File
	var diags hcl.Diagnostics
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		file, diags = parser.ParseJSON(src, filename)
	} else {
		file, diags = parser.ParseHCL(src, filename)
	}
	if diags.HasErrors() {
		return nil, errors.Parsing("failed to parse "+filename, diags)
	}

	content, diags := file.Body.Content(fileSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid price table file "+filename, diags)
	}

	seen := make(map[string]hcl.Range)
	tables := make([]*schedule.Schedule, 0, len(content.Blocks))
	for _, block := range content.Blocks {
		id := block.Labels[0]
		if prev, dup := seen[id]; dup {
			return nil, errors.Newf(errors.TypeConflict, "price table %q declared twice (%s and %s)", id, prev, block.DefRange)
		}
		seen[id] = block.DefRange

		s, err := decodeTable(id, block.Body)
		if err != nil {
			return nil, err
		}
		if err := l.check(s, filename); err != nil {
			return nil, err
		}
		tables = append(tables, s)
	}
	return tables, nil
}

func (l *Loader) check(s *schedule.Schedule, filename string) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := s.Strict(); err != nil {
		if l.strict {
			return err
		}
		logging.Named("tables").Warn("malformed duration will count as zero minutes",
			zap.String("file", filename),
			zap.String("table", s.ID),
			zap.Error(err))
	}
	return nil
}

func decodeTable(id string, body hcl.Body) (*schedule.Schedule, error) {
	content, diags := body.Content(tableSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing(fmt.Sprintf("invalid price table %q", id), diags)
	}

	s := &schedule.Schedule{ID: id, Name: id}
	var err error
	if attr, ok := content.Attributes["name"]; ok {
		if s.Name, err = stringAttr(attr); err != nil {
			return nil, err
		}
	}
	if attr, ok := content.Attributes["initial_tolerance"]; ok {
		if s.InitialTolerance, err = stringAttr(attr); err != nil {
			return nil, err
		}
	}

	blocks := make(map[string]*hcl.Block)
	for _, block := range content.Blocks {
		if prev, dup := blocks[block.Type]; dup {
			return nil, errors.Newf(errors.TypeParsing, "price table %q: duplicate %s block (%s and %s)",
				id, block.Type, prev.DefRange, block.DefRange)
		}
		blocks[block.Type] = block
	}

	if block, ok := blocks["until"]; ok {
		if s.Until, err = decodeUntil(block.Body); err != nil {
			return nil, err
		}
	}
	if block, ok := blocks["recurring"]; ok {
		if s.Recurring, err = decodeRecurring(block.Body); err != nil {
			return nil, err
		}
	}
	if block, ok := blocks["max_charge"]; ok {
		if s.MaxCharge, err = decodeMaxCharge(block.Body); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func decodeUntil(body hcl.Body) (*schedule.UntilTier, error) {
	content, diags := body.Content(untilSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid until block", diags)
	}
	duration, err := stringAttr(content.Attributes["duration"])
	if err != nil {
		return nil, err
	}
	value, err := amountAttr(content.Attributes["value"])
	if err != nil {
		return nil, err
	}
	return &schedule.UntilTier{Duration: duration, Value: value}, nil
}

func decodeRecurring(body hcl.Body) (*schedule.RecurringTier, error) {
	content, diags := body.Content(recurringSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid recurring block", diags)
	}
	from, err := stringAttr(content.Attributes["from"])
	if err != nil {
		return nil, err
	}
	every, err := stringAttr(content.Attributes["every"])
	if err != nil {
		return nil, err
	}
	value, err := amountAttr(content.Attributes["value"])
	if err != nil {
		return nil, err
	}
	return &schedule.RecurringTier{From: from, Every: every, Value: value}, nil
}

func decodeMaxCharge(body hcl.Body) (*schedule.MaxChargeTier, error) {
	content, diags := body.Content(maxChargeSchema)
	if diags.HasErrors() {
		return nil, errors.Parsing("invalid max_charge block", diags)
	}
	period, err := stringAttr(content.Attributes["period"])
	if err != nil {
		return nil, err
	}
	value, err := amountAttr(content.Attributes["value"])
	if err != nil {
		return nil, err
	}
	return &schedule.MaxChargeTier{Period: period, Value: value}, nil
}
