package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"parking-fee/core/schedule"
	"parking-fee/internal/errors"
	"parking-fee/internal/logging"
)

const standardTable = `
price_table "standard" {
  name              = "Standard"
  initial_tolerance = "00:15"

  until {
    duration = "01:00"
    value    = 5.00
  }

  recurring {
    from  = "01:00"
    every = "00:30"
    value = "2.10"
  }

  max_charge {
    period = "12:00"
    value  = 40
  }
}

price_table "motorcycle" {
  recurring {
    from  = "00:00"
    every = "01:00"
    value = 1.5
  }
}
`

const jsonTable = `{
  "price_table": {
    "weekend": {
      "name": "Weekend",
      "initial_tolerance": "00:10",
      "until": {"duration": "02:00", "value": 8}
    }
  }
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	prev := logging.Logger
	core, logs := observer.New(zapcore.DebugLevel)
	logging.SetLogger(zap.New(core))
	t.Cleanup(func() { logging.SetLogger(prev) })
	return logs
}

func TestParseNativeSyntax(t *testing.T) {
	tables, err := NewLoader().Parse([]byte(standardTable), "tables.hcl")
	require.NoError(t, err)
	require.Len(t, tables, 2)

	s := tables[0]
	assert.Equal(t, "standard", s.ID)
	assert.Equal(t, "Standard", s.Name)
	assert.Equal(t, "00:15", s.InitialTolerance)

	require.NotNil(t, s.Until)
	assert.Equal(t, "01:00", s.Until.Duration)
	assert.True(t, decimal.NewFromInt(5).Equal(s.Until.Value))

	require.NotNil(t, s.Recurring)
	assert.Equal(t, "01:00", s.Recurring.From)
	assert.Equal(t, "00:30", s.Recurring.Every)
	assert.Equal(t, "2.1", s.Recurring.Value.String())

	require.NotNil(t, s.MaxCharge)
	assert.Equal(t, "12:00", s.MaxCharge.Period)
	assert.True(t, decimal.NewFromInt(40).Equal(s.MaxCharge.Value))

	moto := tables[1]
	assert.Equal(t, "motorcycle", moto.Name)
	assert.Nil(t, moto.Until)
	assert.Nil(t, moto.MaxCharge)
	assert.Equal(t, "1.5", moto.Recurring.Value.String())
}

func TestParseJSONSyntax(t *testing.T) {
	tables, err := NewLoader().Parse([]byte(jsonTable), "weekend.json")
	require.NoError(t, err)
	require.Len(t, tables, 1)

	s := tables[0]
	assert.Equal(t, "weekend", s.ID)
	assert.Equal(t, "Weekend", s.Name)
	require.NotNil(t, s.Until)
	assert.True(t, decimal.NewFromInt(8).Equal(s.Until.Value))
	assert.Nil(t, s.Recurring)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		errType errors.Type
	}{
		{
			name:    "syntax error",
			src:     `price_table "x" {`,
			errType: errors.TypeParsing,
		},
		{
			name:    "unknown attribute",
			src:     `price_table "x" { colour = "red" }`,
			errType: errors.TypeParsing,
		},
		{
			name:    "missing tier attribute",
			src:     `price_table "x" {
  until {
    duration = "01:00"
  }
}`,
			errType: errors.TypeParsing,
		},
		{
			name:    "non numeric amount",
			src:     `price_table "x" {
  until {
    duration = "01:00"
    value    = "five"
  }
}`,
			errType: errors.TypeParsing,
		},
		{
			name:    "duplicate tier block",
			src:     `price_table "x" {
  until {
    duration = "01:00"
    value    = 1
  }
  until {
    duration = "02:00"
    value    = 2
  }
}`,
			errType: errors.TypeParsing,
		},
		{
			name:    "duplicate table",
			src:     `price_table "x" {}
price_table "x" {}`,
			errType: errors.TypeConflict,
		},
		{
			name:    "zero recurring interval",
			src:     `price_table "x" {
  recurring {
    from  = "00:00"
    every = "00:00"
    value = 1
  }
}`,
			errType: errors.TypeInvalidSchedule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			assert.Equal(t, tt.errType, errors.TypeOf(err), "got %v", err)
		})
	}
}

func TestMalformedDurationWarnsByDefault(t *testing.T) {
	logs := observeLogs(t)
	src := `price_table "lenient" { initial_tolerance = "15 min" }`

	tables, err := NewLoader().Parse([]byte(src), "lenient.hcl")
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, 0, schedule.ParseClock(tables[0].InitialTolerance))

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "lenient", warnings[0].ContextMap()["table"])
}

func TestMalformedDurationRejectedWhenStrict(t *testing.T) {
	src := `price_table "strict" { initial_tolerance = "15 min" }`

	_, err := NewLoader(WithStrictDurations(true)).Parse([]byte(src), "strict.hcl")
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeInvalidSchedule))
}

func TestLoadDirectory(t *testing.T) {
	observeLogs(t)
	dir := t.TempDir()
	writeFile(t, dir, "b_standard.hcl", standardTable)
	writeFile(t, dir, "a_weekend.json", jsonTable)
	writeFile(t, dir, "README.md", "not a table")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.hcl"), 0755))

	tables, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)

	ids := make([]string, 0, len(tables))
	for _, s := range tables {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"weekend", "standard", "motorcycle"}, ids)
}

func TestLoadDirectoryReportsBadFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "good.hcl", standardTable)
	writeFile(t, dir, "bad.hcl", `price_table "x" {`)

	_, err := NewLoader().LoadDir(context.Background(), dir)
	assert.True(t, errors.IsType(err, errors.TypeParsing))
}

func TestLoadIntoRegistry(t *testing.T) {
	observeLogs(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "tables.hcl", standardTable)

	registry := schedule.NewRegistry()
	require.NoError(t, NewLoader().LoadInto(context.Background(), path, registry))
	assert.Equal(t, 2, registry.Len())

	s, err := registry.Get(context.Background(), "standard")
	require.NoError(t, err)
	assert.Equal(t, "Standard", s.Name)

	// Loading the same tables again collides on their ids.
	err = NewLoader().LoadInto(context.Background(), path, registry)
	assert.True(t, errors.IsType(err, errors.TypeConflict))
}

func TestLoadMissingPath(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing"))
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}
