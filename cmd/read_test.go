package cmd

import (
	"bytes"
	"encoding/binary"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umvarma/gonastran/op2"
)

func writeOP2(t *testing.T) string {
	t.Helper()
	b := op2.NewBuilder(binary.LittleEndian)
	h := op2.HeaderSpec{
		ApproachCode: op2.Approach(1, 1),
		TableCode:    op2.TableCodeDisplacement,
		Subcase:      1,
		FormatCode:   1,
		NumWide:      8,
		Title:        "CLI TEST",
	}
	p := b.Payload().Int(51, 1).Float(1, 2, 3, 4, 5, 6).Int(61, 1).Float(6, 5, 4, 3, 2, 1)
	b.Table("OUGV1").Header(h).Data(p).EndTable()
	b.Table("GEOM1").SubRecord([]byte("header")).SubRecord(make([]byte, 8)).EndTable()
	b.EndFile()
	data, err := b.Bytes()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "model.op2")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestRunRead(t *testing.T) {
	var (
		path     = writeOP2(t)
		dir      = t.TempDir()
		params   = filepath.Join(dir, "reader.yaml")
		jsonFile = filepath.Join(dir, "summary.json")
		logBuf   bytes.Buffer
		out      bytes.Buffer
	)
	require.NoError(t, os.WriteFile(params, []byte("DuplicatePolicy: overwrite\n"), 0644))
	log := slog.New(slog.NewTextHandler(&logBuf, nil))

	sums, err := RunRead(&ReadJob{File: path, ParamsFile: params, JSONFile: jsonFile}, log, &out)
	require.NoError(t, err)
	require.Len(t, sums, 1)
	sum := sums[0]
	require.Len(t, sum.Tables, 2)
	assert.Equal(t, "OUGV1", sum.Tables[0].Name)
	assert.Equal(t, "unknown", sum.Tables[1].Family)
	assert.Equal(t, "little", sum.ByteOrder)
	require.Len(t, sum.Results, 1)
	ks := sum.Results[0]
	assert.Equal(t, "displacements", ks.Kind)
	require.Len(t, ks.Keys, 1)
	assert.Equal(t, 2, ks.Keys[0].Rows)
	assert.Equal(t, 5, ks.Keys[0].FirstID)
	assert.Equal(t, 6, ks.Keys[0].LastID)
	assert.Equal(t, "CLI TEST", ks.Keys[0].Title)
	assert.Len(t, sum.Warnings, 1)

	assert.Contains(t, out.String(), "displacements")
	assert.Contains(t, logBuf.String(), "read complete")
	assert.Contains(t, logBuf.String(), "level=WARN")
	assert.Contains(t, logBuf.String(), sum.ReadID)

	data, err := os.ReadFile(jsonFile)
	require.NoError(t, err)
	var back Summary
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, sum.ReadID, back.ReadID)
	assert.Equal(t, sum.Results, back.Results)

	out.Reset()
	_, err = RunRead(&ReadJob{File: path, YAML: true}, log, &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "kind: displacements")
	assert.Contains(t, out.String(), "read_id:")
}

func TestRunReadErrors(t *testing.T) {
	log := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	var out bytes.Buffer
	_, err := RunRead(&ReadJob{}, log, &out)
	assert.Error(t, err)

	dir := t.TempDir()
	params := filepath.Join(dir, "reader.yaml")
	require.NoError(t, os.WriteFile(params, []byte("DuplicatePolicy: merge\n"), 0644))
	_, err = RunRead(&ReadJob{File: writeOP2(t), ParamsFile: params}, log, &out)
	assert.Error(t, err)

	junk := filepath.Join(dir, "junk.op2")
	require.NoError(t, os.WriteFile(junk, []byte("not an op2 file"), 0644))
	_, err = RunRead(&ReadJob{File: junk}, log, &out)
	var re *op2.ReadError
	assert.ErrorAs(t, err, &re)
}

func TestRunReadBatch(t *testing.T) {
	var (
		dir      = t.TempDir()
		jsonFile = filepath.Join(dir, "batch.json")
		junk     = filepath.Join(dir, "junk.op2")
		logBuf   bytes.Buffer
		out      bytes.Buffer
	)
	log := slog.New(slog.NewTextHandler(&logBuf, nil))
	first, second := writeOP2(t), writeOP2(t)
	sums, err := RunRead(&ReadJob{File: first, More: []string{second}, Parallel: 2, JSONFile: jsonFile}, log, &out)
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, first, sums[0].File)
	assert.Equal(t, second, sums[1].File)
	assert.NotEqual(t, sums[0].ReadID, sums[1].ReadID)
	assert.Contains(t, logBuf.String(), "batch complete")

	data, err := os.ReadFile(jsonFile)
	require.NoError(t, err)
	var back []Summary
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 2)
	assert.Equal(t, sums[1].ReadID, back[1].ReadID)

	// A bad file fails the batch but the others are still summarized
	require.NoError(t, os.WriteFile(junk, []byte("not an op2 file"), 0644))
	out.Reset()
	sums, err = RunRead(&ReadJob{More: []string{junk, first}}, log, &out)
	var re *op2.ReadError
	assert.ErrorAs(t, err, &re)
	require.Len(t, sums, 1)
	assert.Equal(t, first, sums[0].File)
	assert.Contains(t, out.String(), "displacements")
}

func TestListTables(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, ListTables(writeOP2(t), &out))
	assert.Contains(t, out.String(), "OUGV1")
	assert.Contains(t, out.String(), "GEOM1")
}

func TestLogging(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelInfo, parseLevel(""))

	path := filepath.Join(t.TempDir(), "gonastran.log")
	l := newLogger(LogConfig{Level: "debug", File: path, MaxSizeMB: 1})
	l.Debug("rotating log", "n", 1)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "rotating log")
	assert.Equal(t, os.Stderr, logWriter(LogConfig{}))
}
