package op2

import (
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umvarma/gonastran/fortran"
)

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := int32(1); i <= 6; i++ {
		data := build(t, binary.LittleEndian, func(b *Builder) {
			b.Table("OUGV1").Header(staticHeader(TableCodeDisplacement, 8)).
				Data(nodalEntry(b.Payload(), 10*i+1, float32(i), 0, 0, 0, 0, 0)).
				EndTable().EndFile()
		})
		path := filepath.Join(dir, filepath.Base(t.Name())+string(rune('a'+i))+".op2")
		require.NoError(t, os.WriteFile(path, data, 0644))
		paths = append(paths, path)
	}
	paths = append(paths, filepath.Join(dir, "missing.op2"))
	junk := filepath.Join(dir, "junk.op2")
	require.NoError(t, os.WriteFile(junk, []byte("garbage!"), 0644))
	paths = append(paths, junk)

	out := ReadFiles(paths, Options{}, 3)
	require.Len(t, out, len(paths))
	for i, fr := range out[:6] {
		assert.Equal(t, paths[i], fr.Path)
		require.NoError(t, fr.Err)
		row, ok := fr.Result.Results.Table("displacements").Get(staticKey, i+1)
		require.True(t, ok)
		assert.Equal(t, float64(i+1), row.Values[0])
	}
	assert.Error(t, out[6].Err)
	assert.True(t, errors.Is(out[7].Err, fortran.ErrUnknownEndian))
	assert.Empty(t, ReadFiles(nil, Options{}, 0))
}
