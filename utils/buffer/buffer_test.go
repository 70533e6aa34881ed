package buffer

import (
	"bufio"
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {

	values := []uint64{0, 1, 0xFFFFFFFFFFFFFFFF, 0x1fffffffffe00001}

	t.Run("WriteAndRead/Buffer", func(t *testing.T) {

		b := NewBufferSize(1 + 8 + 8*len(values))

		_, err := WriteUint8(b, 0x2a)
		require.NoError(t, err)
		_, err = WriteUint64(b, 0xdeadbeef)
		require.NoError(t, err)
		n, err := WriteUint64Slice(b, values)
		require.NoError(t, err)
		require.Equal(t, int64(8*len(values)), n)
		require.Equal(t, 0, b.Available())

		var c8 uint8
		var c64 uint64
		have := make([]uint64, len(values))

		_, err = ReadUint8(b, &c8)
		require.NoError(t, err)
		_, err = ReadUint64(b, &c64)
		require.NoError(t, err)
		_, err = ReadUint64Slice(b, have)
		require.NoError(t, err)

		require.Equal(t, uint8(0x2a), c8)
		require.Equal(t, uint64(0xdeadbeef), c64)
		require.Equal(t, values, have)
	})

	t.Run("WriteAndRead/Bufio", func(t *testing.T) {

		// A 16-byte bufio.Writer forces WriteUint64Slice to flush mid-slice.
		out := new(bytes.Buffer)
		w := bufio.NewWriterSize(out, 16)

		long := make([]uint64, 37)
		for i := range long {
			long[i] = uint64(i) * 0x9e3779b97f4a7c15
		}

		_, err := WriteUint64Slice(w, long)
		require.NoError(t, err)
		require.NoError(t, w.Flush())

		r := bufio.NewReaderSize(out, 16)
		have := make([]uint64, len(long))
		_, err = ReadUint64Slice(r, have)
		require.NoError(t, err)
		require.Equal(t, long, have)
	})

	t.Run("Overflow", func(t *testing.T) {
		b := NewBufferSize(7)
		_, err := WriteUint64(b, 1)
		require.Error(t, err)
	})

	t.Run("ShortRead", func(t *testing.T) {
		b := NewBuffer([]byte{1, 2, 3})
		var c uint64
		_, err := ReadUint64(b, &c)
		require.ErrorIs(t, err, io.EOF)
	})
}
