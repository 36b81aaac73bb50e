package format

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderFields(t *testing.T) {
	src := []byte{
		0x01,
		0x02, 0x03,
		0x04, 0x05, 0x06, 0x07,
		0xff, 0xff, 0xff, 0xfe,
		'a', 'b',
	}
	r := NewReader(bytes.NewReader(src))

	u8, err := r.Uint8("u8")
	require.NoError(t, err)
	assert.Equal(t, uint8(1), u8)

	u16, err := r.Uint16("u16")
	require.NoError(t, err)
	assert.Equal(t, uint16(0x0203), u16)

	u32, err := r.Uint32("u32")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x04050607), u32)

	i32, err := r.Int32("i32")
	require.NoError(t, err)
	assert.Equal(t, int32(-2), i32)

	b, err := r.Bytes(2, "bytes")
	require.NoError(t, err)
	assert.Equal(t, []byte("ab"), b)

	assert.Equal(t, len(src), r.Offset())
}

func TestReaderShortRead(t *testing.T) {
	tests := []struct {
		name  string
		src   []byte
		cause error
	}{
		{"partial field", []byte{0x01, 0x02}, io.ErrUnexpectedEOF},
		{"empty source", nil, io.EOF},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(bytes.NewReader(tt.src))
			_, err := r.Uint32("change counter")
			require.Error(t, err)

			var fe *Error
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, KindShortRead, fe.Kind)
			assert.Equal(t, "change counter", fe.Field)
			assert.Equal(t, 0, fe.Offset)
			assert.ErrorIs(t, err, ErrShortRead)
			assert.ErrorIs(t, err, tt.cause)
			assert.Contains(t, err.Error(), "change counter")
		})
	}
}

func TestReaderShortReadOffset(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3}))
	_, err := r.Uint16("first")
	require.NoError(t, err)

	_, err = r.Uint16("second")
	var fe *Error
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 2, fe.Offset)
	assert.Equal(t, "wanted 2 bytes, got 1", fe.Msg)
}

func TestReaderIOFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	r := NewReader(iotest.ErrReader(boom))

	_, err := r.Bytes(16, "magic string")
	require.Error(t, err)
	assert.Equal(t, KindIO, KindOf(err))
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrShortRead)
}

func TestReaderNoLookAhead(t *testing.T) {
	src := bytes.NewReader(make([]byte, 10))
	r := NewReader(src)
	_, err := r.Uint32("x")
	require.NoError(t, err)
	assert.Equal(t, 6, src.Len())
}
