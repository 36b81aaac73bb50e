package format

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "validation",
			err:  &Error{Kind: KindInvalidPageSize, Field: "page size", Offset: 16, Msg: "must be >= 512, found: 256"},
			want: "page size: invalid page size: must be >= 512, found: 256",
		},
		{
			name: "read",
			err:  &Error{Kind: KindShortRead, Field: "user version", Offset: 60, Msg: "wanted 4 bytes, got 0"},
			want: "read user version at offset 60: short read: wanted 4 bytes, got 0",
		},
		{
			name: "with cause",
			err:  &Error{Kind: KindIO, Field: "magic string", Err: errors.New("EIO")},
			want: "read magic string at offset 0: i/o failure: EIO",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestErrorIs(t *testing.T) {
	err := fmt.Errorf("decode app.db: %w", &Error{Kind: KindInvalidFraction, Field: "leaf payload fraction"})

	assert.ErrorIs(t, err, ErrInvalidFraction)
	assert.NotErrorIs(t, err, ErrInvalidPageSize)
	assert.Equal(t, KindInvalidFraction, KindOf(err))
	assert.Equal(t, Kind(0), KindOf(errors.New("other")))
}

func TestKindFatal(t *testing.T) {
	for _, k := range []Kind{KindMagicMismatch, KindInvalidPageSize, KindInvalidFraction, KindUnexpectedZero, KindShortRead, KindIO} {
		assert.True(t, k.Fatal(), k.String())
	}
	assert.False(t, KindUnexpectedNonZero.Fatal())
	assert.Equal(t, "kind(99)", Kind(99).String())
}
