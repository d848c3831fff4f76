package entity

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Identifier
		wantErr bool
		badVal  string
	}{
		{name: "uppercase", input: "4HHB", want: "4HHB"},
		{name: "lowercase is normalized", input: "4hhb", want: "4HHB"},
		{name: "surrounding whitespace", input: "  1jwp\n", want: "1JWP"},
		{name: "all digits", input: "1234", want: "1234"},
		{name: "empty", input: "", wantErr: true, badVal: ""},
		{name: "too short", input: "4hh", wantErr: true, badVal: "4HH"},
		{name: "too long", input: "4hhbb", wantErr: true, badVal: "4HHBB"},
		{name: "punctuation", input: "4H-B", wantErr: true, badVal: "4H-B"},
		{name: "inner space", input: "4H B", wantErr: true, badVal: "4H B"},
		{name: "non ascii", input: "4HHÉ", wantErr: true, badVal: "4HHÉ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIdentifier(tt.input)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.want, got)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidIdentifierFormat))

			var invalid *InvalidIdentifierError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.badVal, invalid.Value)
		})
	}
}
