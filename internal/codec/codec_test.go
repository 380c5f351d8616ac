package codec

import (
	"bytes"
	"github.com/jypelle/boberplayer/apimodel"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"strings"
	"testing"
)

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
		wantErr  bool
	}{
		{"library.json", JSON, false},
		{"library.yaml", YAML, false},
		{"/tmp/library.YML", YAML, false},
		{"library.toml", "", true},
		{"library", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			format, err := FormatFromFilename(tt.filename)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, format)
		})
	}
}

func TestRoundTrip(t *testing.T) {
	songs := []apimodel.Song{
		{Id: 1, Name: "Track A", Path: "/music/a.mp3", Author: lo.ToPtr("Artist X")},
		{Id: 2, Name: "Track B", Path: "/music/b.mp3", Album: lo.ToPtr("Album")},
	}

	for _, format := range []Format{JSON, YAML} {
		t.Run(string(format), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Encode(&buf, format, songs))

			var decoded []apimodel.Song
			require.NoError(t, Decode(&buf, format, &decoded))
			assert.Equal(t, songs, decoded)
		})
	}
}

func TestDecodeJSONTrailingData(t *testing.T) {
	var v map[string]int
	err := Decode(strings.NewReader(`{"a":1} {"b":2}`), JSON, &v)
	assert.Error(t, err)

	require.NoError(t, Decode(strings.NewReader("{\"a\":1}\n"), JSON, &v))
	assert.Equal(t, 1, v["a"])
}

func TestDecodeEmptyYAML(t *testing.T) {
	var v map[string]int
	assert.NoError(t, Decode(strings.NewReader(""), YAML, &v))
	assert.Nil(t, v)
}

func TestUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.ErrorIs(t, Encode(&buf, "toml", 1), ErrUnknownFormat)
	assert.ErrorIs(t, Decode(&buf, "toml", new(int)), ErrUnknownFormat)
}
