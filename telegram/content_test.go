package telegram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentKind_Endpoint(t *testing.T) {
	expected := map[ContentKind]endpoint{
		KindText:      {method: "sendMessage", param: "text", encodeValue: true},
		KindPhoto:     {method: "sendPhoto", param: "photo"},
		KindAnimation: {method: "sendAnimation", param: "animation"},
		KindVideo:     {method: "sendVideo", param: "video"},
		KindDocument:  {method: "sendDocument", param: "document"},
	}

	for _, kind := range Kinds() {
		ep, ok := kind.endpoint()
		require.True(t, ok, kind.String())
		assert.Equal(t, expected[kind], ep)
	}

	_, ok := ContentKind(-1).endpoint()
	assert.False(t, ok)
	assert.Equal(t, "", ContentKind(42).Method())
	assert.Equal(t, "unknown", ContentKind(42).String())
}

func TestParseContentKind(t *testing.T) {
	testCases := map[string]ContentKind{
		"text":      KindText,
		"message":   KindText,
		"photo":     KindPhoto,
		"Photo":     KindPhoto,
		"gif":       KindAnimation,
		"animation": KindAnimation,
		" video ":   KindVideo,
		"document":  KindDocument,
	}

	for name, want := range testCases {
		got, err := ParseContentKind(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseContentKind("sticker")
	assert.ErrorIs(t, err, ErrUnknownContentKind)
	assert.Contains(t, err.Error(), "sticker")
}

func TestContentKind_StringRoundTrip(t *testing.T) {
	for _, kind := range Kinds() {
		parsed, err := ParseContentKind(kind.String())
		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}
}
