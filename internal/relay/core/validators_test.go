package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onimusic/notifications-helper/internal/relay/core"
	"github.com/onimusic/notifications-helper/telegram"
)

func TestValidateNotification(t *testing.T) {
	tests := []struct {
		name        string
		n           core.Notification
		expectedErr error
	}{
		{
			name: "valid text",
			n:    core.Notification{Kind: telegram.KindText, Target: "@c", Content: "hello"},
		},
		{
			name: "valid document with caption",
			n:    core.Notification{Kind: telegram.KindDocument, Target: "-100123", Content: "BQACAgQ", Caption: "report"},
		},
		{
			name:        "empty target",
			n:           core.Notification{Kind: telegram.KindText, Target: "  ", Content: "hello"},
			expectedErr: core.ErrEmptyTarget,
		},
		{
			name:        "unknown kind",
			n:           core.Notification{Kind: telegram.ContentKind(9), Target: "@c", Content: "x"},
			expectedErr: core.ErrUnsupportedKind,
		},
		{
			name: "whitespace content is left to telegram",
			n:    core.Notification{Kind: telegram.KindText, Target: "@c", Content: " "},
		},
		{
			name:        "empty content",
			n:           core.Notification{Kind: telegram.KindPhoto, Target: "@c"},
			expectedErr: core.ErrEmptyContent,
		},
		{
			name:        "caption on text",
			n:           core.Notification{Kind: telegram.KindText, Target: "@c", Content: "hi", Caption: "no"},
			expectedErr: core.ErrCaptionNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := core.ValidateNotification(tt.n)
			if tt.expectedErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.expectedErr)
		})
	}
}

func TestValidateNotification_InvalidUTF8(t *testing.T) {
	err := core.ValidateNotification(core.Notification{
		Kind:    telegram.KindText,
		Target:  "@c",
		Content: string([]byte{0xff, 0xfe}),
	})

	var validationErr core.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "UTF-8")
}

func TestParseNotification(t *testing.T) {
	n, err := core.ParseNotification("gif", " @c ", "CgACAgQ", "lol")
	require.NoError(t, err)
	assert.Equal(t, telegram.KindAnimation, n.Kind)
	assert.Equal(t, "@c", n.Target)

	_, err = core.ParseNotification("sticker", "@c", "x", "")
	assert.ErrorIs(t, err, core.ErrUnsupportedKind)
}
