package fonts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	require.NoError(t, LoadDefaults())
	for _, name := range []FontName{HUD, Title, Small} {
		assert.NotNil(t, name.Get())
	}
	assert.Greater(t, int(Title.Get().Metrics().Height), int(HUD.Get().Metrics().Height))
}

func TestLoadFontRejectsGarbage(t *testing.T) {
	assert.Error(t, LoadFont("broken", []byte("not a font")))
	assert.Panics(t, func() { FontName("broken").Get() })
}
