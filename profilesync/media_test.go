package profilesync

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMediaResolve_BinaryWins(t *testing.T) {
	m := MediaFromFile("logo.png", "image/png", []byte{1, 2, 3})
	res := m.Resolve()
	require.NotNil(t, res.File)
	assert.Equal(t, "logo.png", res.File.Name)
	assert.Empty(t, res.URL)
}

func TestMediaResolve_HTTPURLPassesThrough(t *testing.T) {
	for _, u := range []string{"https://cdn.example.com/a.png", "http://cdn.example.com/a.png"} {
		res := MediaFromURL(u).Resolve()
		assert.Nil(t, res.File)
		assert.Equal(t, u, res.URL)
	}
}

func TestMediaResolve_DataURLDecodesToBinary(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	res := MediaFromURL("data:image/png;base64," + payload).Resolve()

	require.NotNil(t, res.File)
	assert.Equal(t, "image/png", res.File.ContentType)
	assert.Equal(t, []byte("png-bytes"), res.File.Data)
	assert.Empty(t, res.URL)
}

func TestMediaResolve_BadDataURLFailsSoft(t *testing.T) {
	// Corrupt base64 must not error out the whole submit; the media field
	// is simply omitted.
	res := MediaFromURL("data:image/png;base64,!!!not-base64!!!").Resolve()
	assert.Nil(t, res.File)
	assert.Empty(t, res.URL)

	// Non-base64 encodings are unsupported and also omitted.
	res = MediaFromURL("data:image/png,rawpayload").Resolve()
	assert.Nil(t, res.File)
	assert.Empty(t, res.URL)
}

func TestMediaResolve_RelativeOrEmptyOmitted(t *testing.T) {
	assert.Equal(t, MediaResolution{}, MediaFromURL("/uploads/profile_images/a.png").Resolve())
	assert.Equal(t, MediaResolution{}, NoMedia().Resolve())
}

func TestMediaReference_IsEmpty(t *testing.T) {
	assert.True(t, NoMedia().IsEmpty())
	assert.True(t, MediaFromURL("  ").IsEmpty())
	assert.False(t, MediaFromURL("https://x.io/a.png").IsEmpty())
	assert.False(t, MediaFromFile("a", "image/png", nil).IsEmpty())
}

// setMedia must clear both slots before setting one, so a payload can
// never carry a file and a URL at the same time.
func TestPayloadSetMedia_Exclusive(t *testing.T) {
	p := &VenturePayload{}

	url := "https://cdn.example.com/a.png"
	p.setMedia(MediaResolution{URL: url})
	require.NotNil(t, p.LogoURL)
	assert.Equal(t, url, *p.LogoURL)
	assert.Nil(t, p.LogoFile)

	p.setMedia(MediaResolution{File: &MediaFile{Name: "a.png"}})
	assert.Nil(t, p.LogoURL)
	require.NotNil(t, p.LogoFile)

	p.setMedia(MediaResolution{})
	assert.Nil(t, p.LogoURL)
	assert.Nil(t, p.LogoFile)
}
