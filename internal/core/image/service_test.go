package image

import (
	"encoding/base64"
	"os"
	"strings"
	"testing"

	"pantry-assistant/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	os.Exit(m.Run())
}

// 最小可辨識的檔頭
var (
	jpegHeader = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, make([]byte, 16)...)
	pngHeader  = append([]byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}, make([]byte, 16)...)
	heicHeader = append([]byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'h', 'e', 'i', 'c'}, make([]byte, 16)...)
	gifHeader  = append([]byte("GIF89a"), make([]byte, 16)...)
)

func TestSniffMime(t *testing.T) {
	cases := []struct {
		name string
		raw  []byte
		mime string
		ok   bool
	}{
		{"jpeg", jpegHeader, "image/jpeg", true},
		{"png", pngHeader, "image/png", true},
		{"heic", heicHeader, "image/heic", true},
		{"gif rejected", gifHeader, "", false},
		{"too short", []byte{0xFF, 0xD8}, "", false},
	}

	for _, tc := range cases {
		mime, ok := sniffMime(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.name)
		assert.Equal(t, tc.mime, mime, tc.name)
	}
}

func TestProcessImageBareBase64(t *testing.T) {
	svc := NewService(1 << 20)

	encoded := base64.StdEncoding.EncodeToString(jpegHeader)
	dataURI, err := svc.ProcessImage(encoded)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURI, "data:image/jpeg;base64,"))
}

func TestProcessImageDataURI(t *testing.T) {
	svc := NewService(1 << 20)

	encoded := base64.StdEncoding.EncodeToString(pngHeader)
	dataURI, err := svc.ProcessImage("data:image/png;base64," + encoded)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dataURI, "data:image/png;base64,"))
}

func TestProcessImageRejectsDisallowedFormat(t *testing.T) {
	svc := NewService(1 << 20)

	encoded := base64.StdEncoding.EncodeToString(gifHeader)
	_, err := svc.ProcessImage(encoded)
	require.Error(t, err)

	var customErr *common.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, "INVALID_IMAGE_TYPE", customErr.Code)
}

func TestProcessImageRejectsOversize(t *testing.T) {
	svc := NewService(8)

	encoded := base64.StdEncoding.EncodeToString(jpegHeader)
	_, err := svc.ProcessImage(encoded)
	require.Error(t, err)

	var customErr *common.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, "INVALID_IMAGE_SIZE", customErr.Code)
}

func TestProcessImageRejectsInvalidBase64(t *testing.T) {
	svc := NewService(1 << 20)

	_, err := svc.ProcessImage("這不是base64!!!")
	assert.Error(t, err)
}

func TestProcessImageRejectsEmpty(t *testing.T) {
	svc := NewService(1 << 20)

	_, err := svc.ProcessImage("")
	assert.Error(t, err)
}
