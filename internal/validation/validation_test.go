package validation

import (
	"strings"
	"testing"

	"github.com/ghibliart/server/internal/apierrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGenerate_EmptyPrompt(t *testing.T) {
	_, err := ValidateGenerate(GenerateRequest{Prompt: ""})

	require.NotNil(t, err)
	assert.Equal(t, apierrors.CodeValidationError, err.Code)
}

func TestValidateGenerate_PromptAtMaxLength(t *testing.T) {
	req, err := ValidateGenerate(GenerateRequest{Prompt: strings.Repeat("a", 500)})

	require.Nil(t, err)
	assert.Len(t, req.Prompt, 500)
}

func TestValidateGenerate_PromptTooLong(t *testing.T) {
	_, err := ValidateGenerate(GenerateRequest{Prompt: strings.Repeat("a", 501)})

	require.NotNil(t, err)
	assert.Equal(t, apierrors.CodeValidationError, err.Code)
}

func TestValidateGenerate_PromptLengthCountsRunes(t *testing.T) {
	// 500 CJK runes are ~1500 bytes but still within the character bound
	req, err := ValidateGenerate(GenerateRequest{Prompt: strings.Repeat("森", 500)})

	require.Nil(t, err)
	assert.Equal(t, 500, len([]rune(req.Prompt)))

	_, err = ValidateGenerate(GenerateRequest{Prompt: strings.Repeat("森", 501)})
	assert.NotNil(t, err)
}

func TestValidateGenerate_UnsafeContent(t *testing.T) {
	unsafe := []string{
		"a nude figure in a meadow",
		"EXPLICIT content please",
		"scene of violence in the rain",
		"racist caricature",
	}

	for _, prompt := range unsafe {
		_, err := ValidateGenerate(GenerateRequest{Prompt: prompt})
		assert.NotNil(t, err, "prompt %q should be rejected", prompt)
	}
}

func TestValidateGenerate_SafeSubstringsPass(t *testing.T) {
	// denylist matches whole words only
	safe := []string{
		"a sexton ringing the church bell",
		"killdeer birds by the lake",
	}

	for _, prompt := range safe {
		_, err := ValidateGenerate(GenerateRequest{Prompt: prompt})
		assert.Nil(t, err, "prompt %q should pass", prompt)
	}
}

func TestValidateGenerate_Defaults(t *testing.T) {
	req, err := ValidateGenerate(GenerateRequest{Prompt: "a quiet meadow"})

	require.Nil(t, err)
	assert.Equal(t, "1:1", req.AspectRatio)
	assert.Equal(t, "standard", req.Quality)
}

func TestValidateGenerate_AspectRatios(t *testing.T) {
	for _, ratio := range []string{"1:1", "4:3", "3:4", "16:9", "9:16"} {
		req, err := ValidateGenerate(GenerateRequest{Prompt: "a quiet meadow", AspectRatio: ratio})
		require.Nil(t, err, "ratio %q should be valid", ratio)
		assert.Equal(t, ratio, req.AspectRatio)
	}

	for _, ratio := range []string{"2:1", "16:10", "square", "1:1 "} {
		_, err := ValidateGenerate(GenerateRequest{Prompt: "a quiet meadow", AspectRatio: ratio})
		assert.NotNil(t, err, "ratio %q should be rejected", ratio)
	}
}

func TestValidateGenerate_Quality(t *testing.T) {
	_, err := ValidateGenerate(GenerateRequest{Prompt: "a quiet meadow", Quality: "hd"})
	assert.Nil(t, err)

	_, err = ValidateGenerate(GenerateRequest{Prompt: "a quiet meadow", Quality: "ultra"})
	assert.NotNil(t, err)
}

func TestSizeForAspectRatio(t *testing.T) {
	cases := map[string]string{
		"1:1":     "1024x1024",
		"3:4":     "1024x1536",
		"4:3":     "1536x1024",
		"16:9":    "1536x1024",
		"9:16":    "1024x1536",
		"unknown": "1024x1024",
	}

	for ratio, want := range cases {
		assert.Equal(t, want, SizeForAspectRatio(ratio))
	}
}

func TestValidateDownload(t *testing.T) {
	err := ValidateDownload(DownloadRequest{ImageURL: "https://example.com/x.jpg", Filename: "my-image_1.jpg"})
	assert.Nil(t, err)

	err = ValidateDownload(DownloadRequest{ImageURL: "not a url", Filename: "x.jpg"})
	assert.NotNil(t, err)

	err = ValidateDownload(DownloadRequest{ImageURL: "https://example.com/x.jpg", Filename: ""})
	assert.NotNil(t, err)

	err = ValidateDownload(DownloadRequest{ImageURL: "https://example.com/x.jpg", Filename: strings.Repeat("a", 101)})
	assert.NotNil(t, err)

	err = ValidateDownload(DownloadRequest{ImageURL: "https://example.com/x.jpg", Filename: "../etc/passwd"})
	assert.NotNil(t, err)
}
