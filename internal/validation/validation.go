package validation

import (
	"fmt"
	"net/url"
	"regexp"
	"unicode/utf8"

	"github.com/ghibliart/server/internal/apierrors"
)

const maxPromptLength = 500

// fixed denylist of unsafe-content patterns, case-insensitive.
// Known-weak (trivially bypassed); a classifier can replace
// containsUnsafeContent without changing the validation contract.
var unsafePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(nude|naked|sex|porn|explicit)\b`),
	regexp.MustCompile(`(?i)\b(violence|kill|murder|death)\b`),
	regexp.MustCompile(`(?i)\b(hate|racist|discriminat)\b`),
}

var validAspectRatios = map[string]bool{
	"1:1":  true,
	"4:3":  true,
	"3:4":  true,
	"16:9": true,
	"9:16": true,
}

var validQualities = map[string]bool{
	"standard": true,
	"hd":       true,
}

// provider pixel dimensions per aspect ratio
var aspectRatioSizes = map[string]string{
	"1:1":  "1024x1024",
	"3:4":  "1024x1536",
	"4:3":  "1536x1024",
	"16:9": "1536x1024",
	"9:16": "1024x1536",
}

var filenamePattern = regexp.MustCompile(`^[a-zA-Z0-9\-_.]+$`)

// checks and normalizes a generation request, applying defaults for
// aspect ratio (1:1) and quality (standard). Returns a typed validation
// error describing the first violation.
func ValidateGenerate(req GenerateRequest) (*GenerateRequest, *apierrors.Error) {
	if len(req.Prompt) == 0 {
		return nil, apierrors.Validation("prompt cannot be empty")
	}

	// characters, not bytes: multi-byte scripts count per rune
	if utf8.RuneCountInString(req.Prompt) > maxPromptLength {
		return nil, apierrors.Validation(fmt.Sprintf("prompt must be less than %d characters", maxPromptLength))
	}

	if containsUnsafeContent(req.Prompt) {
		return nil, apierrors.Validation("content contains inappropriate material")
	}

	normalized := req

	if normalized.AspectRatio == "" {
		normalized.AspectRatio = "1:1"
	} else if !validAspectRatios[normalized.AspectRatio] {
		return nil, apierrors.Validation("invalid aspect ratio")
	}

	if normalized.Quality == "" {
		normalized.Quality = "standard"
	} else if !validQualities[normalized.Quality] {
		return nil, apierrors.Validation("invalid quality")
	}

	return &normalized, nil
}

// checks a download proxy request
func ValidateDownload(req DownloadRequest) *apierrors.Error {
	parsed, err := url.Parse(req.ImageURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return apierrors.Validation("invalid image URL")
	}

	if len(req.Filename) == 0 {
		return apierrors.Validation("filename cannot be empty")
	}

	if len(req.Filename) > 100 {
		return apierrors.Validation("filename too long")
	}

	if !filenamePattern.MatchString(req.Filename) {
		return apierrors.Validation("invalid filename format")
	}

	return nil
}

// maps an aspect ratio to the provider's fixed pixel dimensions
func SizeForAspectRatio(aspectRatio string) string {
	if size, ok := aspectRatioSizes[aspectRatio]; ok {
		return size
	}

	return "1024x1024"
}

func containsUnsafeContent(text string) bool {
	for _, pattern := range unsafePatterns {
		if pattern.MatchString(text) {
			return true
		}
	}

	return false
}
