package download

import (
	"net/http"
	"time"
)

const (
	maxDownloadBytes = 50 * 1024 * 1024
	fetchTimeout     = 30 * time.Second

	userAgent = "GhibliArt-Image-Downloader/1.0"
)

// shared client for proxied fetches; the timeout bounds the whole
// request including the body read
var downloadHTTPClient = &http.Client{
	Timeout: fetchTimeout,
}

// Config carries the hostnames images may be fetched from. The public
// storage host comes from configuration; the provider hosts are fixed.
type Config struct {
	AllowedHosts []string
}
