package site

import "time"

// InfoResponse is the GET /site-info body
type InfoResponse struct {
	SiteName         string    `json:"siteName"`
	Slogan           string    `json:"slogan"`
	CurrentTimestamp time.Time `json:"currentTimestamp"`
}
