package model

// Discussion is a code-host issue opened from a help thread.
type Discussion struct {
	Project string `json:"project"`
	IID     int64  `json:"iid"`
	Title   string `json:"title"`
	URL     string `json:"url"`
}
