package api

type monitorPayload struct {
	Index      int   `json:"index"`
	X          int   `json:"x"`
	Y          int   `json:"y"`
	Width      int   `json:"width"`
	Height     int   `json:"height"`
	HasFrame   bool  `json:"hasFrame"`
	FrameAgeMs int64 `json:"frameAgeMs,omitempty"`
}

type statusResponse struct {
	Active   bool             `json:"active"`
	Monitors []monitorPayload `json:"monitors"`
}
