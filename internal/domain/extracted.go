package domain

// ExtractedEvent is an event read from a photographed note
type ExtractedEvent struct {
	Title      string `json:"title"`
	DayOfWeek  *int   `json:"dayOfWeek,omitempty"`
	Time       string `json:"time,omitempty"`
	Recurrence string `json:"recurrence,omitempty"`
}

// ExtractedData is the result of image analysis
type ExtractedData struct {
	Tasks  []string         `json:"tasks"`
	Events []ExtractedEvent `json:"events"`
}

// SuggestedEvent is one slot proposed by the scheduler model
type SuggestedEvent struct {
	Title     string `json:"title"`
	DayOfWeek int    `json:"dayOfWeek"`
	Time      string `json:"time"`
	Reasoning string `json:"reasoning,omitempty"`
}
