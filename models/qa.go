package models

// GenerateRequest is a validated request for question/answer generation
type GenerateRequest struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// QAPair is the element shape the completion model is asked to produce
type QAPair struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// QAResult is the validated model output. Result is the model text exactly
// as returned; Count is the length of the array it contains and may differ
// from the requested count.
type QAResult struct {
	Result string `json:"result"`
	Count  int    `json:"count"`
}
