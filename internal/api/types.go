package api

// GenerateRequest is the body of POST /v1/generate. Absent fields fall
// back to the decoder defaults; seed defaults to a fresh value per
// request so repeated identical requests differ unless pinned.
type GenerateRequest struct {
	BatchSize   int            `json:"batch_size,omitempty"`
	Temperature float64        `json:"temperature,omitempty"`
	FilterThres *float64       `json:"filter_thres,omitempty"`
	Seed        *int64         `json:"seed,omitempty"`
	Args        map[string]any `json:"args,omitempty"`
}

// GenerateResponse carries the committed sequences back to the client.
type GenerateResponse struct {
	ID        string  `json:"id"`
	Object    string  `json:"object"`
	Created   int64   `json:"created"`
	Seed      int64   `json:"seed"`
	Steps     int     `json:"steps"`
	SeqLen    int     `json:"seq_len"`
	Sequences [][]int `json:"sequences"`
}

// ResponseError is the error payload, nested under "error" in the body.
type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
