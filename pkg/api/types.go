package api

// Response is the envelope for all JSON API responses.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

// FormatRequest asks for the canonical rendering of a case document.
type FormatRequest struct {
	Source string `json:"source"`
	Strict bool   `json:"strict,omitempty"`
}

// FormatResponse carries the canonical text.
type FormatResponse struct {
	Text     string   `json:"text"`
	Records  int      `json:"records"`
	Warnings []string `json:"warnings,omitempty"`
}

// ParseRequest asks for the structured view of a case document.
type ParseRequest struct {
	Source string `json:"source"`
	Strict bool   `json:"strict,omitempty"`
}

// ParamSummary is one decoded parameter.
type ParamSummary struct {
	Label  string   `json:"label"`
	Values []string `json:"values,omitempty"`
}

// RecordSummary is one decoded record.
type RecordSummary struct {
	Label  string         `json:"label"`
	Line   int            `json:"line"`
	Params []ParamSummary `json:"params,omitempty"`
}

// ParseResponse carries the structured view.
type ParseResponse struct {
	Records []RecordSummary `json:"records"`
}

// StatusResponse describes the running service.
type StatusResponse struct {
	Uptime      string `json:"uptime"`
	KnownGroups int    `json:"known_groups"`
}
