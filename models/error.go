package models

// ErrorResponse is the error envelope returned by every endpoint. Missing is
// only populated for field-validation failures, Detail for unexpected ones.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Detail  string   `json:"detail,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// HealthCheckResponse returns the health check response struct
type HealthCheckResponse struct {
	Alive bool `json:"alive"`
}
