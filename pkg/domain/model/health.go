package model

// HealthStatus is the payload served by the control API health endpoint
type HealthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Healthy builds a healthy status report for the given service
func Healthy(service, version string) *HealthStatus {
	return &HealthStatus{
		Status:  "healthy",
		Service: service,
		Version: version,
	}
}
