// pkg/registry/schema.go
package registry

type EndpointRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Endpoints   []Endpoint `json:"endpoints"`
}

// Endpoint describes one loan service route the client calls.
type Endpoint struct {
	ID          string `json:"id"`
	Method      string `json:"method"`
	Path        string `json:"path"`
	Description string `json:"description"`
	// Auth is true when the route needs the bearer token.
	Auth bool `json:"auth"`
	// Admin routes are rejected by the service for customer tokens.
	Admin bool `json:"admin,omitempty"`
	// ResponseSchema is the JSON schema a 2xx body must satisfy. Nil means the
	// body is ignored.
	ResponseSchema map[string]interface{} `json:"responseSchema,omitempty"`
	Tags           []string               `json:"tags,omitempty"`
}
