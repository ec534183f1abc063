// pkg/registry/registry.go
package registry

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
)

const (
	EndpointRegister            = "auth.register"
	EndpointLogin               = "auth.login"
	EndpointListApplications    = "applications.list"
	EndpointSubmitApplication   = "applications.submit"
	EndpointGetApplication      = "applications.get"
	EndpointAdminList           = "admin.applications.list"
	EndpointAdminGetApplication = "admin.applications.get"
	EndpointRunKYC              = "workflow.kyc.run"
	EndpointRunCredit           = "workflow.credit.run"
	EndpointRunEligibility      = "workflow.eligibility.run"
)

//go:embed endpoints.json
var defaultRegistry []byte

var (
	defaultOnce sync.Once
	defaultReg  *EndpointRegistry
	defaultErr  error
)

func LoadRegistry(path string) (*EndpointRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*EndpointRegistry, error) {
	var reg EndpointRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, err
	}
	if err := reg.validate(); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Default returns the catalogue compiled into the binary.
func Default() (*EndpointRegistry, error) {
	defaultOnce.Do(func() {
		defaultReg, defaultErr = Parse(defaultRegistry)
	})
	return defaultReg, defaultErr
}

// MustDefault is Default for package initialisation.
func MustDefault() *EndpointRegistry {
	reg, err := Default()
	if err != nil {
		panic(fmt.Sprintf("registry: embedded catalogue is invalid: %v", err))
	}
	return reg
}

func (r *EndpointRegistry) Lookup(id string) (Endpoint, bool) {
	for _, ep := range r.Endpoints {
		if ep.ID == id {
			return ep, true
		}
	}
	return Endpoint{}, false
}

func (r *EndpointRegistry) validate() error {
	seen := make(map[string]bool, len(r.Endpoints))
	for _, ep := range r.Endpoints {
		if ep.ID == "" || ep.Method == "" || !strings.HasPrefix(ep.Path, "/") {
			return fmt.Errorf("endpoint %q: id, method and absolute path are required", ep.ID)
		}
		if seen[ep.ID] {
			return fmt.Errorf("endpoint %q registered twice", ep.ID)
		}
		seen[ep.ID] = true
	}
	return nil
}

// Expand substitutes {name} placeholders in the endpoint path.
func (ep Endpoint) Expand(params map[string]string) (string, error) {
	path := ep.Path
	for k, v := range params {
		path = strings.ReplaceAll(path, "{"+k+"}", v)
	}
	if strings.ContainsAny(path, "{}") {
		return "", fmt.Errorf("endpoint %s: unresolved placeholder in %s", ep.ID, path)
	}
	return path, nil
}
