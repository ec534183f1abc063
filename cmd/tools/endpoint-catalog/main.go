// cmd/tools/endpoint-catalog/main.go
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"loanos-client/internal/common/validation"
	"loanos-client/pkg/registry"
)

var catalogPath string

// required lists the endpoints the client cannot run without.
var required = []string{
	registry.EndpointRegister,
	registry.EndpointLogin,
	registry.EndpointListApplications,
	registry.EndpointSubmitApplication,
	registry.EndpointGetApplication,
	registry.EndpointAdminList,
	registry.EndpointAdminGetApplication,
	registry.EndpointRunKYC,
	registry.EndpointRunCredit,
	registry.EndpointRunEligibility,
}

func main() {
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	updateCmd := flag.NewFlagSet("update", flag.ExitOnError)
	checkCmd := flag.NewFlagSet("check", flag.ExitOnError)

	for _, fs := range []*flag.FlagSet{listCmd, validateCmd, updateCmd, checkCmd} {
		fs.StringVar(&catalogPath, "path", "", "Path to an endpoint catalogue (default: the built-in one)")
	}

	idUpdate := updateCmd.String("id", "", "Endpoint ID to update")
	field := updateCmd.String("field", "", "Field to update (method, path, description, auth, admin)")
	value := updateCmd.String("value", "", "New value for the field")

	idCheck := checkCmd.String("id", "", "Endpoint ID whose response schema is used")
	docPath := checkCmd.String("doc", "", "JSON document to check")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "list":
		listCmd.Parse(os.Args[2:])
		if err := listEndpoints(); err != nil {
			fmt.Printf("Error listing endpoints: %v\n", err)
			os.Exit(1)
		}

	case "validate":
		validateCmd.Parse(os.Args[2:])
		if err := validateCatalog(); err != nil {
			fmt.Printf("Catalogue validation failed: %v\n", err)
			os.Exit(1)
		}

	case "update":
		updateCmd.Parse(os.Args[2:])
		if catalogPath == "" || *idUpdate == "" || *field == "" || *value == "" {
			fmt.Println("Error: path, id, field, and value are required for update.")
			updateCmd.Usage()
			os.Exit(1)
		}
		if err := updateEndpoint(*idUpdate, *field, *value); err != nil {
			fmt.Printf("Error updating endpoint: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Updated endpoint %s, field %s to %s\n", *idUpdate, *field, *value)

	case "check":
		checkCmd.Parse(os.Args[2:])
		if *idCheck == "" || *docPath == "" {
			fmt.Println("Error: id and doc are required for check.")
			checkCmd.Usage()
			os.Exit(1)
		}
		if err := checkDocument(*idCheck, *docPath); err != nil {
			fmt.Printf("Check failed: %v\n", err)
			os.Exit(1)
		}

	case "help":
		fallthrough
	default:
		help()
	}
}

func loadCatalog() (*registry.EndpointRegistry, error) {
	if catalogPath == "" {
		return registry.Default()
	}
	reg, err := registry.LoadRegistry(catalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalogue: %w", err)
	}
	return reg, nil
}

func listEndpoints() error {
	reg, err := loadCatalog()
	if err != nil {
		return err
	}

	endpoints := append([]registry.Endpoint(nil), reg.Endpoints...)
	sort.Slice(endpoints, func(i, j int) bool { return endpoints[i].ID < endpoints[j].ID })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMETHOD\tPATH\tACCESS")
	for _, ep := range endpoints {
		access := "public"
		switch {
		case ep.Admin:
			access = "admin"
		case ep.Auth:
			access = "user"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", ep.ID, ep.Method, ep.Path, access)
	}
	return w.Flush()
}

// validateCatalog goes beyond the structural checks Parse already made: every
// endpoint the client calls must be present and every response schema must
// compile.
func validateCatalog() error {
	reg, err := loadCatalog()
	if err != nil {
		return err
	}

	var missing []string
	for _, id := range required {
		if _, ok := reg.Lookup(id); !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing endpoints: %s", strings.Join(missing, ", "))
	}

	for _, ep := range reg.Endpoints {
		if ep.Admin && !ep.Auth {
			return fmt.Errorf("endpoint %s is admin-only but does not require auth", ep.ID)
		}
		if ep.ResponseSchema == nil {
			continue
		}
		if _, err := validation.ValidateDocument([]byte("null"), ep.ResponseSchema); err != nil {
			return fmt.Errorf("endpoint %s: response schema does not compile: %w", ep.ID, err)
		}
	}

	fmt.Printf("Catalogue validation passed. Found %d endpoints.\n", len(reg.Endpoints))
	return nil
}

func updateEndpoint(id, field, value string) error {
	reg, err := loadCatalog()
	if err != nil {
		return err
	}

	found := false
	for i := range reg.Endpoints {
		if reg.Endpoints[i].ID != id {
			continue
		}
		found = true
		ep := &reg.Endpoints[i]
		switch field {
		case "method":
			ep.Method = strings.ToUpper(value)
		case "path":
			if !strings.HasPrefix(value, "/") {
				return fmt.Errorf("path must be absolute: %s", value)
			}
			ep.Path = value
		case "description":
			ep.Description = value
		case "auth":
			ep.Auth = value == "true"
		case "admin":
			ep.Admin = value == "true"
		default:
			return fmt.Errorf("unknown field: %s", field)
		}
		break
	}

	if !found {
		return fmt.Errorf("endpoint with ID %s not found", id)
	}

	reg.LastUpdated = time.Now().Format("2006-01-02")
	return saveCatalog(reg, catalogPath)
}

func checkDocument(id, docPath string) error {
	reg, err := loadCatalog()
	if err != nil {
		return err
	}
	ep, ok := reg.Lookup(id)
	if !ok {
		return fmt.Errorf("endpoint with ID %s not found", id)
	}
	if ep.ResponseSchema == nil {
		fmt.Printf("Endpoint %s ignores its response body.\n", id)
		return nil
	}

	doc, err := os.ReadFile(docPath)
	if err != nil {
		return fmt.Errorf("failed to read document: %w", err)
	}
	result, err := validation.ValidateDocument(doc, ep.ResponseSchema)
	if err != nil {
		return err
	}
	if !result.Valid {
		return fmt.Errorf("document does not match %s: %s", id, strings.Join(result.GetErrorMessages(), "; "))
	}

	fmt.Printf("Document matches the %s response schema.\n", id)
	return nil
}

func saveCatalog(reg *registry.EndpointRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal catalogue: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write catalogue file: %w", err)
	}
	return nil
}

func help() {
	fmt.Println(`
Usage: endpoint-catalog <command> [flags]

Commands:
  list      List the endpoints in the catalogue
  validate  Check that the catalogue covers every endpoint the client calls
  update    Change one field of an endpoint in a catalogue file
  check     Validate a JSON response document against an endpoint's schema
  help      Show this help message

Examples:
  endpoint-catalog list
  endpoint-catalog validate -path configs/endpoints.json
  endpoint-catalog update -path configs/endpoints.json -id auth.login -field path -value /v2/auth/login
  endpoint-catalog check -id applications.list -doc response.json

Use 'endpoint-catalog <command> -h' for more information about a command.
`)
}
