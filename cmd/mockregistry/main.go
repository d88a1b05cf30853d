// Command mockregistry runs a standalone mock of the Manage and SAB HTTP
// APIs for manual testing, serving provider and role fixtures from YAML.
// Usage: go run ./cmd/mockregistry -providers providers.yaml -roles roles.yaml
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
)

type fixtures struct {
	providers []domain.Provider
	subjects  map[string]domain.RegistryRoles
}

func main() {
	port := flag.Int("port", 9090, "Port to listen on")
	providersPath := flag.String("providers", "providers.yaml", "Provider fixtures (YAML)")
	rolesPath := flag.String("roles", "", "Role fixtures (YAML), optional")
	flag.Parse()

	f, err := loadFixtures(*providersPath, *rolesPath)
	if err != nil {
		log.Fatalf("Failed to load fixtures: %v", err)
	}
	log.Printf("Loaded %d providers and %d subjects", len(f.providers), len(f.subjects))

	mux := http.NewServeMux()
	mux.HandleFunc("/manage/api/internal/search/saml20_idp", f.handleManageSearch)
	mux.HandleFunc("/api/profile", f.handleSabProfile)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Mock registry listening on %s", addr)
	log.Printf("  Manage search: POST http://localhost%s/manage/api/internal/search/saml20_idp", addr)
	log.Printf("  SAB profile:   GET  http://localhost%s/api/profile?uid=...", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}

func loadFixtures(providersPath, rolesPath string) (*fixtures, error) {
	f := &fixtures{subjects: make(map[string]domain.RegistryRoles)}

	data, err := os.ReadFile(providersPath)
	if err != nil {
		return nil, fmt.Errorf("read providers: %w", err)
	}
	var pf struct {
		Providers []domain.Provider `yaml:"providers"`
	}
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("parse providers: %w", err)
	}
	f.providers = pf.Providers

	if rolesPath != "" {
		data, err := os.ReadFile(rolesPath)
		if err != nil {
			return nil, fmt.Errorf("read roles: %w", err)
		}
		var rf struct {
			Subjects map[string]domain.RegistryRoles `yaml:"subjects"`
		}
		if err := yaml.Unmarshal(data, &rf); err != nil {
			return nil, fmt.Errorf("parse roles: %w", err)
		}
		if rf.Subjects != nil {
			f.subjects = rf.Subjects
		}
	}
	return f, nil
}

// handleManageSearch mimics the Manage internal search endpoint: a JSON
// query filtered on entityid or coin:institution_id.
func (f *fixtures) handleManageSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var query map[string]any
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		http.Error(w, "invalid query", http.StatusBadRequest)
		return
	}

	entityID, _ := query["entityid"].(string)
	institutionID, _ := query["metaDataFields.coin:institution_id"].(string)

	var results []map[string]any
	for _, p := range f.providers {
		if entityID != "" && p.EntityID != entityID {
			continue
		}
		if institutionID != "" && p.InstitutionID != institutionID {
			continue
		}
		results = append(results, map[string]any{
			"data": map[string]any{
				"entityid": p.EntityID,
				"state":    string(p.State),
				"metaDataFields": map[string]any{
					"coin:institution_id": p.InstitutionID,
					"name:en":             p.Name,
				},
			},
		})
	}
	if results == nil {
		results = []map[string]any{}
	}

	log.Printf("manage search entityid=%q institution=%q -> %d results", entityID, institutionID, len(results))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

// handleSabProfile mimics the SAB profile endpoint keyed by uid.
func (f *fixtures) handleSabProfile(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uid := r.URL.Query().Get("uid")
	roles, ok := f.subjects[uid]
	if !ok {
		log.Printf("sab profile uid=%q -> not found", uid)
		http.NotFound(w, r)
		return
	}

	authorisations := make([]map[string]string, 0, len(roles.Entitlements))
	for _, e := range roles.Entitlements {
		authorisations = append(authorisations, map[string]string{"role": e})
	}

	log.Printf("sab profile uid=%q -> %d authorisations", uid, len(authorisations))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"organisation":   map[string]string{"schac_home": roles.InstitutionID},
		"authorisations": authorisations,
	})
}
