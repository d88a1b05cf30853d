package manage

import (
	"context"
	"encoding/xml"
	"fmt"
	"os"
	"sync"

	"github.com/crewjam/saml"
	"go.uber.org/zap"

	"github.com/teunfransen/OpenConext-dashboard/internal/core/domain"
	"github.com/teunfransen/OpenConext-dashboard/internal/core/ports"
)

// SURFconext publishes institution affiliation and lifecycle state as entity
// attributes on the federation metadata feed.
const (
	coinInstitutionIDAttr = "urn:mace:surfnet.nl:surfnet.nl:coin:institution_id"
	coinStateAttr         = "urn:mace:surfnet.nl:surfnet.nl:coin:state"
)

// MetadataProviderDirectory builds provider records from a SAML metadata
// feed instead of the Manage search API. Useful when only the signed
// federation aggregate is available.
type MetadataProviderDirectory struct {
	path              string
	signatureVerifier ports.SignatureVerifier
	logger            *zap.Logger

	mu        sync.RWMutex
	providers []domain.Provider
}

// NewMetadataProviderDirectory creates a directory backed by a local
// metadata file. The file is not read until Refresh is called.
func NewMetadataProviderDirectory(path string, opts ...Option) *MetadataProviderDirectory {
	o := applyOptions(opts)
	return &MetadataProviderDirectory{
		path:              path,
		signatureVerifier: o.signatureVerifier,
		logger:            o.logger,
	}
}

// rawEntityAttributes is the mdattr:EntityAttributes extension slice crewjam
// does not expose.
type rawEntityAttributes struct {
	Attributes []struct {
		Name   string   `xml:"Name,attr"`
		Values []string `xml:"urn:oasis:names:tc:SAML:2.0:assertion AttributeValue"`
	} `xml:"urn:oasis:names:tc:SAML:2.0:assertion Attribute"`
}

type rawEntityDescriptor struct {
	EntityID   string `xml:"entityID,attr"`
	Extensions struct {
		EntityAttributes rawEntityAttributes `xml:"urn:oasis:names:tc:SAML:metadata:attribute EntityAttributes"`
	} `xml:"urn:oasis:names:tc:SAML:2.0:metadata Extensions"`
	Organization struct {
		DisplayNames []string `xml:"urn:oasis:names:tc:SAML:2.0:metadata OrganizationDisplayName"`
	} `xml:"urn:oasis:names:tc:SAML:2.0:metadata Organization"`
}

type rawEntitiesDescriptor struct {
	EntityDescriptors   []rawEntityDescriptor   `xml:"urn:oasis:names:tc:SAML:2.0:metadata EntityDescriptor"`
	EntitiesDescriptors []rawEntitiesDescriptor `xml:"urn:oasis:names:tc:SAML:2.0:metadata EntitiesDescriptor"`
}

// Refresh reloads providers from the metadata file, verifying the feed
// signature when a verifier is configured.
func (d *MetadataProviderDirectory) Refresh(ctx context.Context) error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return fmt.Errorf("read metadata file: %w", err)
	}

	if d.signatureVerifier != nil {
		data, err = d.signatureVerifier.Verify(data)
		if err != nil {
			return fmt.Errorf("verify metadata signature: %w", err)
		}
	}

	providers, err := ParseProviders(data)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.providers = providers
	d.mu.Unlock()

	if d.logger != nil {
		d.logger.Info("metadata provider directory reloaded",
			zap.String("path", d.path),
			zap.Int("providers", len(providers)))
	}
	return nil
}

// ParseProviders extracts provider records from SAML metadata XML. Both a
// single EntityDescriptor and an aggregate EntitiesDescriptor are accepted;
// only entities with an IdP role are kept.
func ParseProviders(data []byte) ([]domain.Provider, error) {
	// The coin attributes live in an extension crewjam/saml does not model,
	// so they are collected in a separate pass over the raw XML.
	coinAttrs := parseCoinAttributes(data)

	var entities saml.EntitiesDescriptor
	if err := xml.Unmarshal(data, &entities); err == nil && len(entities.EntityDescriptors) > 0 {
		providers := make([]domain.Provider, 0, len(entities.EntityDescriptors))
		for i := range entities.EntityDescriptors {
			if p, ok := toProvider(&entities.EntityDescriptors[i], coinAttrs); ok {
				providers = append(providers, p)
			}
		}
		return providers, nil
	}

	var entity saml.EntityDescriptor
	if err := xml.Unmarshal(data, &entity); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	if p, ok := toProvider(&entity, coinAttrs); ok {
		return []domain.Provider{p}, nil
	}
	return nil, nil
}

type coinAttributes struct {
	institutionID string
	state         string
	name          string
}

func parseCoinAttributes(data []byte) map[string]coinAttributes {
	result := make(map[string]coinAttributes)

	var aggregate rawEntitiesDescriptor
	if err := xml.Unmarshal(data, &aggregate); err == nil && len(aggregate.EntityDescriptors)+len(aggregate.EntitiesDescriptors) > 0 {
		collectCoinAttributes(&aggregate, result)
		return result
	}

	var single rawEntityDescriptor
	if err := xml.Unmarshal(data, &single); err == nil && single.EntityID != "" {
		result[single.EntityID] = extractCoinAttributes(&single)
	}
	return result
}

func collectCoinAttributes(entities *rawEntitiesDescriptor, result map[string]coinAttributes) {
	for i := range entities.EntityDescriptors {
		ed := &entities.EntityDescriptors[i]
		result[ed.EntityID] = extractCoinAttributes(ed)
	}
	for i := range entities.EntitiesDescriptors {
		collectCoinAttributes(&entities.EntitiesDescriptors[i], result)
	}
}

func extractCoinAttributes(ed *rawEntityDescriptor) coinAttributes {
	var coin coinAttributes
	if len(ed.Organization.DisplayNames) > 0 {
		coin.name = ed.Organization.DisplayNames[0]
	}
	for _, attr := range ed.Extensions.EntityAttributes.Attributes {
		if len(attr.Values) == 0 {
			continue
		}
		switch attr.Name {
		case coinInstitutionIDAttr:
			coin.institutionID = attr.Values[0]
		case coinStateAttr:
			coin.state = attr.Values[0]
		}
	}
	return coin
}

func toProvider(ed *saml.EntityDescriptor, coinAttrs map[string]coinAttributes) (domain.Provider, bool) {
	if len(ed.IDPSSODescriptors) == 0 {
		return domain.Provider{}, false
	}

	coin := coinAttrs[ed.EntityID]
	return domain.Provider{
		EntityID:      ed.EntityID,
		InstitutionID: coin.institutionID,
		Name:          coin.name,
		State:         domain.ProviderState(coin.state),
	}, true
}

// LookupByEntityID returns the provider with the given entity id.
func (d *MetadataProviderDirectory) LookupByEntityID(ctx context.Context, entityID string) (*domain.Provider, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for i := range d.providers {
		if d.providers[i].EntityID == entityID {
			p := d.providers[i]
			return &p, nil
		}
	}
	return nil, domain.ErrProviderNotFound
}

// ListByInstitutionID returns all providers of the given institution.
func (d *MetadataProviderDirectory) ListByInstitutionID(ctx context.Context, institutionID string) ([]domain.Provider, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var result []domain.Provider
	if institutionID == "" {
		return result, nil
	}
	for _, p := range d.providers {
		if p.InstitutionID == institutionID {
			result = append(result, p)
		}
	}
	return result, nil
}

// Ensure MetadataProviderDirectory implements ports.ProviderDirectory
var _ ports.ProviderDirectory = (*MetadataProviderDirectory)(nil)
