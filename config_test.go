//go:build unit

package conextaccess

import "testing"

func TestConfig_SetDefaults(t *testing.T) {
	var c Config
	c.SetDefaults()

	if c.CacheTTL != "1m" {
		t.Errorf("CacheTTL = %q, want 1m", c.CacheTTL)
	}
	if c.TokenTTL != "5m" {
		t.Errorf("TokenTTL = %q, want 5m", c.TokenTTL)
	}
	if c.AdminGroup != "dashboard.admin" {
		t.Errorf("AdminGroup = %q", c.AdminGroup)
	}
	if c.ViewerGroup != "dashboard.viewer" {
		t.Errorf("ViewerGroup = %q", c.ViewerGroup)
	}
	if len(c.SuperUserGroups) != 1 || c.SuperUserGroups[0] != "dashboard.super.user" {
		t.Errorf("SuperUserGroups = %v", c.SuperUserGroups)
	}
	if c.AdminEntitlement != "urn:mace:surfnet.nl:surfnet.nl:sab:SURFconextverantwoordelijke" {
		t.Errorf("AdminEntitlement = %q", c.AdminEntitlement)
	}
}

func TestConfig_SetDefaults_KeepsExplicitValues(t *testing.T) {
	c := Config{
		CacheTTL:   "30s",
		AdminGroup: "my.admins",
	}
	c.SetDefaults()

	if c.CacheTTL != "30s" {
		t.Errorf("CacheTTL = %q, want 30s", c.CacheTTL)
	}
	if c.AdminGroup != "my.admins" {
		t.Errorf("AdminGroup = %q, want my.admins", c.AdminGroup)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:    "no directory source",
			config:  Config{},
			wantErr: true,
		},
		{
			name:   "manage url only",
			config: Config{ManageURL: "https://manage.example.org"},
		},
		{
			name:   "providers file only",
			config: Config{ProvidersFile: "providers.yaml"},
		},
		{
			name:    "two directory sources",
			config:  Config{ManageURL: "https://manage.example.org", ProvidersFile: "providers.yaml"},
			wantErr: true,
		},
		{
			name:    "both registry sources",
			config:  Config{ManageURL: "https://manage.example.org", SabURL: "https://sab.example.org", RolesFile: "roles.yaml"},
			wantErr: true,
		},
		{
			name:    "signature verification without cert",
			config:  Config{MetadataFile: "metadata.xml", VerifyMetadataSignature: true},
			wantErr: true,
		},
		{
			name:    "signature verification without metadata file",
			config:  Config{ManageURL: "https://manage.example.org", VerifyMetadataSignature: true, MetadataSigningCert: "cert.pem"},
			wantErr: true,
		},
		{
			name:   "signature verification complete",
			config: Config{MetadataFile: "metadata.xml", VerifyMetadataSignature: true, MetadataSigningCert: "cert.pem"},
		},
		{
			name:    "principal header without secret",
			config:  Config{ManageURL: "https://manage.example.org", PrincipalHeader: "X-Conext-Principal"},
			wantErr: true,
		},
		{
			name:   "principal header with secret",
			config: Config{ManageURL: "https://manage.example.org", PrincipalHeader: "X-Conext-Principal", TokenSecret: "s3cret"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_RolePolicy(t *testing.T) {
	c := Config{
		AdminGroup:          "a",
		ViewerGroup:         "v",
		SuperUserGroups:     []string{"s1", "s2"},
		AdminEntitlement:    "urn:admin",
		ViewerEntitlement:   "urn:viewer",
		RequireProdAccepted: true,
	}

	p := c.RolePolicy()
	if p.AdminGroup != "a" || p.ViewerGroup != "v" {
		t.Errorf("policy groups = %q/%q", p.AdminGroup, p.ViewerGroup)
	}
	if len(p.SuperUserGroups) != 2 {
		t.Errorf("SuperUserGroups = %v", p.SuperUserGroups)
	}
	if !p.RequireProdAccepted {
		t.Error("RequireProdAccepted not carried over")
	}
}
