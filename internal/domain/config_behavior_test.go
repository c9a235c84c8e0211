package domain_test

import (
	"testing"
	"time"

	"github.com/doeshing/axiom-install/internal/domain"
)

// TestConfig_MinimumRuntime tests parsing the configured minimum version
func TestConfig_MinimumRuntime(t *testing.T) {
	tests := []struct {
		name      string
		config    domain.Config
		wantError bool
		want      domain.RuntimeVersion
	}{
		{
			name:   "falls back to default when unset",
			config: domain.Config{},
			want:   domain.RuntimeVersion{Major: 3, Minor: 8},
		},
		{
			name:   "parses configured two-field version",
			config: domain.Config{Runtime: domain.RuntimeSettings{MinimumVersion: "3.10"}},
			want:   domain.RuntimeVersion{Major: 3, Minor: 10},
		},
		{
			name:      "rejects garbage",
			config:    domain.Config{Runtime: domain.RuntimeSettings{MinimumVersion: "latest"}},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.config.MinimumRuntime()

			if tt.wantError {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}

			if err != nil {
				t.Errorf("unexpected error: %v", err)
				return
			}

			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

// TestConfig_AliasName tests alias enablement and defaulting
func TestConfig_AliasName(t *testing.T) {
	tests := []struct {
		name   string
		config domain.Config
		want   string
	}{
		{
			name:   "disabled alias yields empty name",
			config: domain.Config{Shell: domain.ShellSettings{Alias: false, AliasName: "ed"}},
			want:   "",
		},
		{
			name:   "enabled alias without name uses default",
			config: domain.Config{Shell: domain.ShellSettings{Alias: true}},
			want:   domain.DefaultAliasName,
		},
		{
			name:   "enabled alias keeps custom name",
			config: domain.Config{Shell: domain.ShellSettings{Alias: true, AliasName: "axe"}},
			want:   "axe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.config.AliasName(); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

// TestConfig_VerifyTimeout tests timeout defaulting
func TestConfig_VerifyTimeout(t *testing.T) {
	cfg := domain.Config{}
	if got := cfg.VerifyTimeout(); got != domain.DefaultVerifyTimeout {
		t.Errorf("got %v, want default %v", got, domain.DefaultVerifyTimeout)
	}

	cfg.Verify.TimeoutSeconds = 3
	if got := cfg.VerifyTimeout(); got != 3*time.Second {
		t.Errorf("got %v, want 3s", got)
	}
}

// TestConfig_Validate tests validation of settings
func TestConfig_Validate(t *testing.T) {
	valid := domain.Config{
		Payload: domain.PayloadSettings{EntryPoint: "axiom.py", ModulesDir: "editor"},
		Install: domain.InstallSettings{Scope: "auto"},
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	badScope := valid
	badScope.Install.Scope = "global"
	if err := badScope.Validate(); err == nil {
		t.Error("expected error for unknown scope")
	}

	noEntry := valid
	noEntry.Payload.EntryPoint = ""
	if err := noEntry.Validate(); err == nil {
		t.Error("expected error for missing entry point")
	}
}
