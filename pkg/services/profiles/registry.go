package profiles

import (
	"context"
	"fmt"

	"github.com/gws-tools/scubacfg/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Registry reads named service-account profiles from an INI file, typically
// ~/.scubacfg/profiles. Each section maps to one tenant:
//
//	[acme]
//	credentials = /path/to/service-account.json
//	customer_id = C0123abcd
//	subject_email = admin@acme.example
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetAuth(ctx context.Context, profile string) (domain.AuthSettings, error)
}

type iniRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &iniRegistry{cfg: cfg}, nil
}

func (r *iniRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range r.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (r *iniRegistry) GetAuth(_ context.Context, profile string) (domain.AuthSettings, error) {
	section, err := r.cfg.GetSection(profile)
	if err != nil {
		return domain.AuthSettings{}, fmt.Errorf("profile %s not found", profile)
	}

	return domain.AuthSettings{
		Mode:            domain.AuthServiceAccount,
		CredentialsFile: section.Key("credentials").String(),
		CustomerID:      section.Key("customer_id").String(),
		SubjectEmail:    section.Key("subject_email").String(),
	}, nil
}
