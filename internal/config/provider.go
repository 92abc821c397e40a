package config

import (
	"fmt"

	"github.com/spf13/pflag"
)

// Provider names the language model service the assistant talks to.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

var (
	_            pflag.Value = (*Provider)(nil)
	AllProviders             = []Provider{ProviderGemini, ProviderOpenAI}
)

func (p *Provider) Set(val string) error {
	for _, provider := range AllProviders {
		if val == string(provider) {
			*p = provider
			return nil
		}
	}
	return fmt.Errorf("invalid provider: %s", val)
}

func (p Provider) String() string {
	return string(p)
}

func (p *Provider) Type() string {
	return "provider"
}

// CredentialEnv is the environment variable holding the provider's API key.
func (p Provider) CredentialEnv() string {
	switch p {
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	default:
		return "GEMINI_API_KEY"
	}
}
