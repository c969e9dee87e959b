package config

import (
	"time"

	"github.com/spf13/viper"

	"github.com/protonstudio/invoice-builder/internal/render"
)

// Config holds the full runtime configuration.
type Config struct {
	Server   ServerConfig
	Branding BrandingConfig
	Draft    DraftConfig
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address      string
	Debug        bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BrandingConfig is the company identity printed on every invoice.
type BrandingConfig struct {
	CompanyName   string
	Tagline       string
	AddressLine   string
	ContactLine   string
	CurrencyLabel string
	LogoPath      string
	FooterLines   []string
}

// DraftConfig configures draft persistence.
type DraftConfig struct {
	Dir           string
	AutosaveDelay time.Duration
}

// Load reads configuration from the environment (prefix INVOICE_) with
// built-in defaults for every key.
func Load() *Config {
	v := viper.New()
	v.SetEnvPrefix("INVOICE")
	v.AutomaticEnv()

	v.SetDefault("SERVER_ADDRESS", ":8080")
	v.SetDefault("SERVER_DEBUG", false)
	v.SetDefault("SERVER_READ_TIMEOUT", "30s")
	v.SetDefault("SERVER_WRITE_TIMEOUT", "2m")
	v.SetDefault("COMPANY_NAME", "Proton Studio")
	v.SetDefault("COMPANY_TAGLINE", "Professional Film & Media Services")
	v.SetDefault("COMPANY_ADDRESS", "1401 Bahria Orchard, Lahore, Punjab 54000")
	v.SetDefault("COMPANY_CONTACT", "Email: info@protonstudio.com | Phone: +92 300 1234567")
	v.SetDefault("CURRENCY_LABEL", "PKR")
	v.SetDefault("LOGO_PATH", "")
	v.SetDefault("FOOTER_LINES", []string{
		"Thank you for choosing Proton Studio!",
		"Professional - Reliable - Creative",
	})
	v.SetDefault("DRAFT_DIR", ".invoice-builder")
	v.SetDefault("AUTOSAVE_DELAY", "2s")

	return &Config{
		Server: ServerConfig{
			Address:      v.GetString("SERVER_ADDRESS"),
			Debug:        v.GetBool("SERVER_DEBUG"),
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
		},
		Branding: BrandingConfig{
			CompanyName:   v.GetString("COMPANY_NAME"),
			Tagline:       v.GetString("COMPANY_TAGLINE"),
			AddressLine:   v.GetString("COMPANY_ADDRESS"),
			ContactLine:   v.GetString("COMPANY_CONTACT"),
			CurrencyLabel: v.GetString("CURRENCY_LABEL"),
			LogoPath:      v.GetString("LOGO_PATH"),
			FooterLines:   v.GetStringSlice("FOOTER_LINES"),
		},
		Draft: DraftConfig{
			Dir:           v.GetString("DRAFT_DIR"),
			AutosaveDelay: v.GetDuration("AUTOSAVE_DELAY"),
		},
	}
}

// RenderBranding converts the config block into the renderer's branding.
func (c *Config) RenderBranding() render.Branding {
	return render.Branding{
		CompanyName:   c.Branding.CompanyName,
		Tagline:       c.Branding.Tagline,
		AddressLine:   c.Branding.AddressLine,
		ContactLine:   c.Branding.ContactLine,
		CurrencyLabel: c.Branding.CurrencyLabel,
		LogoPath:      c.Branding.LogoPath,
		FooterLines:   c.Branding.FooterLines,
	}
}
