package models

// Settings is the single site-wide configuration record. Exactly one instance
// exists per store; it carries no identity.
type Settings struct {
	Theme                string `json:"theme"` // dark, light
	RegistrationsEnabled bool   `json:"registrations_enabled"`
	SiteTitle            string `json:"site_title"`
	LogoURL              string `json:"logo_url,omitempty"`
}
