// Package settings models the single global prompt configuration row edited
// through the admin surface.
package settings

// Documented defaults substituted for unset fields. The prompt default is the
// empty string on purpose: an empty stored prompt resolves to the built-in
// system prompt at chat time, not here.
const (
	DefaultHeading     = "👋 Hi There!"
	DefaultDescription = "Welcome to the chat interface. Please click Begin to start."
	DefaultPageTitle   = "Teach Back : Testing agent"
)

// PromptConfiguration is the global admin-editable configuration.
// Most-recently-updated wins; read by every new session at load time.
type PromptConfiguration struct {
	Prompt      string `json:"prompt"`
	Heading     string `json:"heading"`
	Description string `json:"description"`
	PageTitle   string `json:"pageTitle"`
}

// WithDefaults resolves missing fields to the documented defaults.
func (c PromptConfiguration) WithDefaults() PromptConfiguration {
	if c.Heading == "" {
		c.Heading = DefaultHeading
	}
	if c.Description == "" {
		c.Description = DefaultDescription
	}
	if c.PageTitle == "" {
		c.PageTitle = DefaultPageTitle
	}
	return c
}

// Update carries a partial configuration change. Nil fields are left
// untouched by the store.
type Update struct {
	Prompt      *string `json:"prompt"`
	Heading     *string `json:"heading"`
	Description *string `json:"description"`
	PageTitle   *string `json:"pageTitle"`
}

// Empty reports whether the update would change nothing.
func (u Update) Empty() bool {
	return u.Prompt == nil && u.Heading == nil && u.Description == nil && u.PageTitle == nil
}
