package tui

// OutputFormat selects how the submitted payload is serialized once the walk
// completes.
type OutputFormat string

const (
	// OutputJSON emits the payload as a JSON object.
	OutputJSON OutputFormat = "json"
	// OutputForm emits the payload URL-encoded, the way a browser form post
	// would carry it.
	OutputForm OutputFormat = "form"
	// OutputPretty emits the payload as indented label/value lines for humans.
	OutputPretty OutputFormat = "pretty"
)

// ContentType reports the MIME type matching the serialized output.
func (f OutputFormat) ContentType() string {
	switch f {
	case OutputForm:
		return "application/x-www-form-urlencoded"
	case OutputPretty:
		return "text/plain"
	default:
		return "application/json"
	}
}

// SubmitTransformer rewrites the collected payload before serialization.
// Returning an error aborts the render.
type SubmitTransformer func(payload map[string]any) (map[string]any, error)

// Theme controls the decorative prefixes around prompts and messages.
type Theme struct {
	PromptPrefix string
	InfoPrefix   string
	ErrorPrefix  string
}

// DefaultTheme returns the prefixes used when no theme is configured. The
// prompt prefix stays empty because the survey driver draws its own glyph.
func DefaultTheme() Theme {
	return Theme{
		ErrorPrefix: "! ",
	}
}

// Option configures the renderer.
type Option func(*Renderer)

// WithPromptDriver swaps the terminal driver, usually for a scripted driver in
// tests.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutputFormat selects the payload serialization.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		switch format {
		case OutputJSON, OutputForm, OutputPretty:
			r.outputFormat = format
		}
	}
}

// WithSubmitTransformer installs a payload rewrite applied before
// serialization.
func WithSubmitTransformer(transform SubmitTransformer) Option {
	return func(r *Renderer) {
		r.submitTransformer = transform
	}
}

// WithTheme overrides the message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}

// WithPageSize caps how many options select prompts show at once.
func WithPageSize(size int) Option {
	return func(r *Renderer) {
		if size > 0 {
			r.pageSize = size
		}
	}
}
