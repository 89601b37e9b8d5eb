package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Kind     error
	Message  string
	Detail   string
	DocURL   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Value Errors (E100-E109)
	// ============================================

	"E100": {
		Category: CategoryValue,
		Kind:     ErrValue,
		Message:  "Invalid argument value",
		Detail:   "Argument values must be strings, integers, floats, or booleans.",
		DocURL:   "https://drafter.vango.dev/docs/errors/E100",
	},
	"E101": {
		Category: CategoryValue,
		Kind:     ErrValue,
		Message:  "Invalid arguments",
		Detail:   "Arguments must be nil, a map, a single Argument, or a list of Arguments and (name, value) pairs.",
		DocURL:   "https://drafter.vango.dev/docs/errors/E101",
	},
	"E102": {
		Category: CategoryValue,
		Kind:     ErrValue,
		Message:  "Invalid table rows",
		Detail:   "Table rows must be a struct, a list of structs, or a list of lists of cells.",
		DocURL:   "https://drafter.vango.dev/docs/errors/E102",
	},

	// ============================================
	// Link Errors (E110-E119)
	// ============================================

	"E110": {
		Category: CategoryLink,
		Kind:     ErrBrokenLink,
		Message:  "Broken link",
		Detail:   "The link points to a page that is not registered with the server.",
		DocURL:   "https://drafter.vango.dev/docs/errors/E110",
	},
	"E111": {
		Category: CategoryLink,
		Kind:     ErrInvalidURL,
		Message:  "Invalid external URL",
		Detail:   "The link looks like an external URL but is not a valid one.",
		DocURL:   "https://drafter.vango.dev/docs/errors/E111",
	},

	// ============================================
	// Config Errors (E120-E129)
	// ============================================

	"E120": {
		Category: CategoryConfig,
		Message:  "Invalid configuration",
		Detail:   "The drafter.json or drafter.yaml file could not be loaded.",
		DocURL:   "https://drafter.vango.dev/docs/errors/E120",
	},
	"E121": {
		Category: CategoryConfig,
		Message:  "Invalid site description",
		Detail:   "The site file could not be decoded into pages.",
		DocURL:   "https://drafter.vango.dev/docs/errors/E121",
	},

	// ============================================
	// CLI Errors (E130-E139)
	// ============================================

	"E130": {
		Category: CategoryCLI,
		Message:  "Unknown template",
		Detail:   "The requested site template does not exist.",
		DocURL:   "https://drafter.vango.dev/docs/errors/E130",
	},
	"E131": {
		Category: CategoryCLI,
		Message:  "Directory exists",
		Detail:   "A new site cannot be created in an existing directory.",
		DocURL:   "https://drafter.vango.dev/docs/errors/E131",
	},
}

// GetAllCodes returns all registered error codes.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
