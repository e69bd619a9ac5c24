package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Configuration Errors (E101-E199)
	// ============================================

	"E101": {
		Category: CategoryConfig,
		Message:  "Mount target not found",
	},
	"E102": {
		Category: CategoryConfig,
		Message:  "Missing render callback",
		Detail:   "The application needs a top-level render function.",
	},
	"E103": {
		Category: CategoryConfig,
		Message:  "Missing presentation surface",
		Detail:   "The application needs a surface to commit changes to.",
	},
	"E104": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
	},
	"E105": {
		Category: CategoryConfig,
		Message:  "Application not mounted",
		Detail:   "Render was requested before Mount resolved a container.",
	},
	"E106": {
		Category: CategoryConfig,
		Message:  "Configuration file not found",
	},

	// ============================================
	// Validation Errors (E201-E299)
	// ============================================

	"E201": {
		Category: CategoryValidation,
		Message:  "Missing key in sibling group",
		Detail:   "Every node generated from a list must carry a non-empty key.",
	},
	"E202": {
		Category: CategoryValidation,
		Message:  "Duplicate key in sibling group",
	},
	"E203": {
		Category: CategoryValidation,
		Message:  "Value cannot be rendered",
	},
	"E204": {
		Category: CategoryValidation,
		Message:  "Invalid event binding",
		Detail:   "Event attributes must hold a *surface.Listener.",
	},
	"E205": {
		Category: CategoryValidation,
		Message:  "Style cannot be a list",
	},

	// ============================================
	// Lookup Errors (E301-E399)
	// ============================================

	"E301": {
		Category: CategoryLookup,
		Message:  "Listener not registered",
		Detail:   "A listener was removed that was never attached to this node.",
	},
	"E302": {
		Category: CategoryLookup,
		Message:  "Unknown surface handle",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

// Register adds a new error template to the registry.
func Register(code string, template ErrorTemplate) {
	registry[code] = template
}
