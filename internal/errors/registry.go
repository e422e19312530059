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
	// Config errors (W100-W199)

	"W101": {
		Category: CategoryConfig,
		Message:  "Invalid configuration file",
		Detail:   "wand.json could not be read or is not valid JSON.",
	},
	"W102": {
		Category: CategoryConfig,
		Message:  "Invalid environment override",
		Detail:   "A WAND_* environment variable could not be parsed into its setting.",
	},
	"W103": {
		Category: CategoryConfig,
		Message:  "Invalid port",
		Detail:   "The preview port must be between 0 and 65535.",
	},
	"W104": {
		Category: CategoryConfig,
		Message:  "Invalid poll interval",
		Detail:   "preview.pollInterval must be a positive Go duration such as \"500ms\".",
	},
	"W105": {
		Category: CategoryConfig,
		Message:  "Invalid log level",
		Detail:   "log.level must be one of debug, info, warn or error.",
	},
	"W106": {
		Category: CategoryConfig,
		Message:  "Configuration file exists",
		Detail:   "wand init does not overwrite an existing wand.json.",
	},

	// Document errors (W200-W299)

	"W201": {
		Category: CategoryDocument,
		Message:  "Invalid document",
		Detail:   "The markup document could not be decoded.",
	},
	"W202": {
		Category: CategoryDocument,
		Message:  "Document not found",
		Detail:   "No document exists at the given path.",
	},
	"W203": {
		Category: CategoryDocument,
		Message:  "Cannot write output",
		Detail:   "The rendered markup could not be written.",
	},

	// Server errors (W300-W399)

	"W301": {
		Category: CategoryServer,
		Message:  "Preview server failed",
		Detail:   "The preview server stopped with an error.",
	},
	"W302": {
		Category: CategoryServer,
		Message:  "Document directory not found",
		Detail:   "The preview server needs an existing directory of *.json documents.",
	},

	// Publish errors (W400-W499)

	"W401": {
		Category: CategoryPublish,
		Message:  "Publish failed",
		Detail:   "The rendered document could not be uploaded.",
	},
	"W402": {
		Category: CategoryPublish,
		Message:  "No bucket configured",
		Detail:   "Set publish.bucket in wand.json, WAND_PUBLISH_BUCKET, or pass --bucket.",
	},

	// CLI errors (W500-W599)

	"W501": {
		Category: CategoryCLI,
		Message:  "Invalid arguments",
		Detail:   "The command was called with arguments it cannot use.",
	},
	"W502": {
		Category: CategoryCLI,
		Message:  "Unknown error code",
		Detail:   "wand explain only knows the codes listed by running it without arguments.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
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
