package logging

// Field name constants for structured logging.
const (
	FieldError    = "error"
	FieldPath     = "path"
	FieldPaths    = "paths"
	FieldPattern  = "pattern"
	FieldPatterns = "patterns"
	FieldFiles    = "files"
	FieldLines    = "lines"
	FieldMatches  = "matches"
	FieldTemplate = "template"
	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
)
