// Package apierror implements the §7 error taxonomy: ConfigError (fatal,
// startup only), ClientError (one of six codes, rendered as a JSON
// envelope and an HTTP status), and IOError (static file serving
// failures). internal/httpapi translates these into responses; nothing
// below the transport layer needs to know about HTTP status codes.
package apierror
