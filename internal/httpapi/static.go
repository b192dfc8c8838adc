package httpapi

import (
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klimchuk/roadtripgame/internal/apierror"
)

// contentTypeByExt implements §6's extension table; anything else falls
// back to application/octet-stream.
var contentTypeByExt = map[string]string{
	".html": "text/html",
	".htm":  "text/html",
	".js":   "text/javascript",
	".json": "application/json",
	".svg":  "image/svg+xml",
	".png":  "image/png",
}

func contentTypeFor(name string) string {
	if ct, ok := contentTypeByExt[strings.ToLower(path.Ext(name))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// handleStatic serves everything outside /api/ from the www-root,
// rejecting path traversal and decoding the URL (+ -> space, %XX -> byte)
// before resolving the path, per §6.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	decoded, err := url.QueryUnescape(r.URL.EscapedPath())
	if err != nil {
		writeClientError(w, apierror.BadRequest("malformed request path"))
		return
	}

	if strings.Contains(decoded, "..") {
		writeClientError(w, apierror.BadRequest("path traversal is not allowed"))
		return
	}

	if decoded == "/" || decoded == "/index.html" {
		decoded = "/index.html"
	}

	relative := strings.TrimPrefix(decoded, "/")
	fullPath := filepath.Join(s.wwwRoot, filepath.FromSlash(relative))

	// Defence in depth: confirm the resolved path is still inside wwwRoot
	// even though ".." was already rejected above.
	root, err := filepath.Abs(s.wwwRoot)
	if err != nil {
		writeStaticError(w, &apierror.IOError{Kind: apierror.IOReadFailure, Path: fullPath, Err: err})
		return
	}
	resolved, err := filepath.Abs(fullPath)
	if err != nil || !strings.HasPrefix(resolved, root) {
		writeClientError(w, apierror.BadRequest("path traversal is not allowed"))
		return
	}

	f, err := os.Open(resolved)
	if err != nil {
		if os.IsNotExist(err) {
			writeStaticError(w, &apierror.IOError{Kind: apierror.IOFileNotFound, Path: resolved})
		} else {
			writeStaticError(w, &apierror.IOError{Kind: apierror.IOReadFailure, Path: resolved, Err: err})
		}
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		writeStaticError(w, &apierror.IOError{Kind: apierror.IOReadFailure, Path: resolved, Err: err})
		return
	}
	if info.IsDir() {
		writeStaticError(w, &apierror.IOError{Kind: apierror.IOFileNotFound, Path: resolved})
		return
	}

	w.Header().Set("Content-Type", contentTypeFor(resolved))
	w.WriteHeader(http.StatusOK)
	io.Copy(w, f)
}

func writeStaticError(w http.ResponseWriter, err *apierror.IOError) {
	code := "fileNotFound"
	if err.Kind == apierror.IOReadFailure {
		code = "internalError"
	}
	writeJSON(w, err.Status(), errorEnvelope{Code: code, Message: err.Error()})
}
