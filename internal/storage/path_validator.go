package storage

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"unicode"

	"hrms-portal/pkg/apierror"
)

// PathValidator maps storage keys such as "employees/e1/photo.jpg" onto
// paths that cannot escape the root directory.
type PathValidator struct {
	rootAbs string
}

func NewPathValidator(root string) (*PathValidator, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("root path cannot be empty")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve storage root: %w", err)
	}

	return &PathValidator{rootAbs: rootAbs}, nil
}

func (v *PathValidator) RootAbs() string {
	return v.rootAbs
}

func (v *PathValidator) ResolvePath(key string) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(key), `\`, "/")
	if normalized == "" || normalized == "/" {
		return v.rootAbs, nil
	}

	if strings.Contains(normalized, "\x00") || hasControlCharacters(normalized) {
		return "", apierror.New("INVALID_PATH", "storage key contains invalid characters", key, http.StatusBadRequest)
	}

	segments := strings.Split(normalized, "/")
	for _, segment := range segments {
		if segment == ".." {
			return "", apierror.New("PATH_TRAVERSAL", "storage key escapes the photo root", key, http.StatusForbidden)
		}
	}

	cleanRel := filepath.Clean(strings.TrimPrefix(normalized, "/"))
	if cleanRel == "." {
		return v.rootAbs, nil
	}

	resolved := filepath.Join(v.rootAbs, cleanRel)
	resolvedAbs, err := filepath.Abs(resolved)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	if !isWithinRoot(v.rootAbs, resolvedAbs) {
		return "", apierror.New("PATH_TRAVERSAL", "resolved path is outside the photo root", key, http.StatusForbidden)
	}

	return resolvedAbs, nil
}

func hasControlCharacters(value string) bool {
	for _, char := range value {
		if unicode.IsControl(char) {
			return true
		}
	}

	return false
}

func isWithinRoot(rootAbs string, candidateAbs string) bool {
	if candidateAbs == rootAbs {
		return true
	}

	rootWithSeparator := rootAbs + string(filepath.Separator)
	return strings.HasPrefix(candidateAbs, rootWithSeparator)
}
