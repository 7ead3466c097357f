package assets

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// VerifyAndClean accepts a plain path or a file:// URI and returns the file:// form.
func VerifyAndClean(uri string) (clean string, err error) {
	if strings.TrimSpace(uri) == "" {
		return "", errors.New("empty URI")
	}
	if !strings.Contains(uri, "://") {
		uri = fmt.Sprintf("file://%s", uri)
	}
	return StrictVerifyAndClean(uri)
}

func StrictVerifyAndClean(uri string) (clean string, err error) {
	if !strings.HasPrefix(uri, "file://") {
		return "", errors.Errorf("invalid URI protocol: %s", uri)
	}
	return "file://" + filepath.Clean(strings.TrimPrefix(uri, "file://")), nil
}

func GetAbsolutePathFromFileURI(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		uri = strings.Replace(uri, "file://", "", 1)
	}
	return filepath.Abs(uri)
}

// IsRemote reports whether ref is an http(s) URL.
func IsRemote(ref string) bool {
	u, err := url.Parse(strings.TrimSpace(ref))
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return (scheme == "http" || scheme == "https") && u.Host != ""
}
