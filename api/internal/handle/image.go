package handle

import (
	"encoding/base64"
	"errors"
	"strings"

	"landmark-lens/api/internal/util"
)

var errBadImage = errors.New("image_b64 must be non-empty base64")

// decodeImage accepts bare base64 or a "data:<mime>;base64," URL and returns
// the bytes plus the MIME type the URL declared.
func decodeImage(s string) (img []byte, declared string, err error) {
	s = strings.TrimSpace(s)
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		meta, payload, found := strings.Cut(rest, ",")
		mime, enc, _ := strings.Cut(meta, ";")
		if !found || enc != "base64" {
			return nil, "", errBadImage
		}
		declared, s = strings.TrimSpace(mime), payload
	}
	if img, err = base64.StdEncoding.DecodeString(s); err != nil {
		// browsers sometimes send the URL-safe alphabet
		if img, err = base64.URLEncoding.DecodeString(s); err != nil {
			return nil, "", errBadImage
		}
	}
	if len(img) == 0 {
		return nil, "", errBadImage
	}
	return img, declared, nil
}

// contentType prefers the request field, then the data URL, then sniffing.
func contentType(explicit, declared string, img []byte) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	if declared != "" {
		return declared
	}
	return util.SniffMimeHTTP(img)
}
