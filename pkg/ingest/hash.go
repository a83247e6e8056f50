package ingest

import (
	"crypto/md5"
	"encoding/hex"
)

// URLContentHash fingerprints a URL-derived document. The lastModified
// string is folded in when present so a changed lastmod invalidates the
// previous hash; without one, the URL alone is the identity.
func URLContentHash(url, lastModified string) string {
	input := url
	if lastModified != "" {
		input = url + ":" + lastModified
	}
	sum := md5.Sum([]byte(input))
	return hex.EncodeToString(sum[:])
}

// BytesContentHash fingerprints raw content, used for local files that
// have no modification metadata worth trusting.
func BytesContentHash(data []byte) string {
	sum := md5.Sum(data)
	return hex.EncodeToString(sum[:])
}
