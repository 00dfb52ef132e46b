// Package common holds small helpers shared by the command actions.
package common

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/gorod-legends/lunapages/models"
	"github.com/gorod-legends/lunapages/pkg/csvsource"
)

// ContentHash computes the SHA256 hash of data and returns a hex string.
func ContentHash(data []byte) string {
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%x", hash)
}

// Fingerprint hashes everything about a record that affects its rendered
// page. The CSV line number is excluded so reordering rows does not count
// as a content change in the build log.
func Fingerprint(rec models.PageRecord) string {
	rec.Line = 0
	data, _ := json.Marshal(rec)
	return ContentHash(data)
}

// LocateCSV maps the --csv flag to a candidate probe: an explicit path is
// the only candidate, otherwise the default list is searched in order.
func LocateCSV(explicit string) (string, bool) {
	if explicit != "" {
		return csvsource.Find([]string{explicit})
	}
	return csvsource.Find(csvsource.DefaultCandidates)
}
