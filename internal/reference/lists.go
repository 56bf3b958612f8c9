package reference

import (
	"encoding/csv"
	"os"
	"strings"
)

// LoadDomainSet reads the blacklist file of spec.md §6 "On-disk inputs":
// one domain per line, or CSV with a "domain" column. Returns a
// lower-cased set suitable for substring matching against extracted
// host names. An empty path yields an empty, non-error set.
func LoadDomainSet(path string) (map[string]bool, error) {
	return loadFirstColumnSet(path, "domain", true)
}

// LoadUsernameSet reads the sockpuppet list of spec.md §6: one username
// per line, first CSV column accepted. spec.md §6 calls for "exact-match
// against revision authors" — MediaWiki usernames are case-sensitive, so
// unlike LoadDomainSet this preserves the on-disk casing verbatim.
func LoadUsernameSet(path string) (map[string]bool, error) {
	return loadFirstColumnSet(path, "username", false)
}

func loadFirstColumnSet(path, headerName string, foldCase bool) (map[string]bool, error) {
	set := make(map[string]bool)
	if path == "" {
		return set, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	first := true
	for {
		record, err := reader.Read()
		if err != nil {
			break
		}
		if len(record) == 0 {
			continue
		}

		value := strings.TrimSpace(record[0])
		if foldCase {
			value = strings.ToLower(value)
		}
		if value == "" {
			continue
		}
		if first {
			first = false
			if strings.ToLower(value) == headerName {
				continue
			}
		}
		set[value] = true
	}

	return set, nil
}
