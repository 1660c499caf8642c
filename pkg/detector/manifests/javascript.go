package manifests

import "encoding/json"

// ParsePackageJSON returns the union of the "dependencies" and
// "devDependencies" keys of a package.json document.
func ParsePackageJSON(content []byte) Set {
	deps := Set{}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(content, &doc); err != nil {
		return deps
	}

	for _, section := range []string{"dependencies", "devDependencies"} {
		raw, ok := doc[section]
		if !ok {
			continue
		}
		var entries map[string]json.RawMessage
		if err := json.Unmarshal(raw, &entries); err != nil {
			continue
		}
		for name := range entries {
			deps.Add(name)
		}
	}

	return deps
}
