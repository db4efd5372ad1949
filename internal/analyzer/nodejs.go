package analyzer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// nodeFrameworkOrder maps a dependency name to the framework label, checked
// in priority order.
var nodeFrameworkOrder = []struct {
	dep       string
	framework string
}{
	{"express", "express"},
	{"next", "nextjs"},
	{"react", "react"},
	{"vue", "vue"},
}

const nodeDefaultPort = 3000

func analyzeNodeJS(root string, p *Profile) {
	p.Language = LangNodeJS
	p.Port = nodeDefaultPort

	pkg, err := parsePackageJSON(filepath.Join(root, "package.json"))
	if err != nil {
		// Malformed manifest: keep the language classification and defaults.
		logrus.WithError(err).Warn("skipping malformed package.json")
		return
	}

	p.Dependencies = pkg.dependencies
	for _, fw := range nodeFrameworkOrder {
		if p.HasDependency(fw.dep) {
			p.Framework = fw.framework
			break
		}
	}

	if start, ok := pkg.scripts["start"]; ok {
		p.StartCommands = []string{"npm start", start}
	} else if _, ok := pkg.scripts["dev"]; ok {
		p.StartCommands = []string{"npm run dev"}
	}
}

type packageJSON struct {
	dependencies []string // manifest order
	scripts      map[string]string
}

// parsePackageJSON reads package.json keeping the dependency keys in manifest
// order, which encoding/json maps would lose.
func parsePackageJSON(path string) (*packageJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}

	deps, err := orderedKeys(data, "dependencies")
	if err != nil {
		return nil, err
	}

	pkg := &packageJSON{dependencies: deps, scripts: doc.Scripts}
	if pkg.scripts == nil {
		pkg.scripts = map[string]string{}
	}
	return pkg, nil
}

// orderedKeys returns the keys of a top-level JSON object field in document
// order using the token stream.
func orderedKeys(data []byte, field string) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	// Opening brace of the document.
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("not a JSON object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		if key == field {
			return objectKeys(dec)
		}
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func objectKeys(dec *json.Decoder) ([]string, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil // field is not an object
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil
		}
		keys = append(keys, key)
		if err := skipValue(dec); err != nil {
			return nil, err
		}
	}
	// Closing brace.
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return keys, nil
}

func skipValue(dec *json.Decoder) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return nil
	}
	if d == '{' || d == '[' {
		depth := 1
		for depth > 0 {
			tok, err := dec.Token()
			if err != nil {
				return err
			}
			if dd, ok := tok.(json.Delim); ok {
				switch dd {
				case '{', '[':
					depth++
				case '}', ']':
					depth--
				}
			}
		}
	}
	return nil
}
