package analyzer

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const phpDefaultPort = 8000

func analyzePHP(root string, p *Profile) {
	p.Language = LangPHP
	p.Port = phpDefaultPort
	// PHP's built-in server works the same for every framework here.
	p.StartCommands = []string{"php -S 0.0.0.0:8000"}

	data, err := os.ReadFile(filepath.Join(root, "composer.json"))
	if err != nil {
		return
	}
	var doc struct {
		Require map[string]string `json:"require"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		logrus.WithError(err).Warn("skipping malformed composer.json")
		return
	}

	if _, ok := doc.Require["laravel/laravel"]; ok {
		p.Framework = "laravel"
	} else if _, ok := doc.Require["symfony/symfony"]; ok {
		p.Framework = "symfony"
	}
	if deps, err := orderedKeys(data, "require"); err == nil {
		p.Dependencies = deps
	}
}
