package config

import (
	"fmt"
	"os"
)

func Template() string {
	return serviceTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(serviceTemplate), 0o600)
}

const serviceTemplate = `name = "petty"
addr = ":9200"
cors_origins = ["http://localhost:3000"]
admin_token = ""
excluded_post_types = []
# 0 accepts render bodies of any size
max_body_bytes = 0

[store]
driver = "file"
path = "terms.toml"
watch = true
seed_defaults = true

[engine]
skip_decorated = true
`
