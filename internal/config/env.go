package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	ferrors "git.home.luguber.info/inful/sitepack/internal/foundation/errors"
)

// envFiles are read from the project file's directory. Earlier files take
// precedence over later ones and the real process environment beats both.
var envFiles = []string{".env.local", ".env"}

// dotenvOwned records the variables a previous load exported from env files,
// with the value it exported. A reload may overwrite or unset these; anything
// else already in the environment belongs to the process and is left alone.
var (
	dotenvMu    sync.Mutex
	dotenvOwned = map[string]string{}
)

func loadEnvFiles(dir string) error {
	merged := map[string]string{}
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		vars, err := godotenv.Read(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return ferrors.ConfigError("failed to load env file").WithCause(err).
				WithContext("path", path).
				Build()
		}
		for k, v := range vars {
			if _, seen := merged[k]; !seen {
				merged[k] = v
			}
		}
	}
	return exportDotenv(merged)
}

// exportDotenv applies vars to the process environment, replacing what an
// earlier load exported and dropping variables no longer present in any file.
func exportDotenv(vars map[string]string) error {
	dotenvMu.Lock()
	defer dotenvMu.Unlock()

	for k, set := range dotenvOwned {
		if cur, ok := os.LookupEnv(k); !ok || cur != set {
			// Changed or removed by someone else since we exported it.
			delete(dotenvOwned, k)
			continue
		}
		if _, still := vars[k]; !still {
			if err := os.Unsetenv(k); err != nil {
				return ferrors.RuntimeError("cannot unset env variable").WithCause(err).WithContext("key", k).Build()
			}
			delete(dotenvOwned, k)
		}
	}
	for k, v := range vars {
		if _, ours := dotenvOwned[k]; !ours {
			if _, set := os.LookupEnv(k); set {
				continue
			}
		}
		if err := os.Setenv(k, v); err != nil {
			return ferrors.RuntimeError("cannot export env variable").WithCause(err).WithContext("key", k).Build()
		}
		dotenvOwned[k] = v
	}
	return nil
}
