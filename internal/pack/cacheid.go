package pack

import (
	"encoding/hex"
	"path/filepath"
	"strconv"

	"lukechampine.com/blake3"

	"git.home.luguber.info/inful/sitepack/internal/toolchain"
)

// CacheIdentity locates and keys the loader cache.
type CacheIdentity struct {
	Directory  string `json:"directory" yaml:"directory"`
	Identifier string `json:"identifier" yaml:"identifier"`
}

// CacheDirectory is the loader cache location for a project root.
func CacheDirectory(context string) string {
	return filepath.Join(context, "node_modules", ".cache", "sitepack")
}

// DeriveCacheIdentity hashes everything that can change loader output. Tool
// versions are hashed in the order given.
func DeriveCacheIdentity(tools []toolchain.Version, context string, mode Mode, customization string) CacheIdentity {
	h := blake3.New(32, nil)
	write := func(k, v string) {
		_, _ = h.Write([]byte(k))
		_, _ = h.Write([]byte{'='})
		_, _ = h.Write([]byte(v))
		_, _ = h.Write([]byte{0})
	}
	for _, t := range tools {
		write(t.Name, t.Version)
	}
	write("context", context)
	write("production", strconv.FormatBool(mode.Production))
	write("server", strconv.FormatBool(mode.Server))
	write("customize", customization)

	return CacheIdentity{
		Directory:  CacheDirectory(context),
		Identifier: hex.EncodeToString(h.Sum(nil)),
	}
}
