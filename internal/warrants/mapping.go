package warrants

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type mappingFile struct {
	Names     map[string]string `json:"names"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// NameMapping remembers which listing name worked for each ticker, so
// later runs skip straight to it instead of probing all variants.
type NameMapping struct {
	mu       sync.Mutex
	filePath string
	names    map[string]string
}

// LoadNameMapping reads the mapping from a JSON file. A missing file
// yields an empty mapping.
func LoadNameMapping(filePath string) (*NameMapping, error) {
	m := &NameMapping{filePath: filePath, names: make(map[string]string)}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, err
	}
	var file mappingFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, err
	}
	if file.Names != nil {
		m.names = file.Names
	}
	return m, nil
}

// Get returns the remembered listing name for a ticker.
func (m *NameMapping) Get(ticker string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	name, ok := m.names[ticker]
	return name, ok
}

// Put records a working listing name and persists the mapping. A failed
// save only costs the cache, so it is logged and swallowed.
func (m *NameMapping) Put(ticker, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.names[ticker] == name {
		return
	}
	m.names[ticker] = name
	if err := m.save(); err != nil {
		log.Warn().Err(err).Str("file", m.filePath).Msg("failed to save name mapping")
	}
}

func (m *NameMapping) save() error {
	data, err := json.MarshalIndent(mappingFile{Names: m.names, UpdatedAt: time.Now()}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.filePath, data, 0644)
}
