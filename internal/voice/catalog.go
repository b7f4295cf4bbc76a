// Package voice quản lý danh mục giọng đọc (TOML) dùng cho text-to-speech.
package voice

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed voices.toml
var defaultCatalog []byte

// Voice là một giọng đọc trong danh mục
type Voice struct {
	ID            string `toml:"id" json:"id"`
	Title         string `toml:"title" json:"title"`
	DemoURL       string `toml:"demo_url" json:"demoUrl"`
	ProviderVoice string `toml:"provider_voice" json:"-"`
	Model         string `toml:"model" json:"-"`
}

// Catalog là danh mục giọng đọc chỉ đọc, an toàn khi dùng đồng thời
type Catalog struct {
	voices []Voice
	byID   map[string]Voice
}

type catalogFile struct {
	Voices []Voice `toml:"voices"`
}

// Parse đọc danh mục từ nội dung TOML
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("invalid voice catalog: %w", err)
	}
	if len(file.Voices) == 0 {
		return nil, fmt.Errorf("invalid voice catalog: no voices defined")
	}

	c := &Catalog{byID: make(map[string]Voice, len(file.Voices))}
	for i, v := range file.Voices {
		v.ID = strings.TrimSpace(v.ID)
		if v.ID == "" || v.ProviderVoice == "" {
			return nil, fmt.Errorf("invalid voice catalog: voice #%d needs id and provider_voice", i+1)
		}
		if _, dup := c.byID[v.ID]; dup {
			return nil, fmt.Errorf("invalid voice catalog: duplicate voice id %q", v.ID)
		}
		if v.Title == "" {
			v.Title = v.ID
		}
		c.byID[v.ID] = v
		c.voices = append(c.voices, v)
	}
	return c, nil
}

// Load đọc danh mục từ file; path rỗng dùng danh mục mặc định được nhúng
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read voice catalog %s: %w", path, err)
	}
	return Parse(data)
}

// List trả về các giọng theo thứ tự khai báo
func (c *Catalog) List() []Voice {
	out := make([]Voice, len(c.voices))
	copy(out, c.voices)
	return out
}

// Get tìm giọng theo id
func (c *Catalog) Get(id string) (Voice, bool) {
	v, ok := c.byID[id]
	return v, ok
}
