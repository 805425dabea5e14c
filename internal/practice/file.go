package practice

import (
	"bytes"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LoadFile reads a practice from a TOML file and validates it.
// Missing optional fields get the defaults of New.
func LoadFile(path string) (*Practice, error) {
	p := New("")
	p.QuestionCount = 0
	md, err := toml.DecodeFile(path, p)
	if err != nil {
		return nil, fmt.Errorf("decode practice file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %q in %s", ErrInvalidConfig, undecoded[0].String(), path)
	}
	if p.TestMode == TestNormal && p.QuestionCount == 0 {
		p.QuestionCount = 10
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// Encode renders the practice as TOML.
func (p *Practice) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return nil, fmt.Errorf("encode practice: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteFile saves the practice as TOML.
func (p *Practice) WriteFile(path string) error {
	data, err := p.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write practice file: %w", err)
	}
	return nil
}
