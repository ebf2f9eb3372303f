// Package facts loads the structural fact file handed over by the upstream
// extractor and turns it into a sealed catalog plus the ordered call-site
// list. The loader owns shape and referential-integrity validation; the
// semantic content (line ranges, statement and decision counts) is the
// extractor's obligation.
package facts

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"

	"jca/internal/catalog"
	"jca/internal/errors"
	"jca/internal/logging"
	"jca/internal/model"
)

// Format identifies the fact file encoding
type Format string

const (
	// FormatJSON for JSON fact files
	FormatJSON Format = "json"
	// FormatYAML for YAML fact files
	FormatYAML Format = "yaml"
)

// Document is the extractor's handover: every class declaration and every
// call site recorded while walking the parsed syntax tree
type Document struct {
	Project   string               `json:"project,omitempty" yaml:"project,omitempty"`
	Classes   []*model.ClassSymbol `json:"classes" yaml:"classes"`
	CallSites []model.CallSite     `json:"callSites" yaml:"callSites"`
}

// Load reads a fact file, builds and seals the catalog, and returns the
// ordered call-site list. Files ending in .zst are decompressed first; the
// inner extension picks JSON or YAML.
func Load(path string, logger *logging.Logger) (*catalog.Catalog, []model.CallSite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, errors.New(errors.FactsInvalid, "cannot read fact file", err)
	}

	name := path
	if strings.HasSuffix(name, ".zst") {
		data, err = decompress(data)
		if err != nil {
			return nil, nil, errors.New(errors.FactsInvalid, "cannot decompress fact file", err)
		}
		name = strings.TrimSuffix(name, ".zst")
	}

	doc, err := Parse(data, formatOf(name))
	if err != nil {
		return nil, nil, err
	}

	logger.Debug("Fact file parsed", map[string]interface{}{
		"path":      path,
		"classes":   len(doc.Classes),
		"callSites": len(doc.CallSites),
	})

	return Seal(doc)
}

// Parse decodes a fact document from raw bytes
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, errors.New(errors.FactsInvalid, "invalid YAML fact document", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.New(errors.FactsInvalid, "invalid JSON fact document", err)
		}
	}
	return &doc, nil
}

// Seal builds the catalog from a fact document, seals it, and validates
// that every call site's caller is a catalogued method. The catalog is
// fully built before any consumer sees it.
func Seal(doc *Document) (*catalog.Catalog, []model.CallSite, error) {
	builder := catalog.NewBuilder()
	for _, c := range doc.Classes {
		if err := builder.AddClass(c); err != nil {
			return nil, nil, err
		}
	}
	cat, err := builder.Seal()
	if err != nil {
		return nil, nil, err
	}

	for i, site := range doc.CallSites {
		if site.Caller == "" {
			return nil, nil, errors.Newf(errors.FactsInvalid, "call site %d has no caller", i)
		}
		if _, ok := cat.Method(site.Caller); !ok {
			return nil, nil, errors.Newf(errors.FactsInvalid,
				"call site %d: caller %s is not a catalogued method", i, site.Caller)
		}
		if site.Kind == "" {
			return nil, nil, errors.Newf(errors.FactsInvalid, "call site %d has no invocation kind", i)
		}
	}

	sites := append([]model.CallSite(nil), doc.CallSites...)
	return cat, sites, nil
}

func formatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

func decompress(data []byte) ([]byte, error) {
	reader, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return reader.DecodeAll(data, nil)
}
