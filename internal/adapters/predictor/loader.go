package predictor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/okian/talentscope/internal/domain/catalog"
	"github.com/okian/talentscope/internal/domain/scoring"
)

// FileSuffix names model files: <domain>_model.yaml.
const FileSuffix = "_model.yaml"

// FileName returns the model file name for domain id.
func FileName(id catalog.ID) string { return string(id) + FileSuffix }

// LoadFile parses one model file. The domain defaults to the file name
// prefix and must match it when set.
func LoadFile(path string) (*Logistic, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModelFile, path, err)
	}
	var m Logistic
	if err := k.UnmarshalWithConf("", &m, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrModelFile, path, err)
	}

	fromName := catalog.ID(strings.TrimSuffix(filepath.Base(path), FileSuffix))
	switch {
	case m.Domain == "":
		m.Domain = fromName
	case m.Domain != fromName:
		return nil, fmt.Errorf("%w: %s declares domain %q", ErrModelFile, path, m.Domain)
	}
	if len(m.Weights) == 0 {
		return nil, fmt.Errorf("%w: %s has no weights", ErrModelFile, path)
	}
	return &m, nil
}

// Skip is a model file LoadDir left out. Err wraps ErrUnknownDomain or
// ErrModelFile.
type Skip struct {
	File string
	Err  error
}

// Invalid reports whether the file was rejected as malformed rather than
// for naming a domain outside the catalog.
func (s Skip) Invalid() bool { return errors.Is(s.Err, ErrModelFile) }

// LoadDir loads every valid model file in dir whose domain is in c. Files
// for unknown domains and files that fail to parse or have the wrong
// weight count are returned as skips, sorted by name; their domains get no
// predictor. A missing or empty dir yields an empty set. Only an unreadable
// dir is an error. The set version is version when given, otherwise the
// version shared by the loaded files.
func LoadDir(c *catalog.Catalog, dir, version string) (*scoring.PredictorSet, []Skip, error) {
	if dir == "" {
		return scoring.NewPredictorSet(version, nil), nil, nil
	}
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return scoring.NewPredictorSet(version, nil), nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read %s: %w", ErrModelFile, dir, err)
	}

	width := scoring.FeatureWidth(c)
	preds := make(map[catalog.ID]scoring.Predictor, c.Len())
	var skipped []Skip
	versions := make(map[string]struct{})
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), FileSuffix) {
			continue
		}
		m, err := LoadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			skipped = append(skipped, Skip{File: e.Name(), Err: err})
			continue
		}
		if !c.Has(m.Domain) {
			skipped = append(skipped, Skip{File: e.Name(), Err: fmt.Errorf("%w: %q", ErrUnknownDomain, m.Domain)})
			continue
		}
		if len(m.Weights) != width {
			skipped = append(skipped, Skip{File: e.Name(), Err: fmt.Errorf("%w: %s has %d weights, want %d",
				ErrModelFile, e.Name(), len(m.Weights), width)})
			continue
		}
		preds[m.Domain] = m
		versions[m.Version] = struct{}{}
	}

	if version == "" && len(versions) == 1 {
		for v := range versions {
			version = v
		}
	}
	sort.Slice(skipped, func(i, j int) bool { return skipped[i].File < skipped[j].File })
	return scoring.NewPredictorSet(version, preds), skipped, nil
}
