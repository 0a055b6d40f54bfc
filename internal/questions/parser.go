package questions

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	defaultMinYears = 0
	defaultMaxYears = 100
)

// Each question block starts with a front matter segment between a pair of
// "---" markers. The body runs up to the next front matter segment or EOF.
var frontMatterRe = regexp.MustCompile(`(?s)---\s*(.*?)\s*---`)

// Load scans dir for *.md topic files and parses them into a catalog. The file
// base name becomes the technology key. A missing or empty directory yields an
// empty catalog, and unreadable files are skipped with a warning so one broken
// file cannot take the whole bank down.
func Load(dir string, logger *zap.Logger) *Catalog {
	catalog := &Catalog{}

	paths, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		logger.Warn("listing question files", zap.String("dir", dir), zap.Error(err))
		return catalog
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("skipping unreadable question file", zap.String("path", path), zap.Error(err))
			continue
		}

		tech := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		parsed := ParseText(string(data), tech)
		catalog.Items = append(catalog.Items, parsed...)

		logger.Debug("parsed question file",
			zap.String("path", path),
			zap.String("tech", tech),
			zap.Int("questions", len(parsed)),
		)
	}

	logger.Info("question bank loaded",
		zap.String("dir", dir),
		zap.Int("questions", catalog.Len()),
		zap.Strings("techs", catalog.Techs()),
	)

	return catalog
}

// ParseText parses one topic file into question records. Blocks whose body
// trims to nothing are dropped. Malformed front matter degrades to defaults
// instead of failing the file.
func ParseText(text, tech string) []*Question {
	matches := frontMatterRe.FindAllStringSubmatchIndex(text, -1)
	out := make([]*Question, 0, len(matches))

	for i, m := range matches {
		bodyEnd := len(text)
		if i+1 < len(matches) {
			bodyEnd = matches[i+1][0]
		}

		body := strings.TrimSpace(text[m[1]:bodyEnd])
		if body == "" {
			continue
		}

		q := questionFromMeta(parseFrontMatter(text[m[2]:m[3]]))
		q.Tech = tech
		q.Text = body
		if q.ID == "" {
			q.ID = fmt.Sprintf("%s-%d", tech, len(out)+1)
		}

		out = append(out, q)
	}

	return out
}

// metaFields carries the scalar front matter keys. Both historical spellings
// of the year bounds are accepted.
type metaFields struct {
	ID          string `mapstructure:"id"`
	MinYears    *int   `mapstructure:"min_years"`
	MinYear     *int   `mapstructure:"min_year"`
	MaxYears    *int   `mapstructure:"max_years"`
	MaxYear     *int   `mapstructure:"max_year"`
	Explanation string `mapstructure:"explanation"`
}

func parseFrontMatter(raw string) map[string]any {
	var meta map[string]any
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		// Tolerated: the block is kept with defaults only.
		return nil
	}
	return meta
}

func questionFromMeta(meta map[string]any) *Question {
	var fields metaFields

	cfg := &mapstructure.DecoderConfig{
		Result:           &fields,
		WeaklyTypedInput: true,
	}
	if decoder, err := mapstructure.NewDecoder(cfg); err == nil {
		// Decode errors leave the zero fields in place, same as missing keys.
		_ = decoder.Decode(meta)
	}

	q := &Question{
		ID:          strings.TrimSpace(fields.ID),
		Roles:       normalizeList(pick(meta, "role", "roles"), []string{RoleAny}),
		MinYears:    firstInt(defaultMinYears, fields.MinYears, fields.MinYear),
		MaxYears:    firstInt(defaultMaxYears, fields.MaxYears, fields.MaxYear),
		Tags:        normalizeList(pick(meta, "tags"), nil),
		Explanation: strings.TrimSpace(fields.Explanation),
	}

	return q
}

func pick(meta map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := meta[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func firstInt(def int, values ...*int) int {
	for _, v := range values {
		if v != nil {
			return *v
		}
	}
	return def
}

// normalizeList accepts either a comma-delimited string or a YAML list and
// returns trimmed, non-empty elements. A nil value yields the fallback.
func normalizeList(v any, fallback []string) []string {
	switch val := v.(type) {
	case nil:
		return fallback
	case string:
		parts := strings.Split(val, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		if len(out) == 0 {
			return fallback
		}
		return out
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s := strings.TrimSpace(fmt.Sprintf("%v", item))
			if s != "" {
				out = append(out, s)
			}
		}
		if len(out) == 0 {
			return fallback
		}
		return out
	default:
		return []string{strings.TrimSpace(fmt.Sprintf("%v", val))}
	}
}
