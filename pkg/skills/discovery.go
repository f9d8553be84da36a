package skills

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"
)

const skillFileName = "SKILL.md"

// skillGlob matches one SKILL.md per immediate subdirectory
const skillGlob = "*/" + skillFileName

// Discovery handles skill discovery from configured directories
type Discovery struct {
	skillDirs []string
}

// Option is a function that configures a Discovery
type Option func(*Discovery) error

// WithSkillDirs sets the directories to search. Earlier directories win when
// two of them hold a skill with the same name.
func WithSkillDirs(dirs ...string) Option {
	return func(d *Discovery) error {
		d.skillDirs = append(d.skillDirs, dirs...)
		return nil
	}
}

// WithPluginRoot searches the skills directory of a plugin
func WithPluginRoot(root string) Option {
	return func(d *Discovery) error {
		if root == "" {
			return errors.New("plugin root cannot be empty")
		}
		d.skillDirs = append(d.skillDirs, filepath.Join(root, "skills"))
		return nil
	}
}

// NewDiscovery creates a new skill discovery instance
func NewDiscovery(opts ...Option) (*Discovery, error) {
	d := &Discovery{}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, err
		}
	}

	if len(d.skillDirs) == 0 {
		return nil, errors.New("no skill directories configured")
	}

	return d, nil
}

// DiscoverSkills finds all skills in the configured directories. Directories
// that do not exist and SKILL.md files without usable frontmatter are skipped.
func (d *Discovery) DiscoverSkills() (map[string]*Skill, error) {
	skills := make(map[string]*Skill)

	for _, dir := range d.skillDirs {
		if err := d.discoverSkillsFromDir(dir, skills); err != nil {
			return nil, err
		}
	}

	return skills, nil
}

func (d *Discovery) discoverSkillsFromDir(dir string, skills map[string]*Skill) error {
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return nil
	}

	matches, err := doublestar.Glob(os.DirFS(dir), skillGlob)
	if err != nil {
		return errors.Wrapf(err, "failed to search %s for skills", dir)
	}
	sort.Strings(matches)

	for _, match := range matches {
		skillPath := filepath.Join(dir, filepath.FromSlash(match))
		skill, err := loadSkill(skillPath)
		if err != nil {
			continue
		}

		if _, exists := skills[skill.Name]; !exists {
			skill.Directory = filepath.Dir(skillPath)
			skills[skill.Name] = skill
		}
	}

	return nil
}

// NameSet returns the set of skill names
func NameSet(skills map[string]*Skill) map[string]bool {
	set := make(map[string]bool, len(skills))
	for name := range skills {
		set[name] = true
	}
	return set
}

// loadSkill loads a single skill from its SKILL.md file
func loadSkill(path string) (*Skill, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)

	if name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}
	if description == "" {
		return nil, errors.New("skill description is required in frontmatter")
	}

	return &Skill{
		Name:        name,
		Description: description,
	}, nil
}
