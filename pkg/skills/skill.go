// Package skills discovers the skill bundles installed next to the rules
// document. A skill is a directory holding a SKILL.md file whose YAML
// frontmatter names and describes the skill.
package skills

// Skill represents a discovered skill with its metadata
type Skill struct {
	Name        string // Unique name from frontmatter
	Description string // Brief description from frontmatter
	Directory   string // Full path to the skill directory
}
