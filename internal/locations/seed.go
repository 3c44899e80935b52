package locations

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/angelmondragon/talentconnect-backend/pkg/enums"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedDocument []byte

// SeedNode is one entry of the seed document.
type SeedNode struct {
	Name     string             `yaml:"name"`
	Kind     enums.LocationKind `yaml:"kind"`
	Aliases  []string           `yaml:"aliases"`
	Children []SeedNode         `yaml:"children"`
}

// DefaultSeed parses the embedded seed document.
func DefaultSeed() ([]SeedNode, error) {
	return ParseSeed(seedDocument)
}

// ParseSeed decodes and validates a seed document: names are unique, kinds are
// known and every value is lower-case.
func ParseSeed(data []byte) ([]SeedNode, error) {
	var nodes []SeedNode
	if err := yaml.Unmarshal(data, &nodes); err != nil {
		return nil, fmt.Errorf("decode location seed: %w", err)
	}
	seen := map[string]struct{}{}
	if err := validateSeed(nodes, seen); err != nil {
		return nil, err
	}
	return nodes, nil
}

func validateSeed(nodes []SeedNode, seen map[string]struct{}) error {
	for _, node := range nodes {
		name := normalize(node.Name)
		if name == "" {
			return fmt.Errorf("location seed: empty name")
		}
		if name != node.Name {
			return fmt.Errorf("location seed: %q must be trimmed lower-case", node.Name)
		}
		if !node.Kind.IsValid() {
			return fmt.Errorf("location seed: %q has invalid kind %q", node.Name, node.Kind)
		}
		if _, dup := seen[name]; dup {
			return fmt.Errorf("location seed: %q listed more than once", node.Name)
		}
		seen[name] = struct{}{}
		for _, alias := range node.Aliases {
			if normalize(alias) != alias || alias == "" {
				return fmt.Errorf("location seed: alias %q of %q must be trimmed lower-case", alias, node.Name)
			}
		}
		if err := validateSeed(node.Children, seen); err != nil {
			return err
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
