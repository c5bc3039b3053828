package inventory

import (
	"errors"
	"fmt"

	"github.com/looplab/tarjan"
	"github.com/ufispace/onlp2go/internal/onlp"
	"github.com/ufispace/onlp2go/internal/ui"
)

var ErrTopology = errors.New("invalid topology")

// parents reads the parent of every oid of p. Oids whose header cannot be
// read are left out.
func parents(p *onlp.Platform) map[onlp.Oid]onlp.Oid {
	result := map[onlp.Oid]onlp.Oid{}
	for _, s := range p.Subsystems() {
		for _, id := range s.Ids() {
			hdr, err := s.Header(id)
			if err != nil {
				ui.Debug("Skipping %s in topology check: %v", id, err)
				continue
			}
			result[id] = hdr.Parent
		}
	}
	return result
}

// ValidateTopology checks that the parent references of all components form a
// tree below the chassis
func ValidateTopology(p *onlp.Platform) error {
	return validateParents(parents(p))
}

func validateParents(parents map[onlp.Oid]onlp.Oid) error {
	var result error
	graph := map[interface{}][]interface{}{}
	for id, parent := range parents {
		if id == parent {
			result = errors.Join(result, fmt.Errorf("%s is its own parent: %w", id, ErrTopology))
			continue
		}
		if _, known := parents[parent]; parent != onlp.OidChassis && !known {
			result = errors.Join(result, fmt.Errorf("%s has unknown parent %s: %w", id, parent, ErrTopology))
			continue
		}
		graph[id] = append(graph[id], parent)
	}

	for _, items := range tarjan.Connections(graph) {
		if len(items) > 1 {
			result = errors.Join(result, fmt.Errorf("parent cycle between %v: %w", items, ErrTopology))
		}
	}
	return result
}
