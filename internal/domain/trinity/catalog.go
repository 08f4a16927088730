package trinity

import (
	"errors"
	"fmt"
)

// Catalog is the immutable, ordered list of check definitions. Built once at
// process start; evaluation walks it in declaration order.
type Catalog struct {
	defs []Definition
	byID map[string]int
}

func NewCatalog() *Catalog {
	return &Catalog{byID: map[string]int{}}
}

// Register adds a definition. Duplicate ids are a startup failure, never a
// request-time one.
func (c *Catalog) Register(def Definition) error {
	if def.ID == "" {
		return &ConfigError{CheckID: def.ID, Err: errors.New("empty check id")}
	}
	if def.Evaluate == nil {
		return &ConfigError{CheckID: def.ID, Err: errors.New("nil evaluate func")}
	}
	if _, exists := c.byID[def.ID]; exists {
		return &ConfigError{CheckID: def.ID, Err: ErrDuplicateCheck}
	}
	c.byID[def.ID] = len(c.defs)
	c.defs = append(c.defs, def)
	return nil
}

// Definitions returns the catalog in declaration order. Callers must not
// mutate the returned slice.
func (c *Catalog) Definitions() []Definition {
	return c.defs
}

// Len is the number of registered checks.
func (c *Catalog) Len() int { return len(c.defs) }

// Get looks a definition up by id.
func (c *Catalog) Get(id string) (Definition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Definition{}, false
	}
	return c.defs[i], true
}

// DefaultCatalog assembles the full production check list:
// identity, logic/physics, then vehicle.
func DefaultCatalog() (*Catalog, error) {
	c := NewCatalog()
	var groups [][]Definition
	groups = append(groups, identityChecks(), logicChecks(), vehicleChecks())
	for _, group := range groups {
		for _, def := range group {
			if err := c.Register(def); err != nil {
				return nil, fmt.Errorf("default catalog: %w", err)
			}
		}
	}
	return c, nil
}

// --- outcome builders shared by the check files ---

// unknownConfidence is reported when a comparison side is missing: the check
// ran, it just could not assert anything, so confidence drops instead of
// failing the claimant for evidence the extractor never produced.
const unknownConfidence = 0.3

func pass(confidence float64, details string) Outcome {
	t := true
	return Outcome{IsPass: &t, Confidence: confidence, Details: details, Status: StatusRun}
}

func fail(confidence float64, details string, flags ...string) Outcome {
	f := false
	return Outcome{IsPass: &f, Confidence: confidence, Details: details, RedFlags: flags, Status: StatusRun}
}

func passUnknown(details string) Outcome {
	return pass(unknownConfidence, details)
}
