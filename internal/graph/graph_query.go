package graph

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Neighbour is an element connected to the queried element.
type Neighbour struct {
	RelType  string
	Outgoing bool
	Kind     string
	Name     string
	Missing  bool
}

// GraphQuerier reads element relationships from Neo4j.
type GraphQuerier struct {
	driver neo4j.DriverWithContext
}

// NewGraphQuerier creates a new graph querier.
func NewGraphQuerier(driver neo4j.DriverWithContext) *GraphQuerier {
	return &GraphQuerier{driver: driver}
}

// Related returns the one-hop neighbours of every element called name in mod.
func (gq *GraphQuerier) Related(ctx context.Context, mod, name string) ([]Neighbour, error) {
	session := gq.driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close(ctx)

	result, err := session.Run(ctx, `
		MATCH (e:Element {mod: $mod, name: $name})-[r]->(n:Element)
		RETURN type(r) AS rel_type, true AS outgoing, n.kind AS kind, n.name AS name, n.missing AS missing
		UNION
		MATCH (e:Element {mod: $mod, name: $name})<-[r]-(n:Element)
		RETURN type(r) AS rel_type, false AS outgoing, n.kind AS kind, n.name AS name, n.missing AS missing
	`, map[string]any{"mod": mod, "name": name})
	if err != nil {
		return nil, fmt.Errorf("query related elements: %w", err)
	}

	var out []Neighbour
	for result.Next(ctx) {
		record := result.Record()
		relType, _ := record.Get("rel_type")
		outgoing, _ := record.Get("outgoing")
		kind, _ := record.Get("kind")
		n, _ := record.Get("name")
		missing, _ := record.Get("missing")

		o, _ := outgoing.(bool)
		m, _ := missing.(bool)
		out = append(out, Neighbour{
			RelType:  fmt.Sprintf("%v", relType),
			Outgoing: o,
			Kind:     fmt.Sprintf("%v", kind),
			Name:     fmt.Sprintf("%v", n),
			Missing:  m,
		})
	}
	if err := result.Err(); err != nil {
		return nil, fmt.Errorf("read related elements: %w", err)
	}

	log.Debug().Str("name", name).Int("neighbours", len(out)).Msg("Graph query complete")
	return out, nil
}
