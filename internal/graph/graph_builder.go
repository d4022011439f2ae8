package graph

import (
	"context"
	"fmt"

	"tcreator/internal/element"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog/log"
)

// Relationship types between elements.
const (
	RelPlaces   = "PLACES"
	RelUsesDust = "USES_DUST"
)

// Edge is a directed reference from one element to another by name.
type Edge struct {
	From    element.Element
	RelType string
	ToKind  element.Kind
	ToName  string
}

// Edges lists the references held by elements: items placing tiles and
// tiles emitting mod dusts.
func Edges(elements []element.Element) []Edge {
	var edges []Edge
	for _, el := range elements {
		if el.PlacesTile != "" {
			edges = append(edges, Edge{From: el, RelType: RelPlaces, ToKind: element.Tile, ToName: el.PlacesTile})
		}
		if el.Dust != "" {
			edges = append(edges, Edge{From: el, RelType: RelUsesDust, ToKind: element.Dust, ToName: el.Dust})
		}
	}
	return edges
}

// NodeKey identifies an element node across mods.
func NodeKey(mod string, kind element.Kind, name string) string {
	return mod + "/" + kind.String() + "/" + name
}

// GraphBuilder mirrors a workspace's elements and references into Neo4j.
type GraphBuilder struct {
	driver neo4j.DriverWithContext
}

// NewGraphBuilder creates a new graph builder.
func NewGraphBuilder(driver neo4j.DriverWithContext) *GraphBuilder {
	return &GraphBuilder{driver: driver}
}

// EnsureSchema creates the element key constraint.
func (gb *GraphBuilder) EnsureSchema(ctx context.Context) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, "CREATE CONSTRAINT IF NOT EXISTS FOR (e:Element) REQUIRE e.key IS UNIQUE", nil); err != nil {
		return fmt.Errorf("create constraint: %w", err)
	}

	log.Info().Msg("Graph schema ensured")
	return nil
}

// ReplaceMod deletes the mod's nodes and recreates them with their edges.
// A reference to an element with no source file creates a node marked missing.
func (gb *GraphBuilder) ReplaceMod(ctx context.Context, mod string, elements []element.Element) error {
	session := gb.driver.NewSession(ctx, neo4j.SessionConfig{})
	defer session.Close(ctx)

	if _, err := session.Run(ctx, `MATCH (e:Element {mod: $mod}) DETACH DELETE e`, map[string]any{"mod": mod}); err != nil {
		return fmt.Errorf("clear mod %s: %w", mod, err)
	}

	for _, el := range elements {
		_, err := session.Run(ctx, `
			MERGE (e:Element {key: $key})
			SET e.mod = $mod,
			    e.kind = $kind,
			    e.name = $name,
			    e.missing = false
		`, map[string]any{
			"key":  NodeKey(mod, el.Kind, el.Name),
			"mod":  mod,
			"kind": el.Kind.String(),
			"name": el.Name,
		})
		if err != nil {
			return fmt.Errorf("upsert element %s: %w", el.Name, err)
		}
	}

	edges := Edges(elements)
	for _, edge := range edges {
		_, err := session.Run(ctx, fmt.Sprintf(`
			MATCH (a:Element {key: $from})
			MERGE (b:Element {key: $to})
			ON CREATE SET b.mod = $mod, b.kind = $toKind, b.name = $toName, b.missing = true
			MERGE (a)-[:%s]->(b)
		`, edge.RelType), map[string]any{
			"from":   NodeKey(mod, edge.From.Kind, edge.From.Name),
			"to":     NodeKey(mod, edge.ToKind, edge.ToName),
			"mod":    mod,
			"toKind": edge.ToKind.String(),
			"toName": edge.ToName,
		})
		if err != nil {
			log.Warn().Err(err).
				Str("from", edge.From.Name).
				Str("to", edge.ToName).
				Str("rel", edge.RelType).
				Msg("Failed to create relationship")
		}
	}

	log.Info().Str("mod", mod).Int("elements", len(elements)).Int("relationships", len(edges)).Msg("Graph updated")
	return nil
}
