package graphql

import (
	"fmt"
	"sort"

	"github.com/graphql-go/graphql"

	"github.com/chainsight/chainsight/pkg/graph"
	"github.com/chainsight/chainsight/pkg/impact"
	"github.com/chainsight/chainsight/pkg/paths"
)

// GenerateSchema builds the read-only query schema over a graph index.
// Mutations go through the REST API; the GraphQL surface is for
// exploration and dashboards.
func GenerateSchema(ix *graph.Index) (graphql.Schema, error) {
	nodeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Node",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.NewNonNull(graphql.ID),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(graph.Node).ID, nil
				},
			},
			"tier": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(graph.Node).Tier, nil
				},
			},
			"kind": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(graph.Node).Kind.String(), nil
				},
			},
			"importance": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(graph.Node).Importance, nil
				},
			},
			"riskScore": &graphql.Field{
				Type: graphql.Float,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return p.Source.(graph.Node).RiskScore, nil
				},
			},
		},
	})

	impactType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Impact",
		Fields: graphql.Fields{
			"affectedNodes": &graphql.Field{Type: graphql.NewList(graphql.String)},
			"criticalPaths": &graphql.Field{Type: graphql.NewList(graphql.NewList(graphql.String))},
			"totalImpact":   &graphql.Field{Type: graphql.Float},
		},
	})

	pathsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Paths",
		Fields: graphql.Fields{
			"paths":     &graphql.Field{Type: graphql.NewList(graphql.NewList(graphql.String))},
			"shortest":  &graphql.Field{Type: graphql.NewList(graphql.String)},
			"truncated": &graphql.Field{Type: graphql.Boolean},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"health": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return "ok", nil
				},
			},
			"node": &graphql.Field{
				Type: nodeType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					id := p.Args["id"].(string)
					node, ok := ix.Node(id)
					if !ok {
						return nil, nil
					}
					return node, nil
				},
			},
			"downstream": &graphql.Field{
				Type: impactType,
				Args: graphql.FieldConfigArgument{
					"sourceIds": &graphql.ArgumentConfig{
						Type: graphql.NewNonNull(graphql.NewList(graphql.String)),
					},
					"maxDepth": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					raw := p.Args["sourceIds"].([]any)
					sourceIDs := make([]string, 0, len(raw))
					for _, v := range raw {
						sourceIDs = append(sourceIDs, fmt.Sprintf("%v", v))
					}

					opts := impact.DefaultTraceOptions()
					if depth, ok := p.Args["maxDepth"].(int); ok && depth > 0 {
						opts.MaxDepth = depth
					}
					set, err := impact.TraceDownstream(p.Context, ix, sourceIDs, opts)
					if err != nil {
						return nil, err
					}
					return impactResult(set), nil
				},
			},
			"upstream": &graphql.Field{
				Type: impactType,
				Args: graphql.FieldConfigArgument{
					"targetId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"maxDepth": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					opts := impact.DefaultUpstreamOptions()
					if depth, ok := p.Args["maxDepth"].(int); ok && depth > 0 {
						opts.MaxDepth = depth
					}
					set, err := impact.TraceUpstream(p.Context, ix, p.Args["targetId"].(string), opts)
					if err != nil {
						return nil, err
					}
					return impactResult(set), nil
				},
			},
			"paths": &graphql.Field{
				Type: pathsType,
				Args: graphql.FieldConfigArgument{
					"sourceId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"targetId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"maxPaths": &graphql.ArgumentConfig{Type: graphql.Int},
					"maxDepth": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					var opts paths.Options
					if n, ok := p.Args["maxPaths"].(int); ok {
						opts.MaxPaths = n
					}
					if n, ok := p.Args["maxDepth"].(int); ok {
						opts.MaxDepth = n
					}
					result, err := paths.FindAllPaths(p.Context, ix,
						p.Args["sourceId"].(string), p.Args["targetId"].(string), opts)
					if err != nil {
						return nil, err
					}
					return map[string]any{
						"paths":     result.Paths,
						"shortest":  paths.SelectShortest(ix, result.Paths),
						"truncated": result.Truncated,
					}, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{Query: queryType})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("create schema: %w", err)
	}
	return schema, nil
}

func impactResult(set *impact.AffectedSet) map[string]any {
	nodes := make([]string, 0, len(set.Nodes))
	for id := range set.Nodes {
		nodes = append(nodes, id)
	}
	sort.Strings(nodes)

	return map[string]any{
		"affectedNodes": nodes,
		"criticalPaths": set.CriticalPaths,
		"totalImpact":   set.TotalImpact,
	}
}
