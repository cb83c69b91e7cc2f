package core

import (
	"github.com/oxhq/strata/model"
	"github.com/oxhq/strata/providers"
)

// BuildGraph runs the 4.F Dependency Graph Builder over a set of parsed
// files: a seed pass inserting one node per file, then an edge pass that
// normalizes each import (4.E, via provider) into a target node, inserting
// it if new and adding a deduplicated directed edge from file to target.
//
// Node and edge order follows first-encounter order: files in the order
// given, imports in source order within each file, matching the ordering
// guarantees in the concurrency model.
func BuildGraph(files []model.ParsedFile, provider providers.Provider) model.GraphData {
	nodeOrder := make([]string, 0, len(files))
	nodeSeen := make(map[string]struct{}, len(files))
	edgeSeen := make(map[[2]string]struct{})
	var edges []model.GraphEdge

	addNode := func(id string) {
		if _, ok := nodeSeen[id]; ok {
			return
		}
		nodeSeen[id] = struct{}{}
		nodeOrder = append(nodeOrder, id)
	}

	for _, pf := range files {
		addNode(pf.Path)
	}

	for _, pf := range files {
		for _, rawImport := range pf.Imports {
			target := provider.NormalizeImport(rawImport)
			addNode(target)

			key := [2]string{pf.Path, target}
			if _, ok := edgeSeen[key]; ok {
				continue
			}
			edgeSeen[key] = struct{}{}
			edges = append(edges, model.GraphEdge{From: pf.Path, To: target})
		}
	}

	nodes := make([]model.GraphNode, 0, len(nodeOrder))
	for _, id := range nodeOrder {
		nodes = append(nodes, model.GraphNode{
			ID:    id,
			Label: provider.Label(id),
			Kind:  provider.ClassifyNode(id),
		})
	}

	return model.GraphData{Nodes: nodes, Edges: edges}
}
