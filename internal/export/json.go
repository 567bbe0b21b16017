// Package export serializes a computed graph for downstream tooling.
package export

import (
	"encoding/json"
	"time"

	"github.com/gitlanes/gitlanes/internal/graph"
)

// Commit is one graph node. Column is the display column of the
// owning branch; Refs lists branch and tag names attached to this
// commit.
type Commit struct {
	Hash      string    `json:"hash"`
	ShortHash string    `json:"short_hash"`
	Parents   []string  `json:"parents,omitempty"`
	Author    string    `json:"author"`
	Email     string    `json:"email,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Branch    string    `json:"branch"`
	Column    int       `json:"column"`
	Refs      []string  `json:"refs,omitempty"`
}

// Branch is one branch record. Start and End bound the rows the
// branch line covers; a nil bound means the line runs open toward
// that end, and both nil means the branch has no line at all.
type Branch struct {
	Name   string `json:"name"`
	Tip    string `json:"tip"`
	Column *int   `json:"column,omitempty"`
	Color  string `json:"color"`
	Merged bool   `json:"merged,omitempty"`
	Remote bool   `json:"remote,omitempty"`
	Tag    bool   `json:"tag,omitempty"`
	Start  *int   `json:"start,omitempty"`
	End    *int   `json:"end,omitempty"`
}

// Head is the HEAD snapshot at graph time.
type Head struct {
	Hash   string `json:"hash"`
	Name   string `json:"name"`
	Branch bool   `json:"branch"`
}

// Graph is the document root.
type Graph struct {
	Repo     string    `json:"repo,omitempty"`
	Head     Head      `json:"head"`
	Nodes    []*Commit `json:"nodes"`
	Branches []*Branch `json:"branches,omitempty"`
}

// JSON renders the graph as an indented JSON document. repo names the
// repository and may be empty.
func JSON(g *graph.Graph, repo string) ([]byte, error) {
	doc := Graph{
		Repo: repo,
		Head: Head{
			Hash:   g.Head.Hash,
			Name:   g.Head.Name,
			Branch: g.Head.IsBranch,
		},
		Nodes: make([]*Commit, 0, len(g.Commits)),
	}

	for _, c := range g.Commits {
		node := &Commit{
			Hash:      c.Hash,
			ShortHash: c.Info.ShortHash,
			Parents:   c.Info.Parents,
			Author:    c.Info.Author,
			Email:     c.Info.Email,
			Message:   c.Info.Message,
			Timestamp: c.Info.Date,
		}
		if c.Owner != -1 {
			owner := g.AllBranches[c.Owner]
			node.Branch = owner.Name
			node.Column = owner.Vis.Column
		}
		for _, b := range c.Branches {
			node.Refs = append(node.Refs, g.AllBranches[b].Name)
		}
		for _, t := range c.Tags {
			node.Refs = append(node.Refs, g.AllBranches[t].Name)
		}
		doc.Nodes = append(doc.Nodes, node)
	}

	for i := range g.AllBranches {
		b := &g.AllBranches[i]
		doc.Branches = append(doc.Branches, &Branch{
			Name:   b.Name,
			Tip:    b.Target,
			Column: optional(b.Vis.Column),
			Color:  b.Vis.SVGColor,
			Merged: b.IsMerged,
			Remote: b.IsRemote,
			Tag:    b.IsTag,
			Start:  optional(b.Range.Start),
			End:    optional(b.Range.End),
		})
	}

	return json.MarshalIndent(doc, "", "  ")
}

func optional(v int) *int {
	if v == -1 {
		return nil
	}
	return &v
}
