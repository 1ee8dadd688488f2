// Package command builds and encodes a brigadier command-node graph and its
// suggestion responses (spec.md §4.J). No teacher example carries a
// brigadier graph, so this package is written fresh, following the
// flag-byte-plus-body idiom net_structures/bitset.go already establishes
// for the protocol's other variable-shaped types.
package command

import (
	ns "github.com/go-mclib/mcserver/net_structures"
	"github.com/go-mclib/mcserver/session"
)

// NodeType is the 2-bit type field packed into a node's flag byte.
type NodeType byte

const (
	NodeRoot     NodeType = 0
	NodeLiteral  NodeType = 1
	NodeArgument NodeType = 2
)

const (
	flagTypeMask       byte = 0x03
	flagExecutable     byte = 0x04
	flagHasRedirect    byte = 0x08
	flagHasSuggestions byte = 0x10
)

// Node is one entry of the graph: its shape (and which fields apply)
// depends on Type, the way the wire format's flag byte selects it.
type Node struct {
	Type     NodeType
	Children []int32 // indices into the owning Graph's Nodes slice

	Executable  bool
	Redirect    int32 // valid only when HasRedirect
	HasRedirect bool

	// Literal and Argument nodes.
	Name string

	// Argument nodes only: the brigadier parser identifier (e.g.
	// "brigadier:string") and its raw, parser-specific properties blob.
	Parser     string
	Properties ns.ByteArray

	// Present on literal or argument nodes that want client-side tab
	// completion routed through a registered suggestions provider.
	Suggestions    string
	HasSuggestions bool
}

// Graph is a full command tree: a flat node list plus the index of its
// root, the shape spec.md §4.J's wire encoding assembles.
type Graph struct {
	Nodes []Node
	Root  int32
}

// NewGraph returns an empty graph with node 0 reserved as the root.
func NewGraph() *Graph {
	return &Graph{Nodes: []Node{{Type: NodeRoot}}, Root: 0}
}

// AddLiteral appends a literal node named name as a child of parent,
// returning its new index.
func (g *Graph) AddLiteral(parent int32, name string) int32 {
	idx := int32(len(g.Nodes))
	g.Nodes = append(g.Nodes, Node{Type: NodeLiteral, Name: name})
	g.Nodes[parent].Children = append(g.Nodes[parent].Children, idx)
	return idx
}

// AddArgument appends an argument node named name, parsed by parser, as a
// child of parent, returning its new index.
func (g *Graph) AddArgument(parent int32, name, parser string, properties ns.ByteArray) int32 {
	idx := int32(len(g.Nodes))
	g.Nodes = append(g.Nodes, Node{
		Type:       NodeArgument,
		Name:       name,
		Parser:     parser,
		Properties: properties,
	})
	g.Nodes[parent].Children = append(g.Nodes[parent].Children, idx)
	return idx
}

// SetExecutable marks node idx as a valid command terminator.
func (g *Graph) SetExecutable(idx int32) {
	g.Nodes[idx].Executable = true
}

// SetRedirect makes node idx redirect further parsing to target instead of
// listing its own children.
func (g *Graph) SetRedirect(idx, target int32) {
	g.Nodes[idx].HasRedirect = true
	g.Nodes[idx].Redirect = target
}

// SetSuggestions attaches a client-side suggestions provider identifier
// (e.g. "minecraft:ask_server") to node idx.
func (g *Graph) SetSuggestions(idx int32, identifier string) {
	g.Nodes[idx].HasSuggestions = true
	g.Nodes[idx].Suggestions = identifier
}

// Encode renders the graph as spec.md §4.J's wire format: a varint node
// count, each node's flag byte plus type-specific fields and child index
// array, then the root index as a trailing varint.
func (g *Graph) Encode() (ns.ByteArray, error) {
	var out ns.ByteArray

	countBytes, err := ns.VarInt(len(g.Nodes)).ToBytes()
	if err != nil {
		return nil, err
	}
	out = append(out, countBytes...)

	for _, n := range g.Nodes {
		nodeBytes, err := n.encode()
		if err != nil {
			return nil, err
		}
		out = append(out, nodeBytes...)
	}

	rootBytes, err := ns.VarInt(g.Root).ToBytes()
	if err != nil {
		return nil, err
	}
	return append(out, rootBytes...), nil
}

// Send encodes the graph and writes it to c under IDCommands.
func (g *Graph) Send(c *session.Connection) error {
	body, err := g.Encode()
	if err != nil {
		return err
	}
	return c.WriteFrame(&session.Frame{ID: IDCommands, Payload: body})
}

func (n *Node) encode() (ns.ByteArray, error) {
	flags := byte(n.Type) & flagTypeMask
	if n.Executable {
		flags |= flagExecutable
	}
	if n.HasRedirect {
		flags |= flagHasRedirect
	}
	if n.HasSuggestions {
		flags |= flagHasSuggestions
	}

	out := ns.ByteArray{flags}

	childCountBytes, err := ns.VarInt(len(n.Children)).ToBytes()
	if err != nil {
		return nil, err
	}
	out = append(out, childCountBytes...)
	for _, child := range n.Children {
		b, err := ns.VarInt(child).ToBytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	if n.HasRedirect {
		b, err := ns.VarInt(n.Redirect).ToBytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	switch n.Type {
	case NodeLiteral:
		b, err := ns.String(n.Name).ToBytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)

	case NodeArgument:
		nameBytes, err := ns.String(n.Name).ToBytes()
		if err != nil {
			return nil, err
		}
		out = append(out, nameBytes...)

		parserBytes, err := ns.Identifier(n.Parser).ToBytes()
		if err != nil {
			return nil, err
		}
		out = append(out, parserBytes...)
		out = append(out, n.Properties...)
	}

	if n.HasSuggestions {
		b, err := ns.Identifier(n.Suggestions).ToBytes()
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}

	return out, nil
}
