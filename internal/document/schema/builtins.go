package schema

import "github.com/archivist/substance/internal/document/node"

// Builtins returns the node types every article-style document uses: a
// container, two text block types and three annotation types. Callers
// register them explicitly so that custom schemas can pick a subset or
// override nothing by accident.
func Builtins() []*NodeType {
	return []*NodeType{
		{
			Name:      "container",
			Container: true,
			Properties: map[string]PropSpec{
				node.PropNodes: {Kind: KindIDList, Default: []string{}},
			},
		},
		{
			Name:         "paragraph",
			Text:         true,
			Block:        true,
			TextProperty: node.PropContent,
			Properties: map[string]PropSpec{
				node.PropContent: {Kind: KindText, Default: ""},
			},
		},
		{
			Name:         "heading",
			Text:         true,
			Block:        true,
			TextProperty: node.PropContent,
			Properties: map[string]PropSpec{
				node.PropContent: {Kind: KindText, Default: ""},
				"level":          {Kind: KindNumber, Default: 1},
			},
		},
		{
			Name:       "emphasis",
			Annotation: true,
			Properties: map[string]PropSpec{
				node.PropPath:  {Kind: KindPath},
				node.PropStart: {Kind: KindNumber, Default: 0},
				node.PropEnd:   {Kind: KindNumber, Default: 0},
			},
		},
		{
			Name:       "strong",
			Annotation: true,
			Properties: map[string]PropSpec{
				node.PropPath:  {Kind: KindPath},
				node.PropStart: {Kind: KindNumber, Default: 0},
				node.PropEnd:   {Kind: KindNumber, Default: 0},
			},
		},
		{
			Name:            "comment",
			Annotation:      true,
			ContainerScoped: true,
			Properties: map[string]PropSpec{
				node.PropStartP:  {Kind: KindPath},
				node.PropEndP:    {Kind: KindPath},
				node.PropStart:   {Kind: KindNumber, Default: 0},
				node.PropEnd:     {Kind: KindNumber, Default: 0},
				node.PropScope:   {Kind: KindID},
				node.PropContent: {Kind: KindString, Default: ""},
			},
		},
	}
}
