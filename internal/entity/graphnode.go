package entity

// GraphNode is the wire payload for a live, value-filled entity instance on
// the exploration graph, plus the display label of the transform the caller
// wants dispatched against it.
type GraphNode struct {
	ID        string   `json:"id"`
	Data      NodeData `json:"data"`
	Transform string   `json:"transform"`
}

// NodeData mirrors a blueprint's shape: the entity's display metadata plus
// its layout-shaped element structure carrying live values.
type NodeData struct {
	Label    string  `json:"label"`
	Color    string  `json:"color"`
	Icon     string  `json:"icon"`
	Elements []Group `json:"elements"`
}

// NodeFromBlueprint wraps a compiled blueprint as a graph node, as the
// serving layer does when the UI instantiates an entity.
func NodeFromBlueprint(id string, b *Blueprint) *GraphNode {
	return &GraphNode{
		ID: id,
		Data: NodeData{
			Label:    b.Label,
			Color:    b.Color,
			Icon:     b.Icon,
			Elements: b.Data.Elements,
		},
	}
}
