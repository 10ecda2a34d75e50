package ops

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// operationModel describes the record schema behind one operation, so a
// caller can learn which filter keys and fields an operation understands
// without fetching any data.
type operationModel struct {
	Operation         string       `json:"operation"`
	Description       string       `json:"description"`
	Entity            string       `json:"entity,omitempty"`
	EntityDescription string       `json:"entity_description,omitempty"`
	Fields            []fieldModel `json:"fields"`
}

type fieldModel struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Required    bool     `json:"required,omitempty"`
	Enum        []string `json:"enum,omitempty"`
	Description string   `json:"description,omitempty"`
}

func (r *Registry) registerIntrospection() {
	r.add(&Operation{
		Name:        "paradex_filters_model",
		Description: "Describe the record schema and parameters of a registered operation.",
		ReadOnly:    true,
		tool: mcp.NewTool("paradex_filters_model",
			mcp.WithDescription("Field names, kinds and enums of the records an operation returns."),
			mcp.WithString("operation_name", mcp.Required(), mcp.Description("Name of a registered operation, e.g. paradex_markets.")),
		),
		handler: func(_ context.Context, args map[string]any) (any, error) {
			name, err := requireStringArg(args, "operation_name")
			if err != nil {
				return nil, err
			}
			op, err := r.Operation(name)
			if err != nil {
				return nil, err
			}
			model := &operationModel{
				Operation:   op.Name,
				Description: op.Description,
				Fields:      []fieldModel{},
			}
			if op.Schema != nil {
				model.Entity = op.Schema.Name
				model.EntityDescription = op.Schema.Description
				for _, f := range op.Schema.Fields {
					model.Fields = append(model.Fields, fieldModel{
						Name:        f.Name,
						Kind:        string(f.Kind),
						Required:    f.Required,
						Enum:        f.Enum,
						Description: f.Description,
					})
				}
			}
			return model, nil
		},
	})
}
