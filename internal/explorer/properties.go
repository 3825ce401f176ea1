package explorer

import (
	"context"
	"strings"

	"github.com/weavenav/weavenav/internal/weaviate"
)

// propertyPathSeparator joins nested property names into an item id, e.g.
// "address.geo.lat". Weaviate property names cannot contain dots.
const propertyPathSeparator = "."

// ResolveProperty walks a schema's property tree top-down along the given
// path, matching each segment by name, first match wins. Depth is
// unbounded. Nil when any segment does not resolve.
func ResolveProperty(schema *weaviate.CollectionSchema, path string) *weaviate.Property {
	if schema == nil || path == "" {
		return nil
	}

	segments := strings.Split(path, propertyPathSeparator)
	props := schema.Properties
	var found *weaviate.Property

	for _, segment := range segments {
		found = nil
		for i := range props {
			if props[i].Name == segment {
				found = &props[i]
				break
			}
		}
		if found == nil {
			return nil
		}
		props = found.NestedProperties
	}
	return found
}

// propertiesChildren lists the top-level properties of a collection.
func (e *Explorer) propertiesChildren(ctx context.Context, connectionID, collection string) []Node {
	schema, err := e.schema(ctx, connectionID, collection)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}
	if len(schema.Properties) == 0 {
		return []Node{messageLeaf(connectionID, "No properties defined.")}
	}

	out := make([]Node, 0, len(schema.Properties))
	for i := range schema.Properties {
		out = append(out, e.propertyNode(connectionID, collection, "", &schema.Properties[i]))
	}
	return out
}

// propertyItemChildren expands one property: object-typed properties yield
// their nested properties, everything else yields flattened detail leaves.
func (e *Explorer) propertyItemChildren(ctx context.Context, connectionID, collection, path string) []Node {
	schema, err := e.schema(ctx, connectionID, collection)
	if err != nil {
		return []Node{e.errorLeaf(connectionID, err)}
	}

	property := ResolveProperty(schema, path)
	if property == nil {
		return []Node{messageLeaf(connectionID, "Property not found.")}
	}

	if property.DataType.IsObject() && len(property.NestedProperties) > 0 {
		out := make([]Node, 0, len(property.NestedProperties))
		for i := range property.NestedProperties {
			out = append(out, e.propertyNode(connectionID, collection, path, &property.NestedProperties[i]))
		}
		return out
	}

	return e.objectLeaves(connectionID, Flatten(propertyDetails(property), nil, "", false))
}

// propertyNode builds the tree node for one property. Only object-typed
// properties with nested properties are expandable; scalar properties are
// leaves whose detail record is still reachable through propertyItemChildren.
func (e *Explorer) propertyNode(connectionID, collection, parentPath string, property *weaviate.Property) Node {
	path := property.Name
	if parentPath != "" {
		path = parentPath + propertyPathSeparator + property.Name
	}

	return Node{
		Type:         ItemPropertyItem,
		ConnectionID: connectionID,
		Resource:     collection,
		ItemID:       path,
		Label:        property.Name,
		Description:  property.DataType.Primary(),
		Tooltip:      property.Description,
		Icon:         propertyIcon(property.DataType),
		Expandable:   property.DataType.IsObject() && len(property.NestedProperties) > 0,
	}
}

// propertyDetails builds the flat detail record rendered under a scalar
// property. Unset optional index flags are omitted rather than defaulted.
func propertyDetails(property *weaviate.Property) map[string]interface{} {
	record := map[string]interface{}{
		"dataType": strings.Join(property.DataType, ", "),
	}
	if property.Description != "" {
		record["description"] = property.Description
	}
	if property.Tokenization != "" {
		record["tokenization"] = property.Tokenization
	}
	if property.IndexFilterable != nil {
		record["indexFilterable"] = *property.IndexFilterable
	}
	if property.IndexSearchable != nil {
		record["indexSearchable"] = *property.IndexSearchable
	}
	if property.IndexRangeFilters != nil {
		record["indexRangeFilters"] = *property.IndexRangeFilters
	}
	if property.IndexInverted != nil {
		record["indexInverted"] = *property.IndexInverted
	}
	for module, cfg := range property.ModuleConfig {
		record["module "+module] = cfg
	}
	return record
}

func propertyIcon(dataType weaviate.DataType) string {
	switch strings.ToLower(dataType.Primary()) {
	case "text", "text[]", "string", "string[]":
		return "symbol-string"
	case "int", "int[]", "number", "number[]":
		return "symbol-number"
	case "boolean", "boolean[]":
		return "symbol-boolean"
	case "date", "date[]":
		return "calendar"
	case "object", "object[]":
		return "symbol-object"
	case "geocoordinates":
		return "location"
	case "uuid", "uuid[]":
		return "key"
	case "blob":
		return "file-binary"
	default:
		return "symbol-field"
	}
}
