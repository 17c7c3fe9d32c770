package synth

import "github.com/syssam/augment/compiler/gen"

// prefix names the generated types of a type or a relationship site.
type prefix string

// sitePrefix returns D + U(f), e.g. ProductionActors.
func sitePrefix(owner *gen.Type, field string) prefix {
	return prefix(owner.Name + gen.UpperFirst(field))
}

func (p prefix) Where() string                  { return string(p) + "Where" }
func (p prefix) Sort() string                   { return string(p) + "Sort" }
func (p prefix) CreateInput() string            { return string(p) + "CreateInput" }
func (p prefix) UpdateInput() string            { return string(p) + "UpdateInput" }
func (p prefix) ConnectInput() string           { return string(p) + "ConnectInput" }
func (p prefix) ConnectWhere() string           { return string(p) + "ConnectWhere" }
func (p prefix) AggregationWhereInput() string  { return string(p) + "AggregationWhereInput" }
func (p prefix) AggregateSelection() string     { return string(p) + "AggregateSelection" }
func (p prefix) Implementation() string         { return string(p) + "Implementation" }
func (p prefix) ImplementationsWhere() string   { return string(p) + "ImplementationsWhere" }
func (p prefix) ImplementationsConnect() string { return string(p) + "ImplementationsConnectInput" }

// Relationship site artifacts.
func (p prefix) RelationshipProperties() string { return string(p) + "RelationshipProperties" }
func (p prefix) Relationship() string           { return string(p) + "Relationship" }
func (p prefix) Connection() string             { return string(p) + "Connection" }
func (p prefix) ConnectionWhere() string        { return string(p) + "ConnectionWhere" }
func (p prefix) ConnectionSort() string         { return string(p) + "ConnectionSort" }
func (p prefix) AggregateInput() string         { return string(p) + "AggregateInput" }
func (p prefix) NodeAggregationWhere() string   { return string(p) + "NodeAggregationWhereInput" }
func (p prefix) AggregationSelection() string   { return string(p) + "AggregationSelection" }
func (p prefix) NodeAggregateSelection() string { return string(p) + "NodeAggregateSelection" }
func (p prefix) EdgeAggregateSelection() string { return string(p) + "EdgeAggregateSelection" }
func (p prefix) EdgeCreateInput() string        { return string(p) + "EdgeCreateInput" }
func (p prefix) EdgeUpdateInput() string        { return string(p) + "EdgeUpdateInput" }
func (p prefix) EdgeWhere() string              { return string(p) + "EdgeWhere" }
func (p prefix) EdgeSort() string               { return string(p) + "EdgeSort" }
func (p prefix) EdgeAggregationWhere() string   { return string(p) + "EdgeAggregationWhereInput" }

// Write inputs.
func (p prefix) FieldInput() string            { return string(p) + "FieldInput" }
func (p prefix) CreateFieldInput() string      { return string(p) + "CreateFieldInput" }
func (p prefix) ConnectFieldInput() string     { return string(p) + "ConnectFieldInput" }
func (p prefix) UpdateConnectionInput() string { return string(p) + "UpdateConnectionInput" }
func (p prefix) UpdateFieldInput() string      { return string(p) + "UpdateFieldInput" }
func (p prefix) DisconnectFieldInput() string  { return string(p) + "DisconnectFieldInput" }
func (p prefix) DeleteFieldInput() string      { return string(p) + "DeleteFieldInput" }

// pagination holds the root query names of a type, modeled on the relay
// names of contrib/graphql.
type pagination struct {
	// Plural is the list query, e.g. movies.
	Plural string
	// Connection is the connection query, e.g. moviesConnection.
	Connection string
	// Aggregate is the aggregate query, e.g. moviesAggregate.
	Aggregate string
	// ConnectionType is the connection object, e.g. MoviesConnection.
	ConnectionType string
	// Edge is the edge object of the connection, e.g. MovieEdge.
	Edge string
}

func paginationNames(t *gen.Type) pagination {
	plural := gen.LowerFirst(gen.Plural(t.Name))
	return pagination{
		Plural:         plural,
		Connection:     plural + "Connection",
		Aggregate:      plural + "Aggregate",
		ConnectionType: gen.UpperFirst(plural) + "Connection",
		Edge:           t.Name + "Edge",
	}
}

// mutationNames holds the root mutation names of a node type.
type mutationNames struct {
	Create, Update, Delete         string
	CreateResponse, UpdateResponse string
	// Payload is the list field of the response payloads, e.g. movies.
	Payload string
}

func mutationNamesOf(t *gen.Type) mutationNames {
	plural := gen.UpperFirst(gen.Plural(t.Name))
	return mutationNames{
		Create:         "create" + plural,
		Update:         "update" + plural,
		Delete:         "delete" + plural,
		CreateResponse: "Create" + plural + "MutationResponse",
		UpdateResponse: "Update" + plural + "MutationResponse",
		Payload:        gen.LowerFirst(plural),
	}
}
