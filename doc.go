// Package augment compiles a declarative object and interface model into a
// fully expanded GraphQL API schema.
//
// A model declares node types, interfaces, relationships between them and
// optional attribute records carried by relationships. Relationships may be
// declared abstractly on an interface and realized differently by each
// implementing type. Compile validates the model, resolves the declaring
// site of every relationship and synthesizes the filter, sort, aggregate,
// connection and nested mutation definitions each site needs:
//
//	s, err := load.ReadFile("model.graphql")
//	if err != nil {
//		return err
//	}
//	res, err := augment.Compile(ctx, s, augment.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	fmt.Print(res.SDL())
//
// The printed schema is deterministic: the same model and options always
// produce byte-identical output.
package augment
