package viewstream

import "context"

// Data is an opaque bag of view data. The server forwards it to views
// unexamined; it carries no behavior of its own.
type Data map[string]any

type dataKey struct{}

// WithData returns a context carrying data for DataFrom.
func WithData(ctx context.Context, data Data) context.Context {
	return context.WithValue(ctx, dataKey{}, data)
}

// DataFrom returns the Data attached to ctx, or nil.
func DataFrom(ctx context.Context) Data {
	data, _ := ctx.Value(dataKey{}).(Data)
	return data
}
